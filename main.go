package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financialamigo/src/api"
	"financialamigo/src/clients/google"
	"financialamigo/src/config"
	"financialamigo/src/database"
	"financialamigo/src/utils"
	aws_handler "financialamigo/src/utils/aws"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logrus.WithError(err).Fatal("Error while loading config")
	}
	if err := loadSecrets(cfg); err != nil {
		logrus.WithError(err).Fatal("Error while loading secrets")
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	logger := utils.NewLogger(utils.ParseLogLevel(cfg.Logging.Level), cfg.Logging.ToFile, cfg.Logging.FilePath)

	errC, err := run(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Couldn't run")
	}

	if err := <-errC; err != nil {
		logger.WithError(err).Fatal("Error while running")
	}
}

// loadSecrets overrides credentials with the AWS Secrets Manager secret when
// one is configured.
func loadSecrets(cfg *config.Config) error {
	if cfg.Secrets.AWS.SecretID == "" {
		return nil
	}
	handler, err := aws_handler.NewAWSHandler(cfg.Secrets.AWS.Region)
	if err != nil {
		return err
	}
	values, err := handler.SecretManager.GetSecretValues(cfg.Secrets.AWS.SecretID)
	if err != nil {
		return err
	}
	cfg.ApplySecrets(values)
	return nil
}

func run(cfg *config.Config, logger *logrus.Logger) (<-chan error, error) {
	db, err := database.SetupDB(context.Background(), cfg.Databases.SQL, logger)
	if err != nil {
		return nil, err
	}

	server := api.NewServer(cfg, db, google.NewClient(cfg.ExternalClients.Google), logger)
	httpServer := api.NewHTTPServer(server)

	errC := make(chan error, 1)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		ctxTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer func() {
			db.Close()
			stop()
			cancel()
			close(errC)
		}()

		httpServer.SetKeepAlivesEnabled(false)
		if err := httpServer.Shutdown(ctxTimeout); err != nil {
			errC <- err
		}
		logger.Info("Shutdown completed")
	}()

	go func() {
		logger.WithField("port", cfg.Service.Port).Info("Starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	return errC, nil
}
