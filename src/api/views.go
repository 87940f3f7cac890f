package api

import (
	"net/http"
	"time"

	"financialamigo/src/api/controllers"
	"financialamigo/src/api/handlers"
	"financialamigo/src/clients/google"
	"financialamigo/src/config"
	"financialamigo/src/database"
	"financialamigo/src/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	Config  *config.Config
	DB      *database.DB
}

func NewServer(cfg *config.Config, db *database.DB, googleClient google.GoogleClientI, logger logrus.FieldLogger) *Server {
	controller := controllers.NewController(db.Gorm, services.NewTokenService(cfg.Auth), googleClient)
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(controller, cfg, logger),
		Config:  cfg,
		DB:      db,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	h := s.Handler

	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.RealIP)
	s.Router.Use(h.RequestLogger)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(h.SecurityHeaders)
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.Config.Service.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Get("/ready", h.Readiness(s.DB))

	s.Router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/google/login", h.GoogleLogin)
			r.Get("/google/callback", h.GoogleCallback)
			r.Post("/google/callback", h.GoogleCallback)
			r.Post("/sync-google-user", h.SyncGoogleUser)
			r.Post("/refresh", h.RefreshToken)
			r.With(h.Authenticator).Get("/me", h.GetMe)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticator)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.GetMe)
				r.Patch("/me", h.UpdateUserSettings)
				r.Patch("/settings", h.UpdateUserSettings)
				r.Delete("/me", h.DeleteUser)
			})

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", h.GetAllAccounts)
				r.Post("/", h.CreateAccount)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetAccountByID)
					r.Patch("/", h.UpdateAccount)
					r.Delete("/", h.DeleteAccount)
					r.Get("/holdings", h.GetAccountHoldings)
					r.Get("/cash-transactions", h.GetAccountCashTransactions)
					r.Post("/cash-transactions", h.CreateCashTransaction)
					r.Get("/benchmarks", h.GetAccountBenchmarks)
					r.Post("/benchmarks", h.LinkBenchmark)
					r.Delete("/benchmarks/{linkID}", h.UnlinkBenchmark)
					r.Get("/balances", h.GetAccountBalances)
					r.Put("/balances/{date}", h.UpsertAccountBalance)
				})
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", h.GetAllTransactions)
				r.Post("/", h.CreateTransaction)
				r.Get("/export", h.ExportTransactions)
				r.Get("/{id}", h.GetTransactionByID)
				r.Patch("/{id}", h.UpdateTransaction)
				r.Delete("/{id}", h.DeleteTransaction)
			})

			r.Route("/cash-transactions/{id}", func(r chi.Router) {
				r.Get("/", h.GetCashTransactionByID)
				r.Patch("/", h.UpdateCashTransaction)
				r.Delete("/", h.DeleteCashTransaction)
			})

			r.Get("/holdings", h.GetAllHoldings)

			r.Route("/securities", func(r chi.Router) {
				r.Get("/", h.GetAllSecurities)
				r.Get("/{symbol}", h.GetSecurity)
				r.Put("/{symbol}", h.UpsertSecurity)
				r.Get("/{symbol}/prices", h.GetHistoricalPrices)
				r.Post("/{symbol}/prices", h.AddHistoricalPrice)
			})

			r.Get("/fx-rates", h.GetFXRates)
			r.Post("/fx-rates", h.AddFXRate)

			r.Route("/benchmarks", func(r chi.Router) {
				r.Get("/", h.GetAllBenchmarks)
				r.Post("/", h.CreateBenchmark)
				r.Get("/{id}/values", h.GetBenchmarkValues)
				r.Post("/{id}/values", h.AddBenchmarkValue)
			})
		})
	})
}

func NewHTTPServer(server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + server.Config.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
