package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"financialamigo/src/api/controllers"
	"financialamigo/src/config"
	"financialamigo/src/repositories"
	"financialamigo/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultRequestTimeout = 10 * time.Second

type Handler struct {
	Controller controllers.IController
	Config     *config.Config
	Logger     logrus.FieldLogger
	Sessions   sessions.Store
}

func NewHandler(controller controllers.IController, cfg *config.Config, logger logrus.FieldLogger) *Handler {
	secret := cfg.Auth.SessionSecret
	if secret == "" {
		secret = cfg.Auth.JWTSecretKey
	}
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   10 * 60,
		HttpOnly: true,
		Secure:   cfg.Service.UseHTTPS,
		SameSite: http.SameSiteLaxMode,
	}
	return &Handler{
		Controller: controller,
		Config:     cfg,
		Logger:     logger,
		Sessions:   store,
	}
}

func (h *Handler) requestTimeout() time.Duration {
	if h.Config.Service.RequestTimeout > 0 {
		return h.Config.Service.RequestTimeout
	}
	return defaultRequestTimeout
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, nil, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors writes err as a JSON error body. Unexpected errors are logged
// and hidden behind a generic message.
func (h *Handler) HandleErrors(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *utils.HTTPError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		utils.WriteError(w, utils.NewHTTPError(http.StatusGatewayTimeout, "Request timed out"))
	case errors.As(err, &httpErr):
		utils.WriteError(w, httpErr)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.WriteError(w, utils.NotFound("Not found"))
	case errors.Is(err, gorm.ErrDuplicatedKey):
		utils.WriteError(w, utils.BadRequest("Resource already exists"))
	default:
		logger := h.Logger
		if r != nil {
			logger = utils.LoggerFromContext(r.Context())
		}
		logger.WithError(err).Error("unhandled error")
		utils.WriteError(w, utils.InternalServerError("Internal Server Error"))
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return utils.BadRequest("Invalid request body: " + err.Error())
	}
	return nil
}

func urlUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, utils.BadRequest("Invalid " + name)
	}
	return id, nil
}

// dateRange reads the optional from/to query parameters.
func dateRange(r *http.Request) (repositories.DateRange, error) {
	var dates repositories.DateRange
	for name, target := range map[string]**time.Time{"from": &dates.From, "to": &dates.To} {
		value := r.URL.Query().Get(name)
		if value == "" {
			continue
		}
		date, err := utils.ParseDate(value)
		if err != nil {
			return dates, utils.BadRequest(err.Error())
		}
		*target = &date
	}
	return dates, nil
}

func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Readiness pings the database.
func (h *Handler) Readiness(db interface{ Ping(context.Context) error }) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			h.Logger.WithError(err).Warn("readiness check failed")
			utils.WriteError(w, utils.NewHTTPError(http.StatusServiceUnavailable, "Database unavailable"))
			return
		}
		h.respond(w, r, map[string]string{"status": "ready"}, http.StatusOK)
	}
}
