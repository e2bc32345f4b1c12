// Package handlers wires the HTTP surface: upstream list and detail
// endpoints, account routes and the favourites CRUD. All error responses
// share one envelope shape, {"message": "..."}.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rajeshbyreddy95/server/internal/auth"
	"github.com/rajeshbyreddy95/server/internal/cache"
	"github.com/rajeshbyreddy95/server/internal/common/errors"
	"github.com/rajeshbyreddy95/server/internal/common/logging"
	"github.com/rajeshbyreddy95/server/internal/config"
	"github.com/rajeshbyreddy95/server/internal/enrich"
	"github.com/rajeshbyreddy95/server/internal/storage"
	"github.com/rajeshbyreddy95/server/internal/tmdb"
)

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	storage  storage.Storage
	tmdb     *tmdb.Client
	enricher *enrich.Enricher
	trending *cache.TrendingCache
	auth     *auth.Service
	config   *config.Config
	logger   logging.Logger
}

// New creates the handler set.
func New(store storage.Storage, client *tmdb.Client, enricher *enrich.Enricher, trending *cache.TrendingCache, authService *auth.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		storage:  store,
		tmdb:     client,
		enricher: enricher,
		trending: trending,
		auth:     authService,
		config:   cfg,
		logger:   logging.GetGlobalLogger(),
	}
}

// messageResponse is the single error/status envelope served to clients.
type messageResponse struct {
	Message string `json:"message"`
	MovieID string `json:"movieId,omitempty"`
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", err)
	}
}

func (h *Handlers) respondMessage(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, messageResponse{Message: message})
}

// respondError maps a typed error onto the HTTP surface. Client-caused
// failures (4xx) echo the error's own message; server-side failures log
// the cause and serve the given public message so internals never leak.
func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error, publicMsg string) {
	switch errors.GetType(err) {
	case errors.ErrTypeValidation, errors.ErrTypeConflict:
		h.respondMessage(w, http.StatusBadRequest, appMessage(err))
	case errors.ErrTypeAuth:
		h.respondMessage(w, http.StatusUnauthorized, appMessage(err))
	case errors.ErrTypeNotFound:
		h.respondMessage(w, http.StatusNotFound, appMessage(err))
	case errors.ErrTypePersistence:
		h.logger.Error("persistence failure", err,
			logging.String("path", r.URL.Path))
		if errors.HasCode(err, errors.CodeStoreUnavailable) {
			h.respondMessage(w, http.StatusServiceUnavailable, "Database unavailable, please try again later")
			return
		}
		h.respondMessage(w, http.StatusInternalServerError, publicMsg)
	default:
		h.logger.Error("request failed", err,
			logging.String("path", r.URL.Path))
		h.respondMessage(w, http.StatusInternalServerError, publicMsg)
	}
}

func normalizedEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func appMessage(err error) string {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr.Message
	}
	return err.Error()
}
