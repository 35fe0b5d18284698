// Package http provides the dashboard HTTP transport layer. Handlers stay
// thin: parameter validation plus rendering, with all table access behind
// the services package.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "sportsight/internal/errors"
	"sportsight/internal/services"
	"sportsight/pkg/contracts/domain"
)

// DataHandler serves the processed output tables to the dashboard.
type DataHandler struct {
	service *services.DataService
	logger  *slog.Logger
}

// NewDataHandler creates a data handler backed by the given service.
func NewDataHandler(service *services.DataService, logger *slog.Logger) *DataHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "data")),
	}
}

// Routes mounts the data API routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/summary", h.GetSummary)
	r.Get("/{table}", h.GetTable)

	return r
}

// GetTable serves one output table, optionally filtered by ?category=.
func (h *DataHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := chi.URLParam(r, "table")
	if !services.ValidTableName(name) {
		render.Render(w, r, apierrors.NotFoundError("table "+name))
		return
	}

	category := r.URL.Query().Get("category")
	if category != "" {
		if _, err := domain.ParseCategory(category); err != nil {
			render.Render(w, r, apierrors.ErrValidation("category", "must be one of: basketball, soccer"))
			return
		}
	}

	table, err := h.service.GetTable(ctx, name, category)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, table)
}

// GetSummary serves the snapshot summary for the dashboard header.
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// renderError maps application errors onto API responses.
func (h *DataHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apierrors.IsType(err, apierrors.ErrTypeNotFound):
		render.Render(w, r, apierrors.ErrDataNotGenerated)
	case apierrors.IsType(err, apierrors.ErrTypeValidation):
		render.Render(w, r, apierrors.ErrInvalidParameter)
	default:
		h.logger.ErrorContext(r.Context(), "data request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.ErrInternalServer)
	}
}
