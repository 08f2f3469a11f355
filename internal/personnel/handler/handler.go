// Package handler exposes the personnel service over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"astrotrack/internal/personnel/models"
	"astrotrack/internal/platform/metrics"
	"astrotrack/internal/platform/middleware"
	id "astrotrack/pkg/domain"
	dErrors "astrotrack/pkg/domain-errors"
	"astrotrack/pkg/platform/httputil"
)

const maxBodyBytes = 1 << 20

// Service defines the personnel operations the handler needs.
type Service interface {
	CreatePerson(ctx context.Context, name string) (*models.Person, error)
	GetPerson(ctx context.Context, name string) (*models.PersonSummary, error)
	ListPeople(ctx context.Context) ([]*models.PersonSummary, error)
	RenamePerson(ctx context.Context, currentName, newName string) (*models.Person, error)
	CreateDuty(ctx context.Context, req *models.CreateDutyRequest) (id.DutyID, error)
	GetDutyHistory(ctx context.Context, name string) (*models.DutyHistory, error)
}

// Handler handles person and astronaut duty endpoints.
type Handler struct {
	logger         *slog.Logger
	personnel      Service
	metrics        *metrics.Metrics
	requestTimeout time.Duration
}

// New creates a personnel Handler. metrics may be nil.
func New(personnel Service, logger *slog.Logger, metrics *metrics.Metrics, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return &Handler{
		logger:         logger,
		personnel:      personnel,
		metrics:        metrics,
		requestTimeout: requestTimeout,
	}
}

// Register registers the personnel routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(h.requestTimeout))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.LatencyMiddleware(h.metrics))

	router.Get("/person", h.handleListPeople)
	router.Post("/person", h.handleCreatePerson)
	router.Get("/person/{name}", h.handleGetPerson)
	router.Put("/person/{name}", h.handleRenamePerson)
	router.Get("/astronautduty/{name}", h.handleGetDutyHistory)
	router.Post("/astronautduty", h.handleCreateDuty)

	r.Mount("/", router)
}

func (h *Handler) handleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.personnel.ListPeople(r.Context())
	if err != nil {
		h.writeError(w, r, err, "failed to list people")
		return
	}
	resp := PeopleResponse{People: make([]PersonResponse, 0, len(people))}
	for _, p := range people {
		resp.People = append(resp.People, toPersonResponse(p.Person, p.Status))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if !h.decode(w, r, &req) {
		return
	}
	person, err := h.personnel.CreatePerson(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, r, err, "failed to create person")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toPersonResponse(person, nil))
}

func (h *Handler) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	summary, err := h.personnel.GetPerson(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, r, err, "failed to get person")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(summary.Person, summary.Status))
}

func (h *Handler) handleRenamePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if !h.decode(w, r, &req) {
		return
	}
	person, err := h.personnel.RenamePerson(r.Context(), chi.URLParam(r, "name"), req.Name)
	if err != nil {
		h.writeError(w, r, err, "failed to rename person")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(person, nil))
}

func (h *Handler) handleGetDutyHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.personnel.GetDutyHistory(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, r, err, "failed to get duty history")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDutyHistoryResponse(history))
}

func (h *Handler) handleCreateDuty(w http.ResponseWriter, r *http.Request) {
	var body CreateDutyRequest
	if !h.decode(w, r, &body) {
		return
	}
	req, err := body.toModel()
	if err != nil {
		h.writeError(w, r, err, "invalid create duty request")
		return
	}
	dutyID, err := h.personnel.CreateDuty(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, "failed to create duty")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, CreateDutyResponse{ID: dutyID.String()})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.WarnContext(r.Context(), "invalid request body",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return false
	}
	return true
}

// writeError logs client errors at warn and everything else at error.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	status := httputil.StatusFor(dErrors.GetCode(err))
	if status < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	} else {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
