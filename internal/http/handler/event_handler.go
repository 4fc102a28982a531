package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/pragyanai/demotrack/internal/auth"
	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/mapper"
	"github.com/pragyanai/demotrack/internal/service"
	"go.uber.org/zap"
)

// EventServiceInterface for dependency injection
type EventServiceInterface interface {
	List(ctx context.Context) ([]domain.Event, error)
	ListActive(ctx context.Context) ([]domain.Event, error)
	Get(ctx context.Context, name string) (*domain.Event, error)
	Create(ctx context.Context, creator string, req *domain.CreateEventRequest) error
	UpdateDetails(ctx context.Context, name string, req *domain.UpdateEventRequest) error
	CreateSheet(ctx context.Context, name string) (*domain.SheetCreatedResponse, error)
	Approve(ctx context.Context, name string, req *domain.ApproveEventRequest) error
}

type EventHandler struct {
	eventService EventServiceInterface
	logger       *zap.Logger
}

func NewEventHandler(eventService *service.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{eventService: eventService, logger: logger}
}

// NewEventHandlerWithMocks creates an event handler with mock dependencies for testing
func NewEventHandlerWithMocks(eventService EventServiceInterface, logger *zap.Logger) *EventHandler {
	return &EventHandler{eventService: eventService, logger: logger}
}

// eventNameParam extracts the event name path parameter. Event names carry
// spaces, so the value arrives percent-encoded.
func eventNameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// List godoc
// @Summary List all demo events
// @Tags Events
// @Produce json
// @Success 200 {array} domain.EventDTO
// @Security BearerAuth
// @Router /events [get]
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToEventDTOs(events))
}

// ListActive godoc
// @Summary List events open for enrollment
// @Description Returns approved events that have not been conducted yet.
// @Tags Events
// @Produce json
// @Success 200 {array} domain.EventDTO
// @Security BearerAuth
// @Router /events/active [get]
func (h *EventHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.ListActive(r.Context())
	if err != nil {
		h.logger.Error("failed to list active events", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToEventDTOs(events))
}

// Get godoc
// @Summary Get one event by name
// @Tags Events
// @Produce json
// @Param name path string true "Event name"
// @Success 200 {object} domain.EventDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /events/{name} [get]
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventService.Get(r.Context(), eventNameParam(r))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.logger.Error("failed to get event", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get event")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToEventDTO(event))
}

// Create godoc
// @Summary Create a demo event proposal
// @Description Stage 1 of the event lifecycle: a lead proposes an event. It stays unapproved until an admin finalizes it.
// @Tags Events
// @Accept json
// @Produce json
// @Param request body domain.CreateEventRequest true "Event payload"
// @Success 201 {object} map[string]string
// @Failure 409 {object} domain.APIError "Event name already exists"
// @Security BearerAuth
// @Router /events [post]
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	userCtx := auth.MustFromContext(r.Context())
	if err := h.eventService.Create(r.Context(), userCtx.UserName, &req); err != nil {
		if errors.Is(err, service.ErrConflict) {
			respondWithError(w, http.StatusConflict, "An event with this name already exists")
			return
		}
		h.logger.Error("failed to create event", zap.Error(err), zap.String("event", req.Name))
		respondWithError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Event submitted for admin approval",
	})
}

// Update godoc
// @Summary Update an event's descriptive fields
// @Tags Events
// @Accept json
// @Produce json
// @Param name path string true "Event name"
// @Param request body domain.UpdateEventRequest true "Update payload"
// @Success 200 {object} map[string]string
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /events/{name} [put]
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	name := eventNameParam(r)
	if err := h.eventService.UpdateDetails(r.Context(), name, &req); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.logger.Error("failed to update event", zap.Error(err), zap.String("event", name))
		respondWithError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Event updated"})
}

// CreateSheet godoc
// @Summary Create the event's project workbook from the template
// @Description Copies the template spreadsheet and returns its link. The admin passes the link to Approve to finalize the event.
// @Tags Events
// @Produce json
// @Param name path string true "Event name"
// @Success 201 {object} domain.SheetCreatedResponse
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /events/{name}/sheet [post]
func (h *EventHandler) CreateSheet(w http.ResponseWriter, r *http.Request) {
	name := eventNameParam(r)
	created, err := h.eventService.CreateSheet(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.logger.Error("failed to create event sheet", zap.Error(err), zap.String("event", name))
		respondWithError(w, http.StatusInternalServerError, "Failed to create event sheet")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// Approve godoc
// @Summary Approve an event
// @Description Stage 2 of the event lifecycle: the admin attaches the project workbook link (and optionally a WhatsApp group) and marks the event approved.
// @Tags Events
// @Accept json
// @Produce json
// @Param name path string true "Event name"
// @Param request body domain.ApproveEventRequest true "Approval payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} domain.APIError "Sheet link is not a spreadsheet URL"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /events/{name}/approve [post]
func (h *EventHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req domain.ApproveEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	name := eventNameParam(r)
	if err := h.eventService.Approve(r.Context(), name, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrNoSheetLink):
			respondWithError(w, http.StatusBadRequest, "Sheet link is not a valid spreadsheet URL")
		default:
			h.logger.Error("failed to approve event", zap.Error(err), zap.String("event", name))
			respondWithError(w, http.StatusInternalServerError, "Failed to approve event")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Event approved"})
}
