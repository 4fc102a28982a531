package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pragyanai/demotrack/internal/auth"
	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/mapper"
	"github.com/pragyanai/demotrack/internal/service"
	"go.uber.org/zap"
)

// EnrollmentServiceInterface for dependency injection
type EnrollmentServiceInterface interface {
	ListForEvent(ctx context.Context, eventName string) ([]domain.Submission, error)
	MySubmission(ctx context.Context, eventName string, user *auth.UserContext) (*domain.Submission, error)
	Enroll(ctx context.Context, eventName string, user *auth.UserContext, req *domain.EnrollmentRequest) (bool, error)
}

type EnrollmentHandler struct {
	enrollmentService EnrollmentServiceInterface
	logger            *zap.Logger
}

func NewEnrollmentHandler(enrollmentService *service.EnrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService, logger: logger}
}

// NewEnrollmentHandlerWithMocks creates an enrollment handler with mock dependencies for testing
func NewEnrollmentHandlerWithMocks(enrollmentService EnrollmentServiceInterface, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService, logger: logger}
}

// List godoc
// @Summary List submissions for an event
// @Tags Enrollments
// @Produce json
// @Param name path string true "Event name"
// @Success 200 {array} domain.SubmissionDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /events/{name}/submissions [get]
func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	name := eventNameParam(r)
	subs, err := h.enrollmentService.ListForEvent(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrNoSheetLink):
			respondWithError(w, http.StatusConflict, "Event has no project sheet linked yet")
		default:
			h.logger.Error("failed to list submissions", zap.Error(err), zap.String("event", name))
			respondWithError(w, http.StatusInternalServerError, "Failed to list submissions")
		}
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToSubmissionDTOs(subs))
}

// Mine godoc
// @Summary Get the caller's submission for an event
// @Tags Enrollments
// @Produce json
// @Param name path string true "Event name"
// @Success 200 {object} domain.SubmissionDTO
// @Failure 404 {object} domain.APIError "Not enrolled"
// @Security BearerAuth
// @Router /events/{name}/submissions/me [get]
func (h *EnrollmentHandler) Mine(w http.ResponseWriter, r *http.Request) {
	name := eventNameParam(r)
	userCtx := auth.MustFromContext(r.Context())

	sub, err := h.enrollmentService.MySubmission(r.Context(), name, userCtx)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "No submission found for this event")
		case errors.Is(err, service.ErrNoSheetLink):
			respondWithError(w, http.StatusConflict, "Event has no project sheet linked yet")
		default:
			h.logger.Error("failed to get submission", zap.Error(err), zap.String("event", name))
			respondWithError(w, http.StatusInternalServerError, "Failed to get submission")
		}
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToSubmissionDTO(sub))
}

// Enroll godoc
// @Summary Enroll in an event or update an existing submission
// @Description Upserts the caller's project row in the event workbook. Identity fields come from the session, not the payload.
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param name path string true "Event name"
// @Param request body domain.EnrollmentRequest true "Project payload"
// @Success 200 {object} map[string]string "Submission updated"
// @Success 201 {object} map[string]string "Enrolled"
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Event closed for enrollment"
// @Security BearerAuth
// @Router /events/{name}/submissions [post]
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req domain.EnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	name := eventNameParam(r)
	userCtx := auth.MustFromContext(r.Context())

	created, err := h.enrollmentService.Enroll(r.Context(), name, userCtx, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrEventNotActive):
			respondWithError(w, http.StatusConflict, "Event is not open for enrollment")
		case errors.Is(err, service.ErrNoSheetLink):
			respondWithError(w, http.StatusConflict, "Event has no project sheet linked yet")
		default:
			h.logger.Error("failed to enroll", zap.Error(err), zap.String("event", name))
			respondWithError(w, http.StatusInternalServerError, "Failed to enroll")
		}
		return
	}

	if created {
		respondJSON(w, http.StatusCreated, map[string]string{"message": "Enrolled in event"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Submission updated"})
}
