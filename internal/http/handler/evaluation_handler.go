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

// EvaluationServiceInterface for dependency injection
type EvaluationServiceInterface interface {
	Evaluate(ctx context.Context, eventName string, evaluator *auth.UserContext, req *domain.EvaluationRequest) (*domain.Evaluation, error)
	ListForEvent(ctx context.Context, eventName string) ([]domain.Evaluation, error)
}

type EvaluationHandler struct {
	evaluationService EvaluationServiceInterface
	logger            *zap.Logger
}

func NewEvaluationHandler(evaluationService *service.EvaluationService, logger *zap.Logger) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService, logger: logger}
}

// NewEvaluationHandlerWithMocks creates an evaluation handler with mock dependencies for testing
func NewEvaluationHandlerWithMocks(evaluationService EvaluationServiceInterface, logger *zap.Logger) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService, logger: logger}
}

// Evaluate godoc
// @Summary Score a candidate's demo
// @Description Averages the four rubric scores and appends the result to the event's evaluation worksheet.
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param name path string true "Event name"
// @Param request body domain.EvaluationRequest true "Scores payload"
// @Success 201 {object} domain.EvaluationDTO
// @Failure 404 {object} domain.APIError "Event or candidate not found"
// @Failure 409 {object} domain.APIError "Event not active"
// @Security BearerAuth
// @Router /events/{name}/evaluations [post]
func (h *EvaluationHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req domain.EvaluationRequest
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

	eval, err := h.evaluationService.Evaluate(r.Context(), name, userCtx, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrCandidateNotFound):
			respondWithError(w, http.StatusNotFound, "Candidate has no submission in this event")
		case errors.Is(err, service.ErrEventNotActive):
			respondWithError(w, http.StatusConflict, "Event is not active")
		case errors.Is(err, service.ErrNoSheetLink):
			respondWithError(w, http.StatusConflict, "Event has no project sheet linked yet")
		default:
			h.logger.Error("failed to record evaluation", zap.Error(err), zap.String("event", name))
			respondWithError(w, http.StatusInternalServerError, "Failed to record evaluation")
		}
		return
	}

	respondJSON(w, http.StatusCreated, mapper.ToEvaluationDTO(eval))
}

// List godoc
// @Summary List evaluations for an event
// @Tags Evaluations
// @Produce json
// @Param name path string true "Event name"
// @Success 200 {array} domain.EvaluationDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /events/{name}/evaluations [get]
func (h *EvaluationHandler) List(w http.ResponseWriter, r *http.Request) {
	name := eventNameParam(r)
	evals, err := h.evaluationService.ListForEvent(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrNoSheetLink):
			respondWithError(w, http.StatusConflict, "Event has no project sheet linked yet")
		default:
			h.logger.Error("failed to list evaluations", zap.Error(err), zap.String("event", name))
			respondWithError(w, http.StatusInternalServerError, "Failed to list evaluations")
		}
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToEvaluationDTOs(evals))
}
