package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/rag"
	"github.com/pragyanai/demotrack/internal/service"
	"go.uber.org/zap"
)

// QAServiceInterface for dependency injection
type QAServiceInterface interface {
	Ask(ctx context.Context, req *domain.QARequest) (*domain.QAResponse, error)
}

type QAHandler struct {
	qaService QAServiceInterface
	logger    *zap.Logger
}

func NewQAHandler(qaService *service.QAService, logger *zap.Logger) *QAHandler {
	return &QAHandler{qaService: qaService, logger: logger}
}

// NewQAHandlerWithMocks creates a QA handler with mock dependencies for testing
func NewQAHandlerWithMocks(qaService QAServiceInterface, logger *zap.Logger) *QAHandler {
	return &QAHandler{qaService: qaService, logger: logger}
}

// Ask godoc
// @Summary Ask a question about a project's report
// @Description Retrieves the project's report document, finds the passages closest to the question, and generates an answer grounded on them.
// @Tags QA
// @Accept json
// @Produce json
// @Param request body domain.QARequest true "Question payload"
// @Success 200 {object} domain.QAResponse
// @Failure 404 {object} domain.APIError "Project not found"
// @Failure 409 {object} domain.APIError "Project has no report"
// @Security BearerAuth
// @Router /qa [post]
func (h *QAHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req domain.QARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	answer, err := h.qaService.Ask(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, service.ErrQADisabled):
			respondWithError(w, http.StatusServiceUnavailable, "Report question answering is not configured")
		case errors.Is(err, service.ErrNoReportLink), errors.Is(err, rag.ErrNoReport):
			respondWithError(w, http.StatusConflict, "Project has no report link to answer from")
		case errors.Is(err, rag.ErrEmptyDocument):
			respondWithError(w, http.StatusConflict, "Report document is empty or unreadable")
		default:
			h.logger.Error("question answering failed", zap.Error(err), zap.String("project", req.ProjectTitle))
			respondWithError(w, http.StatusInternalServerError, "Failed to answer question")
		}
		return
	}

	respondJSON(w, http.StatusOK, answer)
}
