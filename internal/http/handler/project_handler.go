package handler

import (
	"context"
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

// ProjectServiceInterface for dependency injection
type ProjectServiceInterface interface {
	All(ctx context.Context) ([]domain.Submission, error)
	Refresh(ctx context.Context) ([]domain.Submission, error)
	FindByTitle(ctx context.Context, title, eventName string) (*domain.Submission, error)
	ForStudent(ctx context.Context, fullName string) ([]domain.Submission, error)
}

type ProjectHandler struct {
	projectService ProjectServiceInterface
	logger         *zap.Logger
}

func NewProjectHandler(projectService *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, logger: logger}
}

// NewProjectHandlerWithMocks creates a project handler with mock dependencies for testing
func NewProjectHandlerWithMocks(projectService ProjectServiceInterface, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, logger: logger}
}

// List godoc
// @Summary List projects across all approved events
// @Description Served from the aggregation cache; use refresh=true to force a re-read of every event workbook.
// @Tags Projects
// @Produce json
// @Param refresh query bool false "Bypass the cache"
// @Success 200 {array} domain.SubmissionDTO
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		subs []domain.Submission
		err  error
	)
	if r.URL.Query().Get("refresh") == "true" {
		subs, err = h.projectService.Refresh(r.Context())
	} else {
		subs, err = h.projectService.All(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to aggregate projects", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list projects")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToSubmissionDTOs(subs))
}

// Get godoc
// @Summary Find a project by title
// @Tags Projects
// @Produce json
// @Param title path string true "Project title"
// @Param event query string false "Restrict the search to one event"
// @Success 200 {object} domain.SubmissionDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{title} [get]
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	if decoded, err := url.PathUnescape(title); err == nil {
		title = decoded
	}

	sub, err := h.projectService.FindByTitle(r.Context(), title, r.URL.Query().Get("event"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to find project", zap.Error(err), zap.String("title", title))
		respondWithError(w, http.StatusInternalServerError, "Failed to find project")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToSubmissionDTO(sub))
}

// Mine godoc
// @Summary List the caller's projects across all events
// @Tags Projects
// @Produce json
// @Success 200 {array} domain.SubmissionDTO
// @Security BearerAuth
// @Router /projects/me [get]
func (h *ProjectHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())

	subs, err := h.projectService.ForStudent(r.Context(), userCtx.FullName)
	if err != nil {
		h.logger.Error("failed to list student projects", zap.Error(err), zap.String("student", userCtx.FullName))
		respondWithError(w, http.StatusInternalServerError, "Failed to list projects")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToSubmissionDTOs(subs))
}
