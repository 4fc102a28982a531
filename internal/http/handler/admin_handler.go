package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/mapper"
	"github.com/pragyanai/demotrack/internal/service"
	"go.uber.org/zap"
)

// UserServiceInterface for dependency injection
type UserServiceInterface interface {
	Pending(ctx context.Context) ([]domain.User, error)
	Approved(ctx context.Context) ([]domain.User, error)
	Leads(ctx context.Context) ([]domain.User, error)
	Approve(ctx context.Context, userNames []string) (approved, skipped []string, err error)
	Promote(ctx context.Context, userName string) error
}

// DashboardServiceInterface for dependency injection
type DashboardServiceInterface interface {
	Stats(ctx context.Context) (*domain.StatsDTO, error)
}

type AdminHandler struct {
	userService      UserServiceInterface
	dashboardService DashboardServiceInterface
	logFilePath      string
	logger           *zap.Logger
}

func NewAdminHandler(
	userService *service.UserService,
	dashboardService *service.DashboardService,
	logFilePath string,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		dashboardService: dashboardService,
		logFilePath:      logFilePath,
		logger:           logger,
	}
}

// NewAdminHandlerWithMocks creates an admin handler with mock dependencies for testing
func NewAdminHandlerWithMocks(
	userService UserServiceInterface,
	dashboardService DashboardServiceInterface,
	logFilePath string,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		dashboardService: dashboardService,
		logFilePath:      logFilePath,
		logger:           logger,
	}
}

// Stats godoc
// @Summary Admin dashboard headline numbers
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.StatsDTO
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to compute stats", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// PendingUsers godoc
// @Summary List accounts awaiting approval
// @Tags Admin
// @Produce json
// @Success 200 {array} domain.UserDTO
// @Security BearerAuth
// @Router /admin/users/pending [get]
func (h *AdminHandler) PendingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Pending(r.Context())
	if err != nil {
		h.logger.Error("failed to list pending users", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToUserDTOs(users))
}

// ApprovedUsers godoc
// @Summary List approved accounts
// @Tags Admin
// @Produce json
// @Success 200 {array} domain.UserDTO
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminHandler) ApprovedUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Approved(r.Context())
	if err != nil {
		h.logger.Error("failed to list approved users", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToUserDTOs(users))
}

// Leads godoc
// @Summary List accounts holding the Lead role
// @Tags Admin
// @Produce json
// @Success 200 {array} domain.UserDTO
// @Security BearerAuth
// @Router /admin/users/leads [get]
func (h *AdminHandler) Leads(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Leads(r.Context())
	if err != nil {
		h.logger.Error("failed to list leads", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToUserDTOs(users))
}

// ApproveUsers godoc
// @Summary Approve a batch of pending accounts
// @Description Usernames that are unknown or already approved are reported back as skipped.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body domain.ApproveUsersRequest true "Usernames to approve"
// @Success 200 {object} map[string][]string
// @Security BearerAuth
// @Router /admin/users/approve [post]
func (h *AdminHandler) ApproveUsers(w http.ResponseWriter, r *http.Request) {
	var req domain.ApproveUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	approved, skipped, err := h.userService.Approve(r.Context(), req.UserNames)
	if err != nil {
		h.logger.Error("failed to approve users", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to approve users")
		return
	}

	respondJSON(w, http.StatusOK, map[string][]string{
		"approved": approved,
		"skipped":  skipped,
	})
}

// PromoteUser godoc
// @Summary Promote an approved student to Lead
// @Tags Admin
// @Produce json
// @Param userName path string true "Username"
// @Success 200 {object} map[string]string
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Not approved or already a lead"
// @Security BearerAuth
// @Router /admin/users/{userName}/promote [post]
func (h *AdminHandler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "userName")
	if decoded, err := url.PathUnescape(userName); err == nil {
		userName = decoded
	}

	if err := h.userService.Promote(r.Context(), userName); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "User does not exist")
		case errors.Is(err, service.ErrPermissionDenied), errors.Is(err, service.ErrConflict):
			respondWithError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("failed to promote user", zap.Error(err), zap.String("user_name", userName))
			respondWithError(w, http.StatusInternalServerError, "Failed to promote user")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "User promoted to Lead"})
}

// Logs godoc
// @Summary Tail the application log file
// @Tags Admin
// @Produce json
// @Param lines query int false "Number of trailing lines (default 200, max 2000)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} domain.APIError "File logging not configured"
// @Security BearerAuth
// @Router /admin/logs [get]
func (h *AdminHandler) Logs(w http.ResponseWriter, r *http.Request) {
	if h.logFilePath == "" {
		respondWithError(w, http.StatusNotFound, "File logging is not configured")
		return
	}

	lines := 200
	if raw := r.URL.Query().Get("lines"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondWithError(w, http.StatusBadRequest, "lines must be a positive integer")
			return
		}
		lines = n
	}
	if lines > 2000 {
		lines = 2000
	}

	data, err := os.ReadFile(h.logFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			respondWithError(w, http.StatusNotFound, "Log file does not exist yet")
			return
		}
		h.logger.Error("failed to read log file", zap.Error(err), zap.String("path", h.logFilePath))
		respondWithError(w, http.StatusInternalServerError, "Failed to read log file")
		return
	}

	all := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(all) > lines {
		all = all[len(all)-lines:]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"lines": all,
		"count": len(all),
	})
}
