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

// AuthServiceInterface for dependency injection
type AuthServiceInterface interface {
	Signup(ctx context.Context, req *domain.SignupRequest) error
	Login(ctx context.Context, identifier, password string) (*domain.User, error)
	AdminLogin(ctx context.Context, userName, password string) (*domain.Admin, error)
	Profile(ctx context.Context, userName string) (*domain.User, error)
}

type AuthHandler struct {
	authService AuthServiceInterface
	issuer      *auth.TokenIssuer
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, issuer *auth.TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		issuer:      issuer,
		logger:      logger,
	}
}

// NewAuthHandlerWithMocks creates an auth handler with mock dependencies for testing
func NewAuthHandlerWithMocks(authService AuthServiceInterface, issuer *auth.TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		issuer:      issuer,
		logger:      logger,
	}
}

// Signup godoc
// @Summary Register a new student account
// @Description Creates a pending account in the User worksheet. An admin must approve it before login succeeds.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.SignupRequest true "Signup payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Username already taken"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.authService.Signup(r.Context(), &req); err != nil {
		if errors.Is(err, service.ErrConflict) {
			respondWithError(w, http.StatusConflict, "Username is already taken")
			return
		}
		h.logger.Error("signup failed", zap.Error(err), zap.String("user_name", req.UserName))
		respondWithError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Account created. An admin will approve it shortly.",
	})
}

// Login godoc
// @Summary Log in a student or lead
// @Description Authenticates by username or login phone number against the User worksheet.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Login payload"
// @Success 200 {object} domain.TokenResponse
// @Failure 401 {object} domain.APIError "Invalid password"
// @Failure 403 {object} domain.APIError "Account pending approval"
// @Failure 404 {object} domain.APIError "User does not exist"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "User does not exist")
		case errors.Is(err, service.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, "Invalid password")
		case errors.Is(err, service.ErrNotApproved):
			respondWithError(w, http.StatusForbidden, "Account is pending admin approval")
		default:
			h.logger.Error("login failed", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	h.issueToken(w, &auth.UserContext{
		UserName: user.UserName,
		FullName: user.FullName,
		College:  user.College,
		Branch:   user.Branch,
		Role:     user.Role,
	}, mapper.ToUserDTO(user))
}

// AdminLogin godoc
// @Summary Log in an administrator
// @Description Authenticates against the Admin worksheet.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.AdminLoginRequest true "Admin login payload"
// @Success 200 {object} domain.TokenResponse
// @Failure 401 {object} domain.APIError
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	admin, err := h.authService.AdminLogin(r.Context(), req.UserName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, "Invalid admin credentials")
		default:
			h.logger.Error("admin login failed", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	h.issueToken(w, &auth.UserContext{
		UserName: admin.UserName,
		FullName: admin.UserName,
		Role:     domain.RoleAdmin,
	}, domain.UserDTO{
		UserName: admin.UserName,
		FullName: admin.UserName,
		Role:     string(domain.RoleAdmin),
		Status:   string(domain.StatusApproved),
	})
}

// Me godoc
// @Summary Get the current authenticated account
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.UserDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// Admin identities live in a separate worksheet without profile rows.
	if userCtx.IsAdmin() {
		respondJSON(w, http.StatusOK, domain.UserDTO{
			UserName: userCtx.UserName,
			FullName: userCtx.FullName,
			Role:     string(domain.RoleAdmin),
			Status:   string(domain.StatusApproved),
		})
		return
	}

	user, err := h.authService.Profile(r.Context(), userCtx.UserName)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "User does not exist")
			return
		}
		h.logger.Error("profile lookup failed", zap.Error(err), zap.String("user_name", userCtx.UserName))
		respondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToUserDTO(user))
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, userCtx *auth.UserContext, dto domain.UserDTO) {
	token, err := h.issuer.Issue(userCtx)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err), zap.String("user_name", userCtx.UserName))
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, domain.TokenResponse{
		Token:     token,
		ExpiresIn: int(h.issuer.TTL().Seconds()),
		User:      dto,
	})
}
