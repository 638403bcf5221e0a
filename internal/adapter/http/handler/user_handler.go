package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/infrastructure/auth"
	"github.com/iho/gowallet/internal/usecase"
)

// UserHandler handles registration, verification and login.
type UserHandler struct {
	userUC     *usecase.UserUseCase
	jwtManager *auth.JWTManager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUC *usecase.UserUseCase, jwtManager *auth.JWTManager) *UserHandler {
	return &UserHandler{
		userUC:     userUC,
		jwtManager: jwtManager,
	}
}

// Register creates a new user and their wallet account.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "registration failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// VerifyOTP marks the user's email as verified.
func (h *UserHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.userUC.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		writeError(w, mapDomainError(err), "otp verification failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "email verified"})
}

// Login authenticates a user and issues a JWT.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}

// Get retrieves a user by ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if !actor.Role.CanManage() && actor.ID != id {
		writeError(w, http.StatusForbidden, "insufficient permissions", "")
		return
	}

	user, err := h.userUC.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

// List lists users with pagination. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)
	size := parseIntQuery(r, "size", 10)

	users, err := h.userUC.ListUsers(r.Context(), page, size)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list users", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UsersFromDomain(users))
}
