package handler

import (
	"encoding/json"
	"net/http"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
	"github.com/davidgg090/paymentAPI/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	user, err := h.authService.Register(req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, UserResponse{ID: user.ID, Username: user.Username})
}

func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "user_id")
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid user id"))
		return
	}

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	user, err := h.authService.UpdateUser(id, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{ID: user.ID, Username: user.Username})
}

// Me returns the user behind the authenticated principal.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := r.Context().Value(PrincipalContextKey).(*domain.Principal)
	if !ok {
		writeError(w, errors.ErrUnauthorized)
		return
	}

	user, err := h.authService.GetUser(principal.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{ID: user.ID, Username: user.Username})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token.AccessToken, TokenType: token.TokenType})
}

type contextKey string

// PrincipalContextKey carries the authenticated principal through the
// request context.
const PrincipalContextKey contextKey = "principal"
