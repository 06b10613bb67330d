package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/auth"
	"peopledesk/internal/domain/hr"
	"peopledesk/internal/transport/http/api"
	"peopledesk/internal/transport/http/middleware"
)

type Handler struct {
	Store    *hr.Store
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(store *hr.Store, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Store: store, Secret: secret, TokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RateLimit(10, time.Minute)).Post("/login", h.handleLogin)
	r.Get("/me", h.handleMe)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  loginIdentity `json:"user"`
}

type loginIdentity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.Username == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "username and password are required", reqID)
		return
	}

	user, err := h.Store.GetUserByUsername(payload.Username)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to process login", reqID)
		return
	}
	if user.IsActive != nil && !*user.IsActive {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", reqID)
		return
	}
	if !auth.VerifyPassword(user.Password, payload.Password) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", reqID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to issue token", reqID)
		return
	}

	api.Success(w, loginResponse{
		Token: token,
		User:  loginIdentity{ID: user.ID, Username: user.Username, Role: user.Role},
	}, reqID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	claims, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	user, err := h.Store.GetUser(claims.UserID)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	api.Success(w, loginIdentity{ID: user.ID, Username: user.Username, Role: user.Role}, reqID)
}
