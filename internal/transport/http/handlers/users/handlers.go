package userhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/auth"
	"peopledesk/internal/domain/hr"
	"peopledesk/internal/transport/http/api"
	"peopledesk/internal/transport/http/middleware"
	"peopledesk/internal/transport/http/shared"
)

type Handler struct {
	Store *hr.Store
}

func NewHandler(store *hr.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.handleListUsers)
		r.Post("/", h.handleCreateUser)
		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", h.handleGetUser)
			r.Put("/", h.handleUpdateUser)
			r.Delete("/", h.handleDeleteUser)
		})
	})
}

// sanitize blanks the credential before a user record leaves the API.
func sanitize(u hr.User) hr.User {
	u.Password = ""
	return u
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	users, err := h.Store.ListUsers()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_list_failed", "failed to list users", reqID)
		return
	}
	out := make([]hr.User, 0, len(users))
	for _, u := range users {
		out = append(out, sanitize(u))
	}
	api.Success(w, out, reqID)
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload hr.User
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if shared.RejectInvalid(w, reqID, shared.CheckPayload(payload)) {
		return
	}
	hashed, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_create_failed", "failed to create user", reqID)
		return
	}
	payload.Password = hashed
	user, err := h.Store.CreateUser(payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_create_failed", "failed to create user", reqID)
		return
	}
	api.Created(w, sanitize(*user), reqID)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "userID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "user id must be a positive integer", reqID)
		return
	}
	user, err := h.Store.GetUser(id)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "user_get_failed", "failed to load user", reqID)
		return
	}
	api.Success(w, sanitize(*user), reqID)
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "userID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "user id must be a positive integer", reqID)
		return
	}
	var patch hr.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if patch.Password != nil {
		hashed, err := auth.HashPassword(*patch.Password)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "user_update_failed", "failed to update user", reqID)
			return
		}
		patch.Password = &hashed
	}
	user, err := h.Store.UpdateUser(id, patch)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "user_update_failed", "failed to update user", reqID)
		return
	}
	api.Success(w, sanitize(*user), reqID)
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "userID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "user id must be a positive integer", reqID)
		return
	}
	deleted, err := h.Store.DeleteUser(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_delete_failed", "failed to delete user", reqID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", reqID)
		return
	}
	api.NoContent(w)
}
