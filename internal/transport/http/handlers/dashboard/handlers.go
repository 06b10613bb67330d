package dashboardhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/hr"
	"peopledesk/internal/transport/http/api"
	"peopledesk/internal/transport/http/middleware"
)

type Handler struct {
	Store *hr.Store
}

func NewHandler(store *hr.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/summary", h.handleSummary)
	r.Get("/dashboard/employees", h.handleRecentEmployees)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	summary, err := h.Store.GetDashboardSummary()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard summary", reqID)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleRecentEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	recent, err := h.Store.GetRecentEmployees()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to list recent employees", reqID)
		return
	}
	api.Success(w, recent, reqID)
}
