package benefithandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/hr"
	"peopledesk/internal/transport/http/api"
	"peopledesk/internal/transport/http/middleware"
	"peopledesk/internal/transport/http/shared"
)

// Handler covers the pay-related records: compensation history entries and
// benefit enrollments.
type Handler struct {
	Store *hr.Store
}

func NewHandler(store *hr.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/compensation", func(r chi.Router) {
		r.Get("/", h.handleListCompensations)
		r.Post("/", h.handleCreateCompensation)
		r.Route("/{compensationID}", func(r chi.Router) {
			r.Get("/", h.handleGetCompensation)
			r.Put("/", h.handleUpdateCompensation)
			r.Delete("/", h.handleDeleteCompensation)
		})
	})
	r.Route("/benefits", func(r chi.Router) {
		r.Get("/", h.handleListBenefits)
		r.Post("/", h.handleCreateBenefit)
		r.Route("/{benefitID}", func(r chi.Router) {
			r.Get("/", h.handleGetBenefit)
			r.Put("/", h.handleUpdateBenefit)
			r.Delete("/", h.handleDeleteBenefit)
		})
	})
}

func (h *Handler) handleListCompensations(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if employeeID, present, ok := shared.IntQuery(r, "employeeId"); present {
		if !ok {
			api.Fail(w, http.StatusBadRequest, "invalid_filter", "employeeId must be an integer", reqID)
			return
		}
		records, err := h.Store.ListCompensationsByEmployee(employeeID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "compensation_list_failed", "failed to list compensation records", reqID)
			return
		}
		api.Success(w, records, reqID)
		return
	}
	records, err := h.Store.ListCompensations()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "compensation_list_failed", "failed to list compensation records", reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleCreateCompensation(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload hr.Compensation
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if shared.RejectInvalid(w, reqID, shared.CheckPayload(payload)) {
		return
	}
	record, err := h.Store.CreateCompensation(payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "compensation_create_failed", "failed to create compensation record", reqID)
		return
	}
	api.Created(w, record, reqID)
}

func (h *Handler) handleGetCompensation(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "compensationID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "compensation id must be a positive integer", reqID)
		return
	}
	record, err := h.Store.GetCompensation(id)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "compensation_not_found", "compensation record not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "compensation_get_failed", "failed to load compensation record", reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handleUpdateCompensation(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "compensationID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "compensation id must be a positive integer", reqID)
		return
	}
	var patch hr.CompensationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	record, err := h.Store.UpdateCompensation(id, patch)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "compensation_not_found", "compensation record not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "compensation_update_failed", "failed to update compensation record", reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handleDeleteCompensation(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "compensationID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "compensation id must be a positive integer", reqID)
		return
	}
	deleted, err := h.Store.DeleteCompensation(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "compensation_delete_failed", "failed to delete compensation record", reqID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "compensation_not_found", "compensation record not found", reqID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleListBenefits(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if employeeID, present, ok := shared.IntQuery(r, "employeeId"); present {
		if !ok {
			api.Fail(w, http.StatusBadRequest, "invalid_filter", "employeeId must be an integer", reqID)
			return
		}
		benefits, err := h.Store.ListBenefitsByEmployee(employeeID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "benefit_list_failed", "failed to list benefits", reqID)
			return
		}
		api.Success(w, benefits, reqID)
		return
	}
	benefits, err := h.Store.ListBenefits()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "benefit_list_failed", "failed to list benefits", reqID)
		return
	}
	api.Success(w, benefits, reqID)
}

func (h *Handler) handleCreateBenefit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload hr.Benefit
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if shared.RejectInvalid(w, reqID, shared.CheckPayload(payload)) {
		return
	}
	benefit, err := h.Store.CreateBenefit(payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "benefit_create_failed", "failed to create benefit", reqID)
		return
	}
	api.Created(w, benefit, reqID)
}

func (h *Handler) handleGetBenefit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "benefitID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "benefit id must be a positive integer", reqID)
		return
	}
	benefit, err := h.Store.GetBenefit(id)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "benefit_not_found", "benefit not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "benefit_get_failed", "failed to load benefit", reqID)
		return
	}
	api.Success(w, benefit, reqID)
}

func (h *Handler) handleUpdateBenefit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "benefitID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "benefit id must be a positive integer", reqID)
		return
	}
	var patch hr.BenefitPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	benefit, err := h.Store.UpdateBenefit(id, patch)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "benefit_not_found", "benefit not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "benefit_update_failed", "failed to update benefit", reqID)
		return
	}
	api.Success(w, benefit, reqID)
}

func (h *Handler) handleDeleteBenefit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "benefitID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "benefit id must be a positive integer", reqID)
		return
	}
	deleted, err := h.Store.DeleteBenefit(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "benefit_delete_failed", "failed to delete benefit", reqID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "benefit_not_found", "benefit not found", reqID)
		return
	}
	api.NoContent(w)
}
