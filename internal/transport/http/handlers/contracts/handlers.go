package contracthandler

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

type Handler struct {
	Store *hr.Store
}

func NewHandler(store *hr.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/contracts", func(r chi.Router) {
		r.Get("/", h.handleListContracts)
		r.Post("/", h.handleCreateContract)
		r.Route("/{contractID}", func(r chi.Router) {
			r.Get("/", h.handleGetContract)
			r.Put("/", h.handleUpdateContract)
			r.Delete("/", h.handleDeleteContract)
		})
	})
}

func (h *Handler) handleListContracts(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if employeeID, present, ok := shared.IntQuery(r, "employeeId"); present {
		if !ok {
			api.Fail(w, http.StatusBadRequest, "invalid_filter", "employeeId must be an integer", reqID)
			return
		}
		contracts, err := h.Store.ListContractsByEmployee(employeeID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "contract_list_failed", "failed to list contracts", reqID)
			return
		}
		api.Success(w, contracts, reqID)
		return
	}

	if days, present, ok := shared.IntQuery(r, "renewalDays"); present {
		if !ok || days < 0 {
			api.Fail(w, http.StatusBadRequest, "invalid_filter", "renewalDays must be a non-negative integer", reqID)
			return
		}
		contracts, err := h.Store.GetContractsForRenewal(days)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "contract_list_failed", "failed to list contracts", reqID)
			return
		}
		api.Success(w, contracts, reqID)
		return
	}

	contracts, err := h.Store.ListContracts()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contract_list_failed", "failed to list contracts", reqID)
		return
	}
	api.Success(w, contracts, reqID)
}

func (h *Handler) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload hr.Contract
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if shared.RejectInvalid(w, reqID, shared.CheckPayload(payload)) {
		return
	}
	contract, err := h.Store.CreateContract(payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contract_create_failed", "failed to create contract", reqID)
		return
	}
	api.Created(w, contract, reqID)
}

func (h *Handler) handleGetContract(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "contractID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "contract id must be a positive integer", reqID)
		return
	}
	contract, err := h.Store.GetContract(id)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "contract_not_found", "contract not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "contract_get_failed", "failed to load contract", reqID)
		return
	}
	api.Success(w, contract, reqID)
}

func (h *Handler) handleUpdateContract(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "contractID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "contract id must be a positive integer", reqID)
		return
	}
	var patch hr.ContractPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	contract, err := h.Store.UpdateContract(id, patch)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "contract_not_found", "contract not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "contract_update_failed", "failed to update contract", reqID)
		return
	}
	api.Success(w, contract, reqID)
}

func (h *Handler) handleDeleteContract(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "contractID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "contract id must be a positive integer", reqID)
		return
	}
	deleted, err := h.Store.DeleteContract(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contract_delete_failed", "failed to delete contract", reqID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "contract_not_found", "contract not found", reqID)
		return
	}
	api.NoContent(w)
}
