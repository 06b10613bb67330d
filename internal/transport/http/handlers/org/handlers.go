package orghandler

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

// Handler serves the organization structure: departments, positions and the
// derived org chart.
type Handler struct {
	Store *hr.Store
}

func NewHandler(store *hr.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.Post("/", h.handleCreateDepartment)
		r.Route("/{departmentID}", func(r chi.Router) {
			r.Get("/", h.handleGetDepartment)
			r.Put("/", h.handleUpdateDepartment)
			r.Delete("/", h.handleDeleteDepartment)
			r.Get("/positions", h.handleListDepartmentPositions)
			r.Get("/employees", h.handleListDepartmentEmployees)
		})
	})
	r.Route("/positions", func(r chi.Router) {
		r.Get("/", h.handleListPositions)
		r.Post("/", h.handleCreatePosition)
		r.Route("/{positionID}", func(r chi.Router) {
			r.Get("/", h.handleGetPosition)
			r.Put("/", h.handleUpdatePosition)
			r.Delete("/", h.handleDeletePosition)
		})
	})
	r.Get("/organization/chart", h.handleOrganizationChart)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	departments, err := h.Store.ListDepartments()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", reqID)
		return
	}
	api.Success(w, departments, reqID)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload hr.Department
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if shared.RejectInvalid(w, reqID, shared.CheckPayload(payload)) {
		return
	}
	dept, err := h.Store.CreateDepartment(payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_create_failed", "failed to create department", reqID)
		return
	}
	api.Created(w, dept, reqID)
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "department id must be a positive integer", reqID)
		return
	}
	dept, err := h.Store.GetDepartment(id)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "department_not_found", "department not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "department_get_failed", "failed to load department", reqID)
		return
	}
	api.Success(w, dept, reqID)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "department id must be a positive integer", reqID)
		return
	}
	var patch hr.DepartmentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	dept, err := h.Store.UpdateDepartment(id, patch)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "department_not_found", "department not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "department_update_failed", "failed to update department", reqID)
		return
	}
	api.Success(w, dept, reqID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "department id must be a positive integer", reqID)
		return
	}
	deleted, err := h.Store.DeleteDepartment(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_delete_failed", "failed to delete department", reqID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "department_not_found", "department not found", reqID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleListDepartmentPositions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "department id must be a positive integer", reqID)
		return
	}
	positions, err := h.Store.ListPositionsByDepartment(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "position_list_failed", "failed to list positions", reqID)
		return
	}
	api.Success(w, positions, reqID)
}

func (h *Handler) handleListDepartmentEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "department id must be a positive integer", reqID)
		return
	}
	employees, err := h.Store.ListEmployeesByDepartment(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if departmentID, present, ok := shared.IntQuery(r, "departmentId"); present {
		if !ok {
			api.Fail(w, http.StatusBadRequest, "invalid_filter", "departmentId must be an integer", reqID)
			return
		}
		positions, err := h.Store.ListPositionsByDepartment(departmentID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "position_list_failed", "failed to list positions", reqID)
			return
		}
		api.Success(w, positions, reqID)
		return
	}
	positions, err := h.Store.ListPositions()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "position_list_failed", "failed to list positions", reqID)
		return
	}
	api.Success(w, positions, reqID)
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload hr.Position
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if shared.RejectInvalid(w, reqID, shared.CheckPayload(payload)) {
		return
	}
	pos, err := h.Store.CreatePosition(payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "position_create_failed", "failed to create position", reqID)
		return
	}
	api.Created(w, pos, reqID)
}

func (h *Handler) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "positionID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "position id must be a positive integer", reqID)
		return
	}
	pos, err := h.Store.GetPosition(id)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "position_not_found", "position not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "position_get_failed", "failed to load position", reqID)
		return
	}
	api.Success(w, pos, reqID)
}

func (h *Handler) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "positionID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "position id must be a positive integer", reqID)
		return
	}
	var patch hr.PositionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	pos, err := h.Store.UpdatePosition(id, patch)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "position_not_found", "position not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "position_update_failed", "failed to update position", reqID)
		return
	}
	api.Success(w, pos, reqID)
}

func (h *Handler) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "positionID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "position id must be a positive integer", reqID)
		return
	}
	deleted, err := h.Store.DeletePosition(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "position_delete_failed", "failed to delete position", reqID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "position_not_found", "position not found", reqID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleOrganizationChart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	chart, err := h.Store.OrganizationChart()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "org_chart_failed", "failed to build organization chart", reqID)
		return
	}
	api.Success(w, chart, reqID)
}
