package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/hr"
	"peopledesk/internal/domain/reports"
	"peopledesk/internal/transport/http/api"
	"peopledesk/internal/transport/http/middleware"
	"peopledesk/internal/transport/http/shared"
)

type Handler struct {
	Store   *hr.Store
	Reports *reports.Service
}

func NewHandler(store *hr.Store, reports *reports.Service) *Handler {
	return &Handler{Store: store, Reports: reports}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGetEmployee)
			r.Put("/", h.handleUpdateEmployee)
			r.Delete("/", h.handleDeleteEmployee)
			r.Get("/documents", h.handleListEmployeeDocuments)
			r.Get("/profile.pdf", h.handleProfilePDF)
		})
	})
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", h.handleListDocuments)
		r.Post("/", h.handleCreateDocument)
		r.Route("/{documentID}", func(r chi.Router) {
			r.Get("/", h.handleGetDocument)
			r.Put("/", h.handleUpdateDocument)
			r.Delete("/", h.handleDeleteDocument)
		})
	})
}

// List filters are checked in a fixed order; when several are supplied the
// first present one wins.
func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	type filter struct {
		name string
		list func(int) ([]hr.Employee, error)
	}
	filters := []filter{
		{"departmentId", h.Store.ListEmployeesByDepartment},
		{"positionId", h.Store.ListEmployeesByPosition},
		{"managerId", h.Store.ListEmployeesByManager},
	}
	for _, f := range filters {
		value, present, ok := shared.IntQuery(r, f.name)
		if !present {
			continue
		}
		if !ok {
			api.Fail(w, http.StatusBadRequest, "invalid_filter", f.name+" must be an integer", reqID)
			return
		}
		employees, err := f.list(value)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", reqID)
			return
		}
		api.Success(w, employees, reqID)
		return
	}

	employees, err := h.Store.ListEmployees()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload hr.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if shared.RejectInvalid(w, reqID, shared.CheckPayload(payload)) {
		return
	}
	emp, err := h.Store.CreateEmployee(payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}
	api.Created(w, emp, reqID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", reqID)
		return
	}
	emp, err := h.Store.GetEmployee(id)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", reqID)
		return
	}
	var patch hr.EmployeePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	emp, err := h.Store.UpdateEmployee(id, patch)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", reqID)
		return
	}
	deleted, err := h.Store.DeleteEmployee(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", reqID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleListEmployeeDocuments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", reqID)
		return
	}
	documents, err := h.Store.ListDocumentsByEmployee(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "document_list_failed", "failed to list documents", reqID)
		return
	}
	api.Success(w, documents, reqID)
}

func (h *Handler) handleProfilePDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", reqID)
		return
	}
	pdf, err := h.Reports.EmployeeProfilePDF(r.Context(), id)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "profile_pdf_failed", "failed to render profile", reqID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="employee-`+strconv.Itoa(id)+`-profile.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if employeeID, present, ok := shared.IntQuery(r, "employeeId"); present {
		if !ok {
			api.Fail(w, http.StatusBadRequest, "invalid_filter", "employeeId must be an integer", reqID)
			return
		}
		documents, err := h.Store.ListDocumentsByEmployee(employeeID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "document_list_failed", "failed to list documents", reqID)
			return
		}
		api.Success(w, documents, reqID)
		return
	}
	documents, err := h.Store.ListDocuments()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "document_list_failed", "failed to list documents", reqID)
		return
	}
	api.Success(w, documents, reqID)
}

func (h *Handler) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload hr.Document
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if shared.RejectInvalid(w, reqID, shared.CheckPayload(payload)) {
		return
	}
	doc, err := h.Store.CreateDocument(payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "document_create_failed", "failed to create document", reqID)
		return
	}
	api.Created(w, doc, reqID)
}

func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "documentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "document id must be a positive integer", reqID)
		return
	}
	doc, err := h.Store.GetDocument(id)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "document_not_found", "document not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "document_get_failed", "failed to load document", reqID)
		return
	}
	api.Success(w, doc, reqID)
}

func (h *Handler) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "documentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "document id must be a positive integer", reqID)
		return
	}
	var patch hr.DocumentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	doc, err := h.Store.UpdateDocument(id, patch)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "document_not_found", "document not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "document_update_failed", "failed to update document", reqID)
		return
	}
	api.Success(w, doc, reqID)
}

func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "documentID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "document id must be a positive integer", reqID)
		return
	}
	deleted, err := h.Store.DeleteDocument(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "document_delete_failed", "failed to delete document", reqID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "document_not_found", "document not found", reqID)
		return
	}
	api.NoContent(w)
}
