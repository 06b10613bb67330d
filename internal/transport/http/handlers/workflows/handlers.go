package workflowhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"peopledesk/internal/domain/hr"
	"peopledesk/internal/domain/workflow"
	"peopledesk/internal/transport/http/api"
	"peopledesk/internal/transport/http/middleware"
	"peopledesk/internal/transport/http/shared"
)

type Handler struct {
	Store  *hr.Store
	Engine *workflow.Engine
}

func NewHandler(store *hr.Store, engine *workflow.Engine) *Handler {
	return &Handler{Store: store, Engine: engine}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/workflows", func(r chi.Router) {
		r.Get("/", h.handleListWorkflows)
		r.Post("/", h.handleCreateWorkflow)
		r.Route("/{workflowID}", func(r chi.Router) {
			r.Get("/", h.handleGetWorkflow)
			r.Put("/", h.handleUpdateWorkflow)
			r.Delete("/", h.handleDeleteWorkflow)
			r.Get("/instances", h.handleListWorkflowTemplateInstances)
		})
	})
	r.Route("/workflow-instances", func(r chi.Router) {
		r.Get("/", h.handleListInstances)
		r.Post("/", h.handleCreateInstance)
		r.Route("/{instanceID}", func(r chi.Router) {
			r.Get("/", h.handleGetInstance)
			r.Put("/", h.handleUpdateInstance)
			r.Delete("/", h.handleDeleteInstance)
			r.Post("/advance", h.handleAdvance)
			r.Post("/approve", h.handleApprove)
			r.Post("/reject", h.handleReject)
		})
	})
}

// instanceView decorates an instance with the display name of its current
// step when the template still defines one.
type instanceView struct {
	*hr.WorkflowInstance
	CurrentStepName string `json:"currentStepName,omitempty"`
}

func (h *Handler) viewOf(inst *hr.WorkflowInstance) instanceView {
	view := instanceView{WorkflowInstance: inst}
	tmpl, err := h.Store.GetWorkflow(inst.WorkflowID)
	if err != nil {
		return view
	}
	if name, ok := workflow.StepName(tmpl, inst.CurrentStep); ok {
		view.CurrentStepName = name
	}
	return view
}

func (h *Handler) handleListWorkflows(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	workflows, err := h.Store.ListWorkflows()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "workflow_list_failed", "failed to list workflows", reqID)
		return
	}
	api.Success(w, workflows, reqID)
}

func (h *Handler) handleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload hr.Workflow
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if shared.RejectInvalid(w, reqID, shared.CheckPayload(payload)) {
		return
	}
	created, err := h.Store.CreateWorkflow(payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "workflow_create_failed", "failed to create workflow", reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "workflowID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "workflow id must be a positive integer", reqID)
		return
	}
	wf, err := h.Store.GetWorkflow(id)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "workflow_not_found", "workflow not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "workflow_get_failed", "failed to load workflow", reqID)
		return
	}
	api.Success(w, wf, reqID)
}

func (h *Handler) handleUpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "workflowID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "workflow id must be a positive integer", reqID)
		return
	}
	var patch hr.WorkflowPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	wf, err := h.Store.UpdateWorkflow(id, patch)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "workflow_not_found", "workflow not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "workflow_update_failed", "failed to update workflow", reqID)
		return
	}
	api.Success(w, wf, reqID)
}

func (h *Handler) handleDeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "workflowID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "workflow id must be a positive integer", reqID)
		return
	}
	deleted, err := h.Store.DeleteWorkflow(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "workflow_delete_failed", "failed to delete workflow", reqID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "workflow_not_found", "workflow not found", reqID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleListWorkflowTemplateInstances(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "workflowID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "workflow id must be a positive integer", reqID)
		return
	}
	instances, err := h.Store.ListWorkflowInstances()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "instance_list_failed", "failed to list workflow instances", reqID)
		return
	}
	matching := make([]hr.WorkflowInstance, 0)
	for _, inst := range instances {
		if inst.WorkflowID == id {
			matching = append(matching, inst)
		}
	}
	api.Success(w, matching, reqID)
}

func (h *Handler) handleListInstances(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if status := r.URL.Query().Get("status"); status != "" {
		instances, err := h.Store.ListWorkflowInstancesByStatus(status)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "instance_list_failed", "failed to list workflow instances", reqID)
			return
		}
		api.Success(w, instances, reqID)
		return
	}
	if employeeID, present, ok := shared.IntQuery(r, "employeeId"); present {
		if !ok {
			api.Fail(w, http.StatusBadRequest, "invalid_filter", "employeeId must be an integer", reqID)
			return
		}
		instances, err := h.Store.ListWorkflowInstancesByEmployee(employeeID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "instance_list_failed", "failed to list workflow instances", reqID)
			return
		}
		api.Success(w, instances, reqID)
		return
	}

	instances, err := h.Store.ListWorkflowInstances()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "instance_list_failed", "failed to list workflow instances", reqID)
		return
	}
	api.Success(w, instances, reqID)
}

func (h *Handler) handleCreateInstance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload hr.WorkflowInstance
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.WorkflowID < 1 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "workflowId is required", reqID)
		return
	}
	inst, err := h.Store.CreateWorkflowInstance(payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "instance_create_failed", "failed to create workflow instance", reqID)
		return
	}
	api.Created(w, h.viewOf(inst), reqID)
}

func (h *Handler) handleGetInstance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "instanceID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "instance id must be a positive integer", reqID)
		return
	}
	inst, err := h.Store.GetWorkflowInstance(id)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "instance_not_found", "workflow instance not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "instance_get_failed", "failed to load workflow instance", reqID)
		return
	}
	api.Success(w, h.viewOf(inst), reqID)
}

func (h *Handler) handleUpdateInstance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "instanceID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "instance id must be a positive integer", reqID)
		return
	}
	var patch hr.WorkflowInstancePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	inst, err := h.Store.UpdateWorkflowInstance(id, patch)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "instance_not_found", "workflow instance not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "instance_update_failed", "failed to update workflow instance", reqID)
		return
	}
	api.Success(w, h.viewOf(inst), reqID)
}

func (h *Handler) handleDeleteInstance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "instanceID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "instance id must be a positive integer", reqID)
		return
	}
	deleted, err := h.Store.DeleteWorkflowInstance(id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "instance_delete_failed", "failed to delete workflow instance", reqID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "instance_not_found", "workflow instance not found", reqID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, h.Engine.Advance)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, h.Engine.Approve)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, h.Engine.Reject)
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, fire func(ctx context.Context, id int) (*hr.WorkflowInstance, error)) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "instanceID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "instance id must be a positive integer", reqID)
		return
	}
	inst, err := fire(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, hr.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "instance_not_found", "workflow instance not found", reqID)
		case errors.Is(err, workflow.ErrInvalidTransition):
			api.Fail(w, http.StatusConflict, "invalid_transition", err.Error(), reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "transition_failed", "failed to transition workflow instance", reqID)
		}
		return
	}
	api.Success(w, h.viewOf(inst), reqID)
}
