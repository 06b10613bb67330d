package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/qmuntal/stateless"

	"peopledesk/internal/domain/hr"
)

// ErrInvalidTransition is returned when a trigger is fired on an instance
// whose status does not permit it, e.g. approving an already-rejected
// instance.
var ErrInvalidTransition = errors.New("invalid workflow transition")

const (
	triggerAdvance = "advance"
	triggerApprove = "approve"
	triggerReject  = "reject"
)

// Engine drives a workflow instance through its template's steps. The
// instance record itself lives in the store; the engine rebuilds the state
// machine from the persisted status for each operation.
//
// pending is the only live state: advance loops on it, approve and reject
// move to terminal states with no outgoing transitions.
type Engine struct {
	store *hr.Store
}

func NewEngine(store *hr.Store) *Engine {
	return &Engine{store: store}
}

func machineFor(status string) *stateless.StateMachine {
	m := stateless.NewStateMachine(status)
	m.Configure(hr.InstancePending).
		PermitReentry(triggerAdvance).
		Permit(triggerApprove, hr.InstanceApproved).
		Permit(triggerReject, hr.InstanceRejected)
	m.Configure(hr.InstanceApproved)
	m.Configure(hr.InstanceRejected)
	return m
}

// fire runs the whole transition inside the store's write lock: the status
// gate and the mutation cannot interleave with another writer, so two racing
// callers can never both pass the pending check or lose a step increment.
func (e *Engine) fire(ctx context.Context, id int, trigger string, apply func(inst *hr.WorkflowInstance, next string)) (*hr.WorkflowInstance, error) {
	return e.store.TransitionWorkflowInstance(id, func(inst *hr.WorkflowInstance) error {
		m := machineFor(inst.Status)
		if err := m.FireCtx(ctx, trigger); err != nil {
			return fmt.Errorf("%w: cannot %s a %s instance", ErrInvalidTransition, trigger, inst.Status)
		}
		next, ok := m.MustState().(string)
		if !ok {
			return fmt.Errorf("unexpected state type %T", m.MustState())
		}
		apply(inst, next)
		return nil
	})
}

// Advance moves a pending instance to its next step. The step index is not
// capped: an instance advanced past its template's last step reads as
// "beyond last step", which callers render rather than reject.
func (e *Engine) Advance(ctx context.Context, id int) (*hr.WorkflowInstance, error) {
	return e.fire(ctx, id, triggerAdvance, func(inst *hr.WorkflowInstance, next string) {
		inst.CurrentStep++
		inst.Status = next
	})
}

// Approve marks a pending instance approved. Terminal: no transition leaves
// the approved state. CurrentStep is untouched.
func (e *Engine) Approve(ctx context.Context, id int) (*hr.WorkflowInstance, error) {
	return e.conclude(ctx, id, triggerApprove)
}

// Reject marks a pending instance rejected. Terminal, like Approve.
func (e *Engine) Reject(ctx context.Context, id int) (*hr.WorkflowInstance, error) {
	return e.conclude(ctx, id, triggerReject)
}

func (e *Engine) conclude(ctx context.Context, id int, trigger string) (*hr.WorkflowInstance, error) {
	return e.fire(ctx, id, trigger, func(inst *hr.WorkflowInstance, next string) {
		inst.Status = next
	})
}

// StepName resolves the display name for an instance's current step from
// its template. ok is false when the index sits beyond the defined steps.
func StepName(w *hr.Workflow, step int) (string, bool) {
	if step < 0 || step >= len(w.Steps) {
		return "", false
	}
	return w.Steps[step].Name, true
}
