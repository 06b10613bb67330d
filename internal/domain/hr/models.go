package hr

import (
	"encoding/json"
	"strings"
	"time"
)

// Date is a calendar day. It marshals as YYYY-MM-DD and accepts either
// YYYY-MM-DD or RFC3339 on input.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *Date) UnmarshalJSON(raw []byte) error {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return err
	}
	if strings.TrimSpace(value) == "" {
		*d = Date{}
		return nil
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		*d = Date{parsed.UTC()}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	*d = DateOf(parsed)
	return nil
}

// JSONMap holds caller-defined nested content (workflow instance payloads,
// benefit details).
type JSONMap map[string]any

type Department struct {
	ID          int    `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	ParentID    *int   `json:"parentId"`
}

type Position struct {
	ID           int    `json:"id"`
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description,omitempty"`
	DepartmentID int    `json:"departmentId" validate:"required"`
	PayscaleMin  *int   `json:"payscaleMin,omitempty"`
	PayscaleMax  *int   `json:"payscaleMax,omitempty"`
}

type Employee struct {
	ID               int    `json:"id"`
	FirstName        string `json:"firstName" validate:"required"`
	LastName         string `json:"lastName" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	DateOfBirth      *Date  `json:"dateOfBirth,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
	PositionID       *int   `json:"positionId"`
	ManagerID        *int   `json:"managerId"`
	HireDate         *Date  `json:"hireDate,omitempty"`
	Status           string `json:"status"`
	ProfilePicture   string `json:"profilePicture,omitempty"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Contract struct {
	ID           int    `json:"id"`
	EmployeeID   int    `json:"employeeId" validate:"required"`
	ContractType string `json:"contractType" validate:"required"`
	StartDate    Date   `json:"startDate" validate:"required"`
	EndDate      *Date  `json:"endDate,omitempty"`
	Salary       *int   `json:"salary,omitempty"`
	Currency     string `json:"currency"`
	Documents    string `json:"documents,omitempty"`
	RenewalDate  *Date  `json:"renewalDate,omitempty"`
	Status       string `json:"status"`
}

type Document struct {
	ID         int       `json:"id"`
	EmployeeID int       `json:"employeeId" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	Type       string    `json:"type" validate:"required"`
	Path       string    `json:"path" validate:"required"`
	UploadDate time.Time `json:"uploadDate"`
	ExpiryDate *Date     `json:"expiryDate,omitempty"`
}

type Compensation struct {
	ID            int    `json:"id"`
	EmployeeID    int    `json:"employeeId" validate:"required"`
	EffectiveDate Date   `json:"effectiveDate" validate:"required"`
	Salary        int    `json:"salary" validate:"required"`
	Currency      string `json:"currency"`
	Reason        string `json:"reason,omitempty"`
	ApprovedBy    *int   `json:"approvedBy"`
}

type Benefit struct {
	ID           int     `json:"id"`
	EmployeeID   int     `json:"employeeId" validate:"required"`
	BenefitType  string  `json:"benefitType" validate:"required"`
	Provider     string  `json:"provider,omitempty"`
	PolicyNumber string  `json:"policyNumber,omitempty"`
	StartDate    Date    `json:"startDate" validate:"required"`
	EndDate      *Date   `json:"endDate,omitempty"`
	Amount       *int    `json:"amount,omitempty"`
	Frequency    string  `json:"frequency,omitempty"`
	Details      JSONMap `json:"details,omitempty"`
}

// WorkflowStep is one ordinal step of a workflow template. Approver is an
// employee id; nil means any actor may act on the step.
type WorkflowStep struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Approver *int   `json:"approver"`
}

type Workflow struct {
	ID          int            `json:"id"`
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description,omitempty"`
	Steps       []WorkflowStep `json:"steps" validate:"required,min=1"`
	CreatedBy   *int           `json:"createdBy"`
}

type WorkflowInstance struct {
	ID          int       `json:"id"`
	WorkflowID  int       `json:"workflowId" validate:"required"`
	EmployeeID  *int      `json:"employeeId"`
	CurrentStep int       `json:"currentStep"`
	Status      string    `json:"status"`
	Data        JSONMap   `json:"data,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type User struct {
	ID         int    `json:"id"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password,omitempty" validate:"required"`
	EmployeeID *int   `json:"employeeId"`
	Role       string `json:"role"`
	IsActive   *bool  `json:"isActive"`
}

// Workflow instance statuses. The store only defaults these; transition
// rules live in internal/domain/workflow.
const (
	InstancePending  = "pending"
	InstanceApproved = "approved"
	InstanceRejected = "rejected"
)
