package hr

// Typed CRUD over the store tables. Create assigns the next id for the
// entity type and fills server-assigned fields; it does not fail for
// well-shaped input. Update merges only the supplied fields. Delete never
// cascades: rows referencing the deleted record keep their dangling ids.

// --- Departments ---

type DepartmentPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ParentID    *int    `json:"parentId"`
}

func (p DepartmentPatch) apply(d *Department) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.ParentID != nil {
		d.ParentID = p.ParentID
	}
}

func (s *Store) CreateDepartment(d Department) (*Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.nextID(tableDepartments)
	if err := insertLocked(s, tableDepartments, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) GetDepartment(id int) (*Department, error) {
	return lookup[Department](s, tableDepartments, id)
}

func (s *Store) ListDepartments() ([]Department, error) {
	return collect[Department](s, tableDepartments, nil)
}

func (s *Store) UpdateDepartment(id int, patch DepartmentPatch) (*Department, error) {
	return mutate(s, tableDepartments, id, patch.apply)
}

func (s *Store) DeleteDepartment(id int) (bool, error) {
	return s.remove(tableDepartments, id)
}

// --- Positions ---

type PositionPatch struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DepartmentID *int    `json:"departmentId"`
	PayscaleMin  *int    `json:"payscaleMin"`
	PayscaleMax  *int    `json:"payscaleMax"`
}

func (p PositionPatch) apply(pos *Position) {
	if p.Title != nil {
		pos.Title = *p.Title
	}
	if p.Description != nil {
		pos.Description = *p.Description
	}
	if p.DepartmentID != nil {
		pos.DepartmentID = *p.DepartmentID
	}
	if p.PayscaleMin != nil {
		pos.PayscaleMin = p.PayscaleMin
	}
	if p.PayscaleMax != nil {
		pos.PayscaleMax = p.PayscaleMax
	}
}

func (s *Store) CreatePosition(p Position) (*Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID(tablePositions)
	if err := insertLocked(s, tablePositions, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetPosition(id int) (*Position, error) {
	return lookup[Position](s, tablePositions, id)
}

func (s *Store) ListPositions() ([]Position, error) {
	return collect[Position](s, tablePositions, nil)
}

func (s *Store) UpdatePosition(id int, patch PositionPatch) (*Position, error) {
	return mutate(s, tablePositions, id, patch.apply)
}

func (s *Store) DeletePosition(id int) (bool, error) {
	return s.remove(tablePositions, id)
}

// --- Employees ---

type EmployeePatch struct {
	FirstName        *string `json:"firstName"`
	LastName         *string `json:"lastName"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	DateOfBirth      *Date   `json:"dateOfBirth"`
	EmergencyContact *string `json:"emergencyContact"`
	PositionID       *int    `json:"positionId"`
	ManagerID        *int    `json:"managerId"`
	HireDate         *Date   `json:"hireDate"`
	Status           *string `json:"status"`
	ProfilePicture   *string `json:"profilePicture"`
}

func (p EmployeePatch) apply(e *Employee) {
	if p.FirstName != nil {
		e.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		e.LastName = *p.LastName
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
	}
	if p.Address != nil {
		e.Address = *p.Address
	}
	if p.DateOfBirth != nil {
		e.DateOfBirth = p.DateOfBirth
	}
	if p.EmergencyContact != nil {
		e.EmergencyContact = *p.EmergencyContact
	}
	if p.PositionID != nil {
		e.PositionID = p.PositionID
	}
	if p.ManagerID != nil {
		e.ManagerID = p.ManagerID
	}
	if p.HireDate != nil {
		e.HireDate = p.HireDate
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.ProfilePicture != nil {
		e.ProfilePicture = *p.ProfilePicture
	}
}

func (s *Store) CreateEmployee(e Employee) (*Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID(tableEmployees)
	if e.Status == "" {
		e.Status = "active"
	}
	if err := insertLocked(s, tableEmployees, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) GetEmployee(id int) (*Employee, error) {
	return lookup[Employee](s, tableEmployees, id)
}

func (s *Store) ListEmployees() ([]Employee, error) {
	return collect[Employee](s, tableEmployees, nil)
}

func (s *Store) UpdateEmployee(id int, patch EmployeePatch) (*Employee, error) {
	return mutate(s, tableEmployees, id, patch.apply)
}

func (s *Store) DeleteEmployee(id int) (bool, error) {
	return s.remove(tableEmployees, id)
}

// --- Contracts ---

type ContractPatch struct {
	EmployeeID   *int    `json:"employeeId"`
	ContractType *string `json:"contractType"`
	StartDate    *Date   `json:"startDate"`
	EndDate      *Date   `json:"endDate"`
	Salary       *int    `json:"salary"`
	Currency     *string `json:"currency"`
	Documents    *string `json:"documents"`
	RenewalDate  *Date   `json:"renewalDate"`
	Status       *string `json:"status"`
}

func (p ContractPatch) apply(c *Contract) {
	if p.EmployeeID != nil {
		c.EmployeeID = *p.EmployeeID
	}
	if p.ContractType != nil {
		c.ContractType = *p.ContractType
	}
	if p.StartDate != nil {
		c.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		c.EndDate = p.EndDate
	}
	if p.Salary != nil {
		c.Salary = p.Salary
	}
	if p.Currency != nil {
		c.Currency = *p.Currency
	}
	if p.Documents != nil {
		c.Documents = *p.Documents
	}
	if p.RenewalDate != nil {
		c.RenewalDate = p.RenewalDate
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}

func (s *Store) CreateContract(c Contract) (*Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID(tableContracts)
	if c.Currency == "" {
		c.Currency = "USD"
	}
	if c.Status == "" {
		c.Status = "active"
	}
	if err := insertLocked(s, tableContracts, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetContract(id int) (*Contract, error) {
	return lookup[Contract](s, tableContracts, id)
}

func (s *Store) ListContracts() ([]Contract, error) {
	return collect[Contract](s, tableContracts, nil)
}

func (s *Store) UpdateContract(id int, patch ContractPatch) (*Contract, error) {
	return mutate(s, tableContracts, id, patch.apply)
}

func (s *Store) DeleteContract(id int) (bool, error) {
	return s.remove(tableContracts, id)
}

// --- Documents ---

type DocumentPatch struct {
	EmployeeID *int    `json:"employeeId"`
	Name       *string `json:"name"`
	Type       *string `json:"type"`
	Path       *string `json:"path"`
	ExpiryDate *Date   `json:"expiryDate"`
}

func (p DocumentPatch) apply(d *Document) {
	if p.EmployeeID != nil {
		d.EmployeeID = *p.EmployeeID
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.Path != nil {
		d.Path = *p.Path
	}
	if p.ExpiryDate != nil {
		d.ExpiryDate = p.ExpiryDate
	}
}

func (s *Store) CreateDocument(d Document) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.nextID(tableDocuments)
	// Server-assigned, regardless of what the caller sent.
	d.UploadDate = s.now()
	if err := insertLocked(s, tableDocuments, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) GetDocument(id int) (*Document, error) {
	return lookup[Document](s, tableDocuments, id)
}

func (s *Store) ListDocuments() ([]Document, error) {
	return collect[Document](s, tableDocuments, nil)
}

func (s *Store) UpdateDocument(id int, patch DocumentPatch) (*Document, error) {
	return mutate(s, tableDocuments, id, patch.apply)
}

func (s *Store) DeleteDocument(id int) (bool, error) {
	return s.remove(tableDocuments, id)
}

// --- Compensations ---

type CompensationPatch struct {
	EmployeeID    *int    `json:"employeeId"`
	EffectiveDate *Date   `json:"effectiveDate"`
	Salary        *int    `json:"salary"`
	Currency      *string `json:"currency"`
	Reason        *string `json:"reason"`
	ApprovedBy    *int    `json:"approvedBy"`
}

func (p CompensationPatch) apply(c *Compensation) {
	if p.EmployeeID != nil {
		c.EmployeeID = *p.EmployeeID
	}
	if p.EffectiveDate != nil {
		c.EffectiveDate = *p.EffectiveDate
	}
	if p.Salary != nil {
		c.Salary = *p.Salary
	}
	if p.Currency != nil {
		c.Currency = *p.Currency
	}
	if p.Reason != nil {
		c.Reason = *p.Reason
	}
	if p.ApprovedBy != nil {
		c.ApprovedBy = p.ApprovedBy
	}
}

func (s *Store) CreateCompensation(c Compensation) (*Compensation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID(tableCompensations)
	if c.Currency == "" {
		c.Currency = "USD"
	}
	if err := insertLocked(s, tableCompensations, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetCompensation(id int) (*Compensation, error) {
	return lookup[Compensation](s, tableCompensations, id)
}

func (s *Store) ListCompensations() ([]Compensation, error) {
	return collect[Compensation](s, tableCompensations, nil)
}

func (s *Store) UpdateCompensation(id int, patch CompensationPatch) (*Compensation, error) {
	return mutate(s, tableCompensations, id, patch.apply)
}

func (s *Store) DeleteCompensation(id int) (bool, error) {
	return s.remove(tableCompensations, id)
}

// --- Benefits ---

type BenefitPatch struct {
	EmployeeID   *int    `json:"employeeId"`
	BenefitType  *string `json:"benefitType"`
	Provider     *string `json:"provider"`
	PolicyNumber *string `json:"policyNumber"`
	StartDate    *Date   `json:"startDate"`
	EndDate      *Date   `json:"endDate"`
	Amount       *int    `json:"amount"`
	Frequency    *string `json:"frequency"`
	Details      JSONMap `json:"details"`
}

func (p BenefitPatch) apply(b *Benefit) {
	if p.EmployeeID != nil {
		b.EmployeeID = *p.EmployeeID
	}
	if p.BenefitType != nil {
		b.BenefitType = *p.BenefitType
	}
	if p.Provider != nil {
		b.Provider = *p.Provider
	}
	if p.PolicyNumber != nil {
		b.PolicyNumber = *p.PolicyNumber
	}
	if p.StartDate != nil {
		b.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		b.EndDate = p.EndDate
	}
	if p.Amount != nil {
		b.Amount = p.Amount
	}
	if p.Frequency != nil {
		b.Frequency = *p.Frequency
	}
	if p.Details != nil {
		b.Details = p.Details
	}
}

func (s *Store) CreateBenefit(b Benefit) (*Benefit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.nextID(tableBenefits)
	if err := insertLocked(s, tableBenefits, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) GetBenefit(id int) (*Benefit, error) {
	return lookup[Benefit](s, tableBenefits, id)
}

func (s *Store) ListBenefits() ([]Benefit, error) {
	return collect[Benefit](s, tableBenefits, nil)
}

func (s *Store) UpdateBenefit(id int, patch BenefitPatch) (*Benefit, error) {
	return mutate(s, tableBenefits, id, patch.apply)
}

func (s *Store) DeleteBenefit(id int) (bool, error) {
	return s.remove(tableBenefits, id)
}

// --- Workflows ---

type WorkflowPatch struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Steps       []WorkflowStep `json:"steps"`
	CreatedBy   *int           `json:"createdBy"`
}

func (p WorkflowPatch) apply(w *Workflow) {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Description != nil {
		w.Description = *p.Description
	}
	if p.Steps != nil {
		w.Steps = p.Steps
	}
	if p.CreatedBy != nil {
		w.CreatedBy = p.CreatedBy
	}
}

func (s *Store) CreateWorkflow(w Workflow) (*Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.nextID(tableWorkflows)
	if err := insertLocked(s, tableWorkflows, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) GetWorkflow(id int) (*Workflow, error) {
	return lookup[Workflow](s, tableWorkflows, id)
}

func (s *Store) ListWorkflows() ([]Workflow, error) {
	return collect[Workflow](s, tableWorkflows, nil)
}

func (s *Store) UpdateWorkflow(id int, patch WorkflowPatch) (*Workflow, error) {
	return mutate(s, tableWorkflows, id, patch.apply)
}

func (s *Store) DeleteWorkflow(id int) (bool, error) {
	return s.remove(tableWorkflows, id)
}

// --- Workflow instances ---

type WorkflowInstancePatch struct {
	WorkflowID  *int    `json:"workflowId"`
	EmployeeID  *int    `json:"employeeId"`
	CurrentStep *int    `json:"currentStep"`
	Status      *string `json:"status"`
	Data        JSONMap `json:"data"`
}

func (p WorkflowInstancePatch) apply(w *WorkflowInstance) {
	if p.WorkflowID != nil {
		w.WorkflowID = *p.WorkflowID
	}
	if p.EmployeeID != nil {
		w.EmployeeID = p.EmployeeID
	}
	if p.CurrentStep != nil {
		w.CurrentStep = *p.CurrentStep
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
	if p.Data != nil {
		w.Data = p.Data
	}
}

func (s *Store) CreateWorkflowInstance(w WorkflowInstance) (*WorkflowInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.nextID(tableWorkflowInstances)
	if w.Status == "" {
		w.Status = InstancePending
	}
	now := s.now()
	w.CreatedAt = now
	w.UpdatedAt = now
	if err := insertLocked(s, tableWorkflowInstances, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) GetWorkflowInstance(id int) (*WorkflowInstance, error) {
	return lookup[WorkflowInstance](s, tableWorkflowInstances, id)
}

func (s *Store) ListWorkflowInstances() ([]WorkflowInstance, error) {
	return collect[WorkflowInstance](s, tableWorkflowInstances, nil)
}

// UpdateWorkflowInstance merges the supplied fields and refreshes UpdatedAt.
// CreatedAt never changes after creation.
func (s *Store) UpdateWorkflowInstance(id int, patch WorkflowInstancePatch) (*WorkflowInstance, error) {
	return mutate(s, tableWorkflowInstances, id, func(w *WorkflowInstance) {
		patch.apply(w)
		w.UpdatedAt = s.now()
	})
}

// TransitionWorkflowInstance runs apply on the current record inside the
// store's write lock, so a status check and the resulting mutation cannot
// interleave with another writer. An error from apply aborts the write;
// UpdatedAt refreshes on success.
func (s *Store) TransitionWorkflowInstance(id int, apply func(*WorkflowInstance) error) (*WorkflowInstance, error) {
	return mutateErr(s, tableWorkflowInstances, id, func(w *WorkflowInstance) error {
		if err := apply(w); err != nil {
			return err
		}
		w.UpdatedAt = s.now()
		return nil
	})
}

func (s *Store) DeleteWorkflowInstance(id int) (bool, error) {
	return s.remove(tableWorkflowInstances, id)
}

// --- Users ---

type UserPatch struct {
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	EmployeeID *int    `json:"employeeId"`
	Role       *string `json:"role"`
	IsActive   *bool   `json:"isActive"`
}

func (p UserPatch) apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.EmployeeID != nil {
		u.EmployeeID = p.EmployeeID
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = p.IsActive
	}
}

func (s *Store) CreateUser(u User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID(tableUsers)
	if u.Role == "" {
		u.Role = "user"
	}
	if u.IsActive == nil {
		active := true
		u.IsActive = &active
	}
	if err := insertLocked(s, tableUsers, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUser(id int) (*User, error) {
	return lookup[User](s, tableUsers, id)
}

func (s *Store) ListUsers() ([]User, error) {
	return collect[User](s, tableUsers, nil)
}

func (s *Store) UpdateUser(id int, patch UserPatch) (*User, error) {
	return mutate(s, tableUsers, id, patch.apply)
}

func (s *Store) DeleteUser(id int) (bool, error) {
	return s.remove(tableUsers, id)
}
