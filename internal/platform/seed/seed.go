package seed

import (
	"time"

	"peopledesk/internal/domain/hr"
)

func ptr[T any](v T) *T { return &v }

func daysAgo(days int) *hr.Date {
	d := hr.DateOf(time.Now().AddDate(0, 0, -days))
	return &d
}

func daysAhead(days int) *hr.Date {
	d := hr.DateOf(time.Now().AddDate(0, 0, days))
	return &d
}

// Load populates an empty store with the demo dataset the dashboard expects:
// a login user, an org tree, nine employees with contracts, two workflow
// templates and two pending instances. Recent hire and renewal dates are
// relative to today so the dashboard counters stay meaningful.
func Load(store *hr.Store) error {
	if _, err := store.CreateUser(hr.User{
		Username: "hrmanager",
		Password: "password123",
		Role:     "hr_manager",
	}); err != nil {
		return err
	}

	executive, err := store.CreateDepartment(hr.Department{Name: "Executive", Description: "Executive leadership team"})
	if err != nil {
		return err
	}
	humanResources, err := store.CreateDepartment(hr.Department{Name: "Human Resources", Description: "HR department"})
	if err != nil {
		return err
	}
	engineering, err := store.CreateDepartment(hr.Department{Name: "Engineering", Description: "Engineering department"})
	if err != nil {
		return err
	}
	design, err := store.CreateDepartment(hr.Department{Name: "Design", Description: "Design department"})
	if err != nil {
		return err
	}
	marketing, err := store.CreateDepartment(hr.Department{Name: "Marketing", Description: "Marketing department"})
	if err != nil {
		return err
	}
	finance, err := store.CreateDepartment(hr.Department{Name: "Finance", Description: "Finance department"})
	if err != nil {
		return err
	}

	type positionSpec struct {
		title        string
		departmentID int
		min, max     int
	}
	specs := []positionSpec{
		{"Chief Executive Officer", executive.ID, 150000, 300000},
		{"Chief Technology Officer", executive.ID, 140000, 250000},
		{"Chief Operations Officer", executive.ID, 140000, 250000},
		{"Chief Financial Officer", executive.ID, 140000, 250000},
		{"HR Manager", humanResources.ID, 90000, 120000},
		{"Full Stack Developer", engineering.ID, 80000, 130000},
		{"UX Designer", design.ID, 75000, 110000},
		{"Marketing Specialist", marketing.ID, 65000, 95000},
		{"Financial Analyst", finance.ID, 70000, 100000},
	}
	positions := make([]*hr.Position, 0, len(specs))
	for _, spec := range specs {
		pos, err := store.CreatePosition(hr.Position{
			Title:        spec.title,
			DepartmentID: spec.departmentID,
			PayscaleMin:  ptr(spec.min),
			PayscaleMax:  ptr(spec.max),
		})
		if err != nil {
			return err
		}
		positions = append(positions, pos)
	}
	ceoPos, ctoPos, cooPos, cfoPos := positions[0], positions[1], positions[2], positions[3]
	hrPos, devPos, uxPos, mktPos, finPos := positions[4], positions[5], positions[6], positions[7], positions[8]

	ceo, err := store.CreateEmployee(hr.Employee{
		FirstName: "Sarah", LastName: "Chen", Email: "sarah.chen@example.com",
		Phone: "555-123-4567", PositionID: &ceoPos.ID,
		HireDate: ptr(hr.NewDate(2020, time.January, 15)),
	})
	if err != nil {
		return err
	}
	cto, err := store.CreateEmployee(hr.Employee{
		FirstName: "Michael", LastName: "Rodriguez", Email: "michael.rodriguez@example.com",
		Phone: "555-234-5678", PositionID: &ctoPos.ID, ManagerID: &ceo.ID,
		HireDate: ptr(hr.NewDate(2020, time.February, 1)),
	})
	if err != nil {
		return err
	}
	coo, err := store.CreateEmployee(hr.Employee{
		FirstName: "Jennifer", LastName: "Smith", Email: "jennifer.smith@example.com",
		Phone: "555-345-6789", PositionID: &cooPos.ID, ManagerID: &ceo.ID,
		HireDate: ptr(hr.NewDate(2020, time.February, 15)),
	})
	if err != nil {
		return err
	}
	cfo, err := store.CreateEmployee(hr.Employee{
		FirstName: "David", LastName: "Johnson", Email: "david.johnson@example.com",
		Phone: "555-456-7890", PositionID: &cfoPos.ID, ManagerID: &ceo.ID,
		HireDate: ptr(hr.NewDate(2020, time.March, 1)),
	})
	if err != nil {
		return err
	}
	hrManager, err := store.CreateEmployee(hr.Employee{
		FirstName: "John", LastName: "Doe", Email: "john.doe@example.com",
		Phone: "555-567-8901", PositionID: &hrPos.ID, ManagerID: &coo.ID,
		HireDate: ptr(hr.NewDate(2020, time.March, 15)),
	})
	if err != nil {
		return err
	}
	developer, err := store.CreateEmployee(hr.Employee{
		FirstName: "Alex", LastName: "Kim", Email: "alex.kim@example.com",
		Phone: "555-678-9012", PositionID: &devPos.ID, ManagerID: &cto.ID,
		HireDate: daysAgo(5),
	})
	if err != nil {
		return err
	}
	designer, err := store.CreateEmployee(hr.Employee{
		FirstName: "Maria", LastName: "Lopez", Email: "maria.lopez@example.com",
		Phone: "555-789-0123", PositionID: &uxPos.ID, ManagerID: &cto.ID,
		HireDate: daysAgo(8), Status: "onboarding",
	})
	if err != nil {
		return err
	}
	marketer, err := store.CreateEmployee(hr.Employee{
		FirstName: "James", LastName: "Taylor", Email: "james.taylor@example.com",
		Phone: "555-890-1234", PositionID: &mktPos.ID, ManagerID: &coo.ID,
		HireDate: daysAgo(15),
	})
	if err != nil {
		return err
	}
	analyst, err := store.CreateEmployee(hr.Employee{
		FirstName: "Rebecca", LastName: "Park", Email: "rebecca.park@example.com",
		Phone: "555-901-2345", PositionID: &finPos.ID, ManagerID: &cfo.ID,
		HireDate: daysAgo(40),
	})
	if err != nil {
		return err
	}

	type contractSpec struct {
		employeeID int
		kind       string
		start      *hr.Date
		end        *hr.Date
		renewal    *hr.Date
		salary     int
	}
	contractSpecs := []contractSpec{
		{ceo.ID, "permanent", ptr(hr.NewDate(2020, time.January, 15)), nil, nil, 250000},
		{cto.ID, "permanent", ptr(hr.NewDate(2020, time.February, 1)), nil, nil, 200000},
		{coo.ID, "permanent", ptr(hr.NewDate(2020, time.February, 15)), nil, nil, 200000},
		{cfo.ID, "permanent", ptr(hr.NewDate(2020, time.March, 1)), nil, nil, 200000},
		{hrManager.ID, "permanent", ptr(hr.NewDate(2020, time.March, 15)), nil, nil, 110000},
		{developer.ID, "permanent", daysAgo(5), nil, nil, 95000},
		{designer.ID, "temporary", daysAgo(8), daysAhead(357), nil, 85000},
		{marketer.ID, "permanent", daysAgo(15), nil, nil, 75000},
		{analyst.ID, "permanent", daysAgo(40), nil, daysAhead(20), 80000},
	}
	for _, spec := range contractSpecs {
		contract := hr.Contract{
			EmployeeID:   spec.employeeID,
			ContractType: spec.kind,
			StartDate:    *spec.start,
			EndDate:      spec.end,
			RenewalDate:  spec.renewal,
			Salary:       ptr(spec.salary),
		}
		if _, err := store.CreateContract(contract); err != nil {
			return err
		}
	}

	onboarding, err := store.CreateWorkflow(hr.Workflow{
		Name:        "Employee Onboarding",
		Description: "Process for onboarding new employees",
		Steps: []hr.WorkflowStep{
			{ID: 1, Name: "Document Collection", Approver: &hrManager.ID},
			{ID: 2, Name: "Equipment Setup", Approver: &cto.ID},
			{ID: 3, Name: "Training Assignment"},
		},
		CreatedBy: &hrManager.ID,
	})
	if err != nil {
		return err
	}
	promotion, err := store.CreateWorkflow(hr.Workflow{
		Name:        "Promotion Request",
		Description: "Process for requesting employee promotions",
		Steps: []hr.WorkflowStep{
			{ID: 1, Name: "Manager Approval"},
			{ID: 2, Name: "HR Review", Approver: &hrManager.ID},
			{ID: 3, Name: "Executive Approval", Approver: &ceo.ID},
		},
		CreatedBy: &hrManager.ID,
	})
	if err != nil {
		return err
	}

	if _, err := store.CreateWorkflowInstance(hr.WorkflowInstance{
		WorkflowID:  onboarding.ID,
		EmployeeID:  &designer.ID,
		CurrentStep: 1,
		Data: hr.JSONMap{
			"manager":   cto.ID,
			"documents": []string{"ID", "Resume", "Education"},
		},
	}); err != nil {
		return err
	}
	if _, err := store.CreateWorkflowInstance(hr.WorkflowInstance{
		WorkflowID: promotion.ID,
		EmployeeID: &designer.ID,
		Data: hr.JSONMap{
			"currentPosition":   uxPos.ID,
			"requestedPosition": "Senior UX Designer",
			"reason":            "Outstanding performance on recent projects",
		},
	}); err != nil {
		return err
	}

	return nil
}
