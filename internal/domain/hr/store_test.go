package hr_test

import (
	"errors"
	"testing"
	"time"

	"peopledesk/internal/domain/hr"
)

func newTestStore(t *testing.T) *hr.Store {
	t.Helper()
	store, err := hr.NewStore()
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func newClockedStore(t *testing.T, now time.Time) *hr.Store {
	t.Helper()
	store, err := hr.NewStoreWithClock(func() time.Time { return now })
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func intPtr(v int) *int { return &v }

func datePtr(d hr.Date) *hr.Date { return &d }

func TestIDsAreMonotonicAndNeverReused(t *testing.T) {
	store := newTestStore(t)

	first, err := store.CreateDepartment(hr.Department{Name: "One"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, _ := store.CreateDepartment(hr.Department{Name: "Two"})
	third, _ := store.CreateDepartment(hr.Department{Name: "Three"})
	if first.ID != 1 || second.ID != 2 || third.ID != 3 {
		t.Fatalf("expected ids 1,2,3, got %d,%d,%d", first.ID, second.ID, third.ID)
	}

	for _, id := range []int{second.ID, third.ID} {
		deleted, err := store.DeleteDepartment(id)
		if err != nil || !deleted {
			t.Fatalf("delete %d failed: deleted=%v err=%v", id, deleted, err)
		}
	}

	fourth, _ := store.CreateDepartment(hr.Department{Name: "Four"})
	if fourth.ID != 4 {
		t.Fatalf("expected id 4 after deletes, got %d", fourth.ID)
	}

	// Id counters are independent per entity type.
	pos, _ := store.CreatePosition(hr.Position{Title: "Analyst", DepartmentID: first.ID})
	if pos.ID != 1 {
		t.Fatalf("expected position id 1, got %d", pos.ID)
	}
}

func TestUpdateMergesOnlySuppliedFields(t *testing.T) {
	store := newTestStore(t)

	hired := hr.NewDate(2023, time.June, 1)
	emp, err := store.CreateEmployee(hr.Employee{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-0001",
		HireDate:  datePtr(hired),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newLast := "Byron"
	updated, err := store.UpdateEmployee(emp.ID, hr.EmployeePatch{LastName: &newLast})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.LastName != "Byron" {
		t.Fatalf("expected last name Byron, got %s", updated.LastName)
	}
	if updated.FirstName != "Ada" || updated.Phone != "555-0001" || updated.Email != "ada@example.com" {
		t.Fatalf("unsupplied fields were not preserved: %+v", updated)
	}
	if updated.HireDate == nil || !updated.HireDate.Equal(hired.Time) {
		t.Fatalf("hire date was not preserved: %v", updated.HireDate)
	}
	if updated.Status != "active" {
		t.Fatalf("expected default status active, got %q", updated.Status)
	}
}

func TestUpdateAndDeleteMissingRecords(t *testing.T) {
	store := newTestStore(t)

	name := "Ghost"
	if _, err := store.UpdateDepartment(42, hr.DepartmentPatch{Name: &name}); !errors.Is(err, hr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	deleted, err := store.DeleteDepartment(42)
	if err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if deleted {
		t.Fatal("expected delete of missing record to report false")
	}
}

func TestDeleteDoesNotCascade(t *testing.T) {
	store := newTestStore(t)

	dept, _ := store.CreateDepartment(hr.Department{Name: "Engineering"})
	pos, _ := store.CreatePosition(hr.Position{Title: "Developer", DepartmentID: dept.ID})
	emp, _ := store.CreateEmployee(hr.Employee{
		FirstName: "Sam", LastName: "Dev", Email: "sam@example.com",
		PositionID: &pos.ID,
	})

	if _, err := store.DeletePosition(pos.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	kept, err := store.GetEmployee(emp.ID)
	if err != nil {
		t.Fatalf("employee disappeared after position delete: %v", err)
	}
	if kept.PositionID == nil || *kept.PositionID != pos.ID {
		t.Fatalf("expected dangling position reference to survive, got %v", kept.PositionID)
	}
}

func TestContractRenewalWindowIsInclusive(t *testing.T) {
	now := time.Date(2026, time.March, 15, 17, 30, 0, 0, time.UTC)
	store := newClockedStore(t, now)

	emp, _ := store.CreateEmployee(hr.Employee{FirstName: "A", LastName: "B", Email: "a@example.com"})
	start := hr.NewDate(2025, time.March, 15)

	mk := func(renewal *hr.Date) *hr.Contract {
		c, err := store.CreateContract(hr.Contract{
			EmployeeID: emp.ID, ContractType: "permanent", StartDate: start, RenewalDate: renewal,
		})
		if err != nil {
			t.Fatalf("create contract failed: %v", err)
		}
		return c
	}

	today := mk(datePtr(hr.NewDate(2026, time.March, 15)))
	lastDay := mk(datePtr(hr.NewDate(2026, time.April, 14)))
	mk(datePtr(hr.NewDate(2026, time.April, 15))) // one past the window
	mk(datePtr(hr.NewDate(2026, time.March, 14))) // already past
	mk(nil)

	due, err := store.GetContractsForRenewal(30)
	if err != nil {
		t.Fatalf("renewal query failed: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("expected 2 contracts due, got %d", len(due))
	}
	got := map[int]bool{}
	for _, c := range due {
		got[c.ID] = true
	}
	if !got[today.ID] || !got[lastDay.ID] {
		t.Fatalf("expected contracts %d and %d, got %v", today.ID, lastDay.ID, got)
	}
}

func TestGetUserByUsername(t *testing.T) {
	store := newTestStore(t)

	created, err := store.CreateUser(hr.User{Username: "frontdesk", Password: "secret"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Role != "user" {
		t.Fatalf("expected default role user, got %q", created.Role)
	}
	if created.IsActive == nil || !*created.IsActive {
		t.Fatalf("expected new users to default active")
	}

	found, err := store.GetUserByUsername("frontdesk")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected user %d, got %d", created.ID, found.ID)
	}

	if _, err := store.GetUserByUsername("nobody"); !errors.Is(err, hr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListEmployeesByDepartmentJoinsThroughPositions(t *testing.T) {
	store := newTestStore(t)

	eng, _ := store.CreateDepartment(hr.Department{Name: "Engineering"})
	sales, _ := store.CreateDepartment(hr.Department{Name: "Sales"})
	dev, _ := store.CreatePosition(hr.Position{Title: "Developer", DepartmentID: eng.ID})
	rep, _ := store.CreatePosition(hr.Position{Title: "Account Rep", DepartmentID: sales.ID})

	inEng, _ := store.CreateEmployee(hr.Employee{FirstName: "E", LastName: "One", Email: "e1@example.com", PositionID: &dev.ID})
	store.CreateEmployee(hr.Employee{FirstName: "S", LastName: "Two", Email: "s2@example.com", PositionID: &rep.ID})
	store.CreateEmployee(hr.Employee{FirstName: "N", LastName: "Three", Email: "n3@example.com"})

	employees, err := store.ListEmployeesByDepartment(eng.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(employees) != 1 || employees[0].ID != inEng.ID {
		t.Fatalf("expected only employee %d, got %+v", inEng.ID, employees)
	}
}

func TestWorkflowInstanceTimestampsAndDefaults(t *testing.T) {
	base := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	current := base
	store, err := hr.NewStoreWithClock(func() time.Time { return current })
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	wf, _ := store.CreateWorkflow(hr.Workflow{Name: "Review", Steps: []hr.WorkflowStep{{ID: 1, Name: "Start"}}})
	inst, err := store.CreateWorkflowInstance(hr.WorkflowInstance{WorkflowID: wf.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if inst.Status != hr.InstancePending {
		t.Fatalf("expected default status pending, got %q", inst.Status)
	}
	if !inst.CreatedAt.Equal(base) || !inst.UpdatedAt.Equal(base) {
		t.Fatalf("expected timestamps pinned to clock, got created=%v updated=%v", inst.CreatedAt, inst.UpdatedAt)
	}

	current = base.Add(time.Hour)
	step := 1
	updated, err := store.UpdateWorkflowInstance(inst.ID, hr.WorkflowInstancePatch{CurrentStep: &step})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.CreatedAt.Equal(base) {
		t.Fatalf("createdAt must be immutable, got %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("updatedAt must follow the clock, got %v", updated.UpdatedAt)
	}
}

func TestCreateReturnsDetachedRecord(t *testing.T) {
	store := newTestStore(t)

	created, err := store.CreateDepartment(hr.Department{Name: "Engineering"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Mutating the returned struct must not leak into the stored record.
	created.Name = "Scribbled"
	created.ParentID = intPtr(99)

	stored, err := store.GetDepartment(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Name != "Engineering" {
		t.Fatalf("stored record was mutated through the caller's pointer: %q", stored.Name)
	}
	if stored.ParentID != nil {
		t.Fatalf("expected nil parent, got %v", *stored.ParentID)
	}
}
