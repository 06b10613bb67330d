package hr

import (
	"sort"
	"strings"
)

// Derived views join the store in memory and never mutate it. Each view runs
// over a single snapshot so a concurrent delete cannot be observed halfway
// through the join; dangling references surface as the "Unknown" label.

const unknownLabel = "Unknown"

type OrgChartEntry struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	ManagerID  *int   `json:"managerId"`
	Level      int    `json:"level"`
}

type DashboardSummary struct {
	TotalEmployees   int `json:"totalEmployees"`
	NewHires         int `json:"newHires"`
	PendingApprovals int `json:"pendingApprovals"`
	ContractRenewals int `json:"contractRenewals"`
}

// RecentEmployee is an employee enriched with its position title and
// department name for the dashboard table.
type RecentEmployee struct {
	Employee
	Position   string `json:"position"`
	Department string `json:"department"`
}

// titleLevel classifies an org-chart entry from the position title alone.
// This is a display heuristic, not a walk of the manager tree.
func titleLevel(title string) int {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "chief"):
		return 1
	case strings.Contains(t, "manager"):
		return 2
	default:
		return 3
	}
}

// OrganizationChart lists every employee that holds a position, resolved to
// its position title and department name. Employees without a position are
// omitted entirely.
func (s *Store) OrganizationChart() ([]OrgChartEntry, error) {
	txn := s.view()
	defer txn.Abort()

	positions, err := collectTxn[Position](txn, tablePositions, nil)
	if err != nil {
		return nil, err
	}
	departments, err := collectTxn[Department](txn, tableDepartments, nil)
	if err != nil {
		return nil, err
	}
	positionsByID := make(map[int]Position, len(positions))
	for _, p := range positions {
		positionsByID[p.ID] = p
	}
	departmentsByID := make(map[int]Department, len(departments))
	for _, d := range departments {
		departmentsByID[d.ID] = d
	}

	employees, err := collectTxn(txn, tableEmployees, func(e *Employee) bool {
		return e.PositionID != nil
	})
	if err != nil {
		return nil, err
	}

	chart := make([]OrgChartEntry, 0, len(employees))
	for _, e := range employees {
		entry := OrgChartEntry{
			ID:         e.ID,
			Name:       e.FullName(),
			Position:   unknownLabel,
			Department: unknownLabel,
			ManagerID:  e.ManagerID,
			Level:      3,
		}
		if pos, ok := positionsByID[*e.PositionID]; ok {
			entry.Position = pos.Title
			entry.Level = titleLevel(pos.Title)
			if dept, ok := departmentsByID[pos.DepartmentID]; ok {
				entry.Department = dept.Name
			}
		}
		chart = append(chart, entry)
	}
	return chart, nil
}

// GetDashboardSummary computes the four dashboard counters over one
// snapshot. New hires are employees hired within the inclusive last-30-days
// window ending today; renewals use the 30-day renewal window.
func (s *Store) GetDashboardSummary() (*DashboardSummary, error) {
	txn := s.view()
	defer txn.Abort()

	today := s.today()
	windowStart := Date{today.AddDate(0, 0, -30)}

	employees, err := collectTxn[Employee](txn, tableEmployees, nil)
	if err != nil {
		return nil, err
	}
	newHires := 0
	for _, e := range employees {
		if e.HireDate == nil {
			continue
		}
		hired := DateOf(e.HireDate.Time)
		if !hired.Before(windowStart.Time) && !hired.After(today.Time) {
			newHires++
		}
	}

	pending, err := instancesByStatusTxn(txn, InstancePending)
	if err != nil {
		return nil, err
	}
	renewals, err := contractsForRenewalTxn(txn, today, 30)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalEmployees:   len(employees),
		NewHires:         newHires,
		PendingApprovals: len(pending),
		ContractRenewals: len(renewals),
	}, nil
}

// GetRecentEmployees returns the four most recently hired employees,
// enriched with position and department labels. A missing hire date sorts
// as oldest so the ordering stays total.
func (s *Store) GetRecentEmployees() ([]RecentEmployee, error) {
	txn := s.view()
	defer txn.Abort()

	employees, err := collectTxn[Employee](txn, tableEmployees, nil)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(employees, func(i, j int) bool {
		var a, b Date
		if employees[i].HireDate != nil {
			a = *employees[i].HireDate
		}
		if employees[j].HireDate != nil {
			b = *employees[j].HireDate
		}
		return b.Before(a.Time)
	})
	if len(employees) > 4 {
		employees = employees[:4]
	}

	recent := make([]RecentEmployee, 0, len(employees))
	for _, e := range employees {
		enriched := RecentEmployee{
			Employee:   e,
			Position:   unknownLabel,
			Department: unknownLabel,
		}
		if e.PositionID != nil {
			if pos, err := lookupTxn[Position](txn, tablePositions, *e.PositionID); err == nil {
				enriched.Position = pos.Title
				if dept, err := lookupTxn[Department](txn, tableDepartments, pos.DepartmentID); err == nil {
					enriched.Department = dept.Name
				}
			}
		}
		recent = append(recent, enriched)
	}
	return recent, nil
}
