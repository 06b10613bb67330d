package hr

import memdb "github.com/hashicorp/go-memdb"

// Foreign-key shaped listings. These are equality filters over a snapshot;
// they do not validate that the referenced row exists.

func (s *Store) ListPositionsByDepartment(departmentID int) ([]Position, error) {
	return collect(s, tablePositions, func(p *Position) bool {
		return p.DepartmentID == departmentID
	})
}

func (s *Store) ListEmployeesByPosition(positionID int) ([]Employee, error) {
	return collect(s, tableEmployees, func(e *Employee) bool {
		return e.PositionID != nil && *e.PositionID == positionID
	})
}

func (s *Store) ListEmployeesByManager(managerID int) ([]Employee, error) {
	return collect(s, tableEmployees, func(e *Employee) bool {
		return e.ManagerID != nil && *e.ManagerID == managerID
	})
}

// ListEmployeesByDepartment joins through positions: an employee belongs to
// the department its position is attached to. Both reads share one snapshot.
func (s *Store) ListEmployeesByDepartment(departmentID int) ([]Employee, error) {
	txn := s.view()
	defer txn.Abort()

	positions, err := collectTxn(txn, tablePositions, func(p *Position) bool {
		return p.DepartmentID == departmentID
	})
	if err != nil {
		return nil, err
	}
	positionIDs := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		positionIDs[p.ID] = struct{}{}
	}

	return collectTxn(txn, tableEmployees, func(e *Employee) bool {
		if e.PositionID == nil {
			return false
		}
		_, ok := positionIDs[*e.PositionID]
		return ok
	})
}

func (s *Store) ListContractsByEmployee(employeeID int) ([]Contract, error) {
	return collect(s, tableContracts, func(c *Contract) bool {
		return c.EmployeeID == employeeID
	})
}

func (s *Store) ListDocumentsByEmployee(employeeID int) ([]Document, error) {
	return collect(s, tableDocuments, func(d *Document) bool {
		return d.EmployeeID == employeeID
	})
}

func (s *Store) ListCompensationsByEmployee(employeeID int) ([]Compensation, error) {
	return collect(s, tableCompensations, func(c *Compensation) bool {
		return c.EmployeeID == employeeID
	})
}

func (s *Store) ListBenefitsByEmployee(employeeID int) ([]Benefit, error) {
	return collect(s, tableBenefits, func(b *Benefit) bool {
		return b.EmployeeID == employeeID
	})
}

func (s *Store) ListWorkflowInstancesByEmployee(employeeID int) ([]WorkflowInstance, error) {
	return collect(s, tableWorkflowInstances, func(w *WorkflowInstance) bool {
		return w.EmployeeID != nil && *w.EmployeeID == employeeID
	})
}

func (s *Store) ListWorkflowInstancesByStatus(status string) ([]WorkflowInstance, error) {
	txn := s.view()
	defer txn.Abort()
	return instancesByStatusTxn(txn, status)
}

func instancesByStatusTxn(txn *memdb.Txn, status string) ([]WorkflowInstance, error) {
	it, err := txn.Get(tableWorkflowInstances, "status", status)
	if err != nil {
		return nil, err
	}
	out := make([]WorkflowInstance, 0)
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, *(raw.(*WorkflowInstance)))
	}
	return out, nil
}

// GetUserByUsername returns the first user with the given username, or
// ErrNotFound. Username uniqueness is advisory only.
func (s *Store) GetUserByUsername(username string) (*User, error) {
	txn := s.view()
	defer txn.Abort()
	raw, err := txn.First(tableUsers, "username", username)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNotFound
	}
	u := *(raw.(*User))
	return &u, nil
}

// GetContractsForRenewal returns contracts whose renewal date lies in the
// inclusive window [today, today+days]. Contracts without a renewal date are
// excluded. Comparison is at day granularity, so a contract renewing today
// is due even with days == 0.
func (s *Store) GetContractsForRenewal(days int) ([]Contract, error) {
	txn := s.view()
	defer txn.Abort()
	return contractsForRenewalTxn(txn, s.today(), days)
}

func contractsForRenewalTxn(txn *memdb.Txn, today Date, days int) ([]Contract, error) {
	end := Date{today.AddDate(0, 0, days)}
	return collectTxn(txn, tableContracts, func(c *Contract) bool {
		if c.RenewalDate == nil {
			return false
		}
		renewal := DateOf(c.RenewalDate.Time)
		return !renewal.Before(today.Time) && !renewal.After(end.Time)
	})
}
