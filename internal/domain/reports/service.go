package reports

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"peopledesk/internal/domain/hr"
)

type Service struct {
	Store *hr.Store
}

func NewService(store *hr.Store) *Service {
	return &Service{Store: store}
}

// EmployeeProfilePDF renders a one-page profile summary: identity, position
// and department, plus the employee's contracts. Dangling position or
// department references render as "Unknown".
func (s *Service) EmployeeProfilePDF(ctx context.Context, employeeID int) ([]byte, error) {
	emp, err := s.Store.GetEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	positionTitle := "Unknown"
	departmentName := "Unknown"
	if emp.PositionID != nil {
		if pos, err := s.Store.GetPosition(*emp.PositionID); err == nil {
			positionTitle = pos.Title
			if dept, err := s.Store.GetDepartment(pos.DepartmentID); err == nil {
				departmentName = dept.Name
			}
		}
	}

	contracts, err := s.Store.ListContractsByEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee Profile")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Name: %s", emp.FullName()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", emp.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", positionTitle))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", departmentName))
	pdf.Ln(7)
	if emp.HireDate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Hired: %s", emp.HireDate.Format("2006-01-02")))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", emp.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Contracts")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	if len(contracts) == 0 {
		pdf.Cell(0, 7, "No contracts on file")
		pdf.Ln(6)
	}
	for _, c := range contracts {
		line := fmt.Sprintf("%s from %s", c.ContractType, c.StartDate.Format("2006-01-02"))
		if c.Salary != nil {
			line += fmt.Sprintf(", %d %s", *c.Salary, c.Currency)
		}
		if c.RenewalDate != nil {
			line += fmt.Sprintf(", renews %s", c.RenewalDate.Format("2006-01-02"))
		}
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
