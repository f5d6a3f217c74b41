package employee

import (
	"context"
	"time"

	"github.com/hrportal/hr-backend-go/internal/domain/employee"
	"github.com/hrportal/hr-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate := time.Now()
	if req.HireDate != "" {
		parsed, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return employee.EmployeeResponse{}, validator.ValidationErrors{
				{Field: "hire_date", Message: "must be formatted as YYYY-MM-DD"},
			}
		}
		hireDate = parsed
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FullName:         req.FullName,
		Email:            req.Email,
		Department:       req.Department,
		BaseSalary:       req.BaseSalary,
		EmploymentStatus: employee.EmploymentStatusActive,
		HireDate:         hireDate,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapToEmployeeResponse(created), nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapToEmployeeResponse(emp), nil
}

func (s *EmployeeServiceImpl) ListActive(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	return mapToEmployeeResponses(employees), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapToEmployeeResponses(employees), nil
}

func mapToEmployeeResponses(employees []employee.Employee) []employee.EmployeeResponse {
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapToEmployeeResponse(emp))
	}
	return responses
}

func mapToEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:               emp.ID,
		FullName:         emp.FullName,
		Email:            emp.Email,
		Department:       emp.Department,
		BaseSalary:       emp.BaseSalary,
		EmploymentStatus: string(emp.EmploymentStatus),
		HireDate:         emp.HireDate.Format("2006-01-02"),
	}
}
