package controller

import (
	"context"

	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"github.com/gartstein/transport/internal/transport/validation"
	"go.uber.org/zap"
)

type EmployeeRepository interface {
	EmployeeFinder
	Create(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	FindAll(ctx context.Context) ([]models.Employee, error)
	FindAllOrderByQualificationThenSalary(ctx context.Context) ([]models.Employee, error)
	FindAllOrderBySalaryDesc(ctx context.Context) ([]models.Employee, error)
	FindByQualification(ctx context.Context, q models.Qualification) ([]models.Employee, error)
	DeleteByID(ctx context.Context, id int64) error
}

// EmployeeService manages the staff of companies.
type EmployeeService struct {
	repo      EmployeeRepository
	companies CompanyFinder
	logger    *zap.Logger
}

func NewEmployeeService(repo EmployeeRepository, companies CompanyFinder, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		companies: companies,
		logger:    logger.Named("employee_service"),
	}
}

func (s *EmployeeService) Create(ctx context.Context, req *models.EmployeeCreate) (*models.Employee, error) {
	if err := validation.EmployeeCreate(req); err != nil {
		return nil, err
	}
	found, err := s.companies.FindByID(ctx, req.CompanyID)
	company, err := existing(found, err, e.Company, req.CompanyID)
	if err != nil {
		return nil, fail(s.logger, "resolve company", err, zap.Int64("company_id", req.CompanyID))
	}

	employee, err := s.repo.Create(ctx, &models.Employee{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Qualification: req.Qualification,
		Salary:        req.Salary,
		CompanyID:     company.ID,
	})
	if err != nil {
		return nil, fail(s.logger, "create employee", err)
	}
	s.logger.Info("employee created",
		zap.Int64("employee_id", employee.ID),
		zap.String("qualification", string(employee.Qualification)),
	)
	return employee, nil
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*models.Employee, error) {
	found, err := s.repo.FindByID(ctx, id)
	employee, err := existing(found, err, e.Employee, id)
	if err != nil {
		return nil, fail(s.logger, "get employee", err, zap.Int64("employee_id", id))
	}
	return employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, req *models.EmployeeUpdate) (*models.Employee, error) {
	if err := validation.EmployeeUpdate(req); err != nil {
		return nil, err
	}
	employee, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	employee.FirstName = req.FirstName
	employee.LastName = req.LastName
	employee.Qualification = req.Qualification
	employee.Salary = req.Salary
	updated, err := s.repo.Update(ctx, employee)
	if err != nil {
		return nil, fail(s.logger, "update employee", err, zap.Int64("employee_id", req.ID))
	}
	s.logger.Info("employee updated", zap.Int64("employee_id", updated.ID))
	return updated, nil
}

// Delete removes the employee. A driver still assigned to transports is
// rejected with a constraint error.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fail(s.logger, "delete employee", err, zap.Int64("employee_id", id))
	}
	s.logger.Info("employee deleted", zap.Int64("employee_id", id))
	return nil
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fail(s.logger, "list employees", err)
	}
	return employees, nil
}

// ListByQualificationThenSalary orders by qualification in declaration
// order, then by salary, highest first.
func (s *EmployeeService) ListByQualificationThenSalary(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.FindAllOrderByQualificationThenSalary(ctx)
	if err != nil {
		return nil, fail(s.logger, "list employees by qualification", err)
	}
	return employees, nil
}

func (s *EmployeeService) ListBySalary(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.FindAllOrderBySalaryDesc(ctx)
	if err != nil {
		return nil, fail(s.logger, "list employees by salary", err)
	}
	return employees, nil
}

func (s *EmployeeService) FindByQualification(ctx context.Context, q models.Qualification) ([]models.Employee, error) {
	if err := validation.QualificationFilter(q); err != nil {
		return nil, err
	}
	employees, err := s.repo.FindByQualification(ctx, q)
	if err != nil {
		return nil, fail(s.logger, "find employees by qualification", err)
	}
	return employees, nil
}
