package controller

import (
	"context"
	"fmt"

	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"github.com/gartstein/transport/internal/transport/validation"
	"go.uber.org/zap"
)

// CompanyRepository defines the storage interface for companies.
type CompanyRepository interface {
	CompanyFinder
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) (*models.Company, error)
	FindAll(ctx context.Context) ([]models.Company, error)
	FindAllOrderByName(ctx context.Context) ([]models.Company, error)
	FindAllWithRevenue(ctx context.Context) ([]models.CompanyRevenue, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
}

// CompanyService manages transport companies.
type CompanyService struct {
	repo   CompanyRepository
	logger *zap.Logger
}

func NewCompanyService(repo CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		repo:   repo,
		logger: logger.Named("company_service"),
	}
}

// Create registers a company. The name must not be taken.
func (s *CompanyService) Create(ctx context.Context, req *models.CompanyCreate) (*models.Company, error) {
	if err := validation.CompanyCreate(req); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, req.Name); err != nil {
		return nil, err
	}

	company, err := s.repo.Create(ctx, &models.Company{Name: req.Name, Address: req.Address})
	if err != nil {
		return nil, fail(s.logger, "create company", err)
	}
	s.logger.Info("company created",
		zap.Int64("company_id", company.ID),
		zap.String("name", company.Name),
	)
	return company, nil
}

func (s *CompanyService) Get(ctx context.Context, id int64) (*models.Company, error) {
	found, err := s.repo.FindByID(ctx, id)
	company, err := existing(found, err, e.Company, id)
	if err != nil {
		return nil, fail(s.logger, "get company", err, zap.Int64("company_id", id))
	}
	return company, nil
}

// Update replaces name and address. Renaming to a name another company
// already uses is a duplicate.
func (s *CompanyService) Update(ctx context.Context, req *models.CompanyUpdate) (*models.Company, error) {
	if err := validation.CompanyUpdate(req); err != nil {
		return nil, err
	}
	company, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if company.Name != req.Name {
		if err := s.ensureNameFree(ctx, req.Name); err != nil {
			return nil, err
		}
	}

	company.Name = req.Name
	company.Address = req.Address
	updated, err := s.repo.Update(ctx, company)
	if err != nil {
		return nil, fail(s.logger, "update company", err, zap.Int64("company_id", req.ID))
	}
	s.logger.Info("company updated", zap.Int64("company_id", updated.ID))
	return updated, nil
}

// Delete removes the company. Deleting an unknown id succeeds; a company
// that still owns records is rejected with a constraint error.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fail(s.logger, "delete company", err, zap.Int64("company_id", id))
	}
	s.logger.Info("company deleted", zap.Int64("company_id", id))
	return nil
}

func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	companies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fail(s.logger, "list companies", err)
	}
	return companies, nil
}

func (s *CompanyService) ListByName(ctx context.Context) ([]models.Company, error) {
	companies, err := s.repo.FindAllOrderByName(ctx)
	if err != nil {
		return nil, fail(s.logger, "list companies by name", err)
	}
	return companies, nil
}

// Revenues reports every company with the total price of its transports.
func (s *CompanyService) Revenues(ctx context.Context) ([]models.CompanyRevenue, error) {
	rows, err := s.repo.FindAllWithRevenue(ctx)
	if err != nil {
		return nil, fail(s.logger, "report company revenue", err)
	}
	return rows, nil
}

func (s *CompanyService) ensureNameFree(ctx context.Context, name string) error {
	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return fail(s.logger, "check company name", err)
	}
	if exists {
		return &e.ConstraintError{
			Kind:       e.Unique,
			Constraint: "companies.name",
			Err:        fmt.Errorf("company %q already exists", name),
		}
	}
	return nil
}
