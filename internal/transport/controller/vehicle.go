package controller

import (
	"context"
	"fmt"

	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"github.com/gartstein/transport/internal/transport/validation"
	"go.uber.org/zap"
)

type VehicleRepository interface {
	VehicleFinder
	Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	FindAll(ctx context.Context) ([]models.Vehicle, error)
	ExistsByRegistration(ctx context.Context, registration string) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
}

// VehicleService manages the fleet of each company. Registration numbers
// are unique across all companies.
type VehicleService struct {
	repo      VehicleRepository
	companies CompanyFinder
	logger    *zap.Logger
}

func NewVehicleService(repo VehicleRepository, companies CompanyFinder, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		repo:      repo,
		companies: companies,
		logger:    logger.Named("vehicle_service"),
	}
}

func (s *VehicleService) Create(ctx context.Context, req *models.VehicleCreate) (*models.Vehicle, error) {
	if err := validation.VehicleCreate(req); err != nil {
		return nil, err
	}
	found, err := s.companies.FindByID(ctx, req.CompanyID)
	company, err := existing(found, err, e.Company, req.CompanyID)
	if err != nil {
		return nil, fail(s.logger, "resolve company", err, zap.Int64("company_id", req.CompanyID))
	}
	if err := s.ensureRegistrationFree(ctx, req.RegistrationNumber); err != nil {
		return nil, err
	}

	vehicle, err := s.repo.Create(ctx, &models.Vehicle{
		RegistrationNumber: req.RegistrationNumber,
		Type:               req.Type,
		Capacity:           req.Capacity,
		CompanyID:          company.ID,
	})
	if err != nil {
		return nil, fail(s.logger, "create vehicle", err)
	}
	s.logger.Info("vehicle created",
		zap.Int64("vehicle_id", vehicle.ID),
		zap.String("registration_number", vehicle.RegistrationNumber),
	)
	return vehicle, nil
}

func (s *VehicleService) Get(ctx context.Context, id int64) (*models.Vehicle, error) {
	found, err := s.repo.FindByID(ctx, id)
	vehicle, err := existing(found, err, e.Vehicle, id)
	if err != nil {
		return nil, fail(s.logger, "get vehicle", err, zap.Int64("vehicle_id", id))
	}
	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, req *models.VehicleUpdate) (*models.Vehicle, error) {
	if err := validation.VehicleUpdate(req); err != nil {
		return nil, err
	}
	vehicle, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if vehicle.RegistrationNumber != req.RegistrationNumber {
		if err := s.ensureRegistrationFree(ctx, req.RegistrationNumber); err != nil {
			return nil, err
		}
	}

	vehicle.RegistrationNumber = req.RegistrationNumber
	vehicle.Type = req.Type
	vehicle.Capacity = req.Capacity
	updated, err := s.repo.Update(ctx, vehicle)
	if err != nil {
		return nil, fail(s.logger, "update vehicle", err, zap.Int64("vehicle_id", req.ID))
	}
	s.logger.Info("vehicle updated", zap.Int64("vehicle_id", updated.ID))
	return updated, nil
}

func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fail(s.logger, "delete vehicle", err, zap.Int64("vehicle_id", id))
	}
	s.logger.Info("vehicle deleted", zap.Int64("vehicle_id", id))
	return nil
}

func (s *VehicleService) List(ctx context.Context) ([]models.Vehicle, error) {
	vehicles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fail(s.logger, "list vehicles", err)
	}
	return vehicles, nil
}

func (s *VehicleService) ensureRegistrationFree(ctx context.Context, registration string) error {
	exists, err := s.repo.ExistsByRegistration(ctx, registration)
	if err != nil {
		return fail(s.logger, "check registration number", err)
	}
	if exists {
		return &e.ConstraintError{
			Kind:       e.Unique,
			Constraint: "vehicles.registration_number",
			Err:        fmt.Errorf("vehicle %q is already registered", registration),
		}
	}
	return nil
}
