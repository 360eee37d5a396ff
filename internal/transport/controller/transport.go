package controller

import (
	"context"
	"time"

	"github.com/gartstein/transport/internal/pkg/money"
	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"github.com/gartstein/transport/internal/transport/validation"
	"go.uber.org/zap"
)

type TransportRepository interface {
	Create(ctx context.Context, transport *models.Transport) (*models.Transport, error)
	Update(ctx context.Context, transport *models.Transport) (*models.Transport, error)
	MarkPaid(ctx context.Context, id int64) (*models.Transport, error)
	FindByID(ctx context.Context, id int64) (*models.Transport, error)
	FindAll(ctx context.Context) ([]models.Transport, error)
	FindAllOrderByToLocation(ctx context.Context) ([]models.Transport, error)
	FindByToLocation(ctx context.Context, dest string) ([]models.Transport, error)
	DeleteByID(ctx context.Context, id int64) error
	CountAll(ctx context.Context) (int64, error)
	SumTotalRevenue(ctx context.Context) (money.Amount, error)
	SumRevenueForCompany(ctx context.Context, companyID int64) (money.Amount, error)
	SumRevenueForCompanyAndPeriod(ctx context.Context, companyID int64, from, to time.Time) (money.Amount, error)
	DriverTransportStats(ctx context.Context) ([]models.DriverTransportCount, error)
	DriverRevenue(ctx context.Context) ([]models.DriverRevenue, error)
}

// TransportService manages transport jobs and the reports built on them.
type TransportService struct {
	repo      TransportRepository
	companies CompanyFinder
	clients   ClientFinder
	vehicles  VehicleFinder
	employees EmployeeFinder
	logger    *zap.Logger
}

func NewTransportService(
	repo TransportRepository,
	companies CompanyFinder,
	clients ClientFinder,
	vehicles VehicleFinder,
	employees EmployeeFinder,
	logger *zap.Logger,
) *TransportService {
	return &TransportService{
		repo:      repo,
		companies: companies,
		clients:   clients,
		vehicles:  vehicles,
		employees: employees,
		logger:    logger.Named("transport_service"),
	}
}

// Create records a transport. The company, client, vehicle and driver must
// exist, and the last three must belong to the company. Times are stored
// in UTC.
func (s *TransportService) Create(ctx context.Context, req *models.TransportCreate) (*models.Transport, error) {
	if err := validation.TransportCreate(req); err != nil {
		return nil, err
	}

	company, err := s.companies.FindByID(ctx, req.CompanyID)
	if _, err = existing(company, err, e.Company, req.CompanyID); err != nil {
		return nil, fail(s.logger, "resolve company", err, zap.Int64("company_id", req.CompanyID))
	}
	client, err := s.clients.FindByID(ctx, req.ClientID)
	if _, err = existing(client, err, e.Client, req.ClientID); err != nil {
		return nil, fail(s.logger, "resolve client", err, zap.Int64("client_id", req.ClientID))
	}
	vehicle, err := s.vehicles.FindByID(ctx, req.VehicleID)
	if _, err = existing(vehicle, err, e.Vehicle, req.VehicleID); err != nil {
		return nil, fail(s.logger, "resolve vehicle", err, zap.Int64("vehicle_id", req.VehicleID))
	}
	driver, err := s.employees.FindByID(ctx, req.DriverID)
	if _, err = existing(driver, err, e.Employee, req.DriverID); err != nil {
		return nil, fail(s.logger, "resolve driver", err, zap.Int64("driver_id", req.DriverID))
	}

	var mismatched []e.FieldError
	if client.CompanyID != company.ID {
		mismatched = append(mismatched, e.FieldError{Field: "clientId", Message: "Client does not belong to the transport company."})
	}
	if vehicle.CompanyID != company.ID {
		mismatched = append(mismatched, e.FieldError{Field: "vehicleId", Message: "Vehicle does not belong to the transport company."})
	}
	if driver.CompanyID != company.ID {
		mismatched = append(mismatched, e.FieldError{Field: "driverId", Message: "Driver does not belong to the transport company."})
	}
	if err := e.NewValidation(mismatched); err != nil {
		return nil, err
	}

	transport, err := s.repo.Create(ctx, &models.Transport{
		CompanyID:        company.ID,
		ClientID:         client.ID,
		VehicleID:        vehicle.ID,
		DriverID:         driver.ID,
		FromLocation:     req.FromLocation,
		ToLocation:       req.ToLocation,
		DepartureAt:      req.Departure.UTC(),
		ArrivalAt:        req.Arrival.UTC(),
		CargoDescription: req.CargoDescription,
		CargoWeight:      req.CargoWeight,
		Price:            req.Price,
		Paid:             req.Paid,
	})
	if err != nil {
		return nil, fail(s.logger, "create transport", err)
	}
	s.logger.Info("transport created",
		zap.Int64("transport_id", transport.ID),
		zap.Int64("company_id", transport.CompanyID),
		zap.Int64("driver_id", transport.DriverID),
		zap.Stringer("price", transport.Price),
	)
	return transport, nil
}

func (s *TransportService) Get(ctx context.Context, id int64) (*models.Transport, error) {
	found, err := s.repo.FindByID(ctx, id)
	transport, err := existing(found, err, e.Transport, id)
	if err != nil {
		return nil, fail(s.logger, "get transport", err, zap.Int64("transport_id", id))
	}
	return transport, nil
}

// Update replaces route, times, cargo and price. References and the paid
// flag are left as they are.
func (s *TransportService) Update(ctx context.Context, req *models.TransportUpdate) (*models.Transport, error) {
	if err := validation.TransportUpdate(req); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, &models.Transport{
		ID:               req.ID,
		FromLocation:     req.FromLocation,
		ToLocation:       req.ToLocation,
		DepartureAt:      req.Departure.UTC(),
		ArrivalAt:        req.Arrival.UTC(),
		CargoDescription: req.CargoDescription,
		CargoWeight:      req.CargoWeight,
		Price:            req.Price,
	})
	if err != nil {
		return nil, fail(s.logger, "update transport", err, zap.Int64("transport_id", req.ID))
	}
	s.logger.Info("transport updated", zap.Int64("transport_id", updated.ID))
	return updated, nil
}

// MarkPaid sets the paid flag. Marking a paid transport again is a no-op
// that still succeeds.
func (s *TransportService) MarkPaid(ctx context.Context, id int64) (*models.Transport, error) {
	updated, err := s.repo.MarkPaid(ctx, id)
	if err != nil {
		return nil, fail(s.logger, "mark transport paid", err, zap.Int64("transport_id", id))
	}
	s.logger.Info("transport marked paid", zap.Int64("transport_id", id))
	return updated, nil
}

func (s *TransportService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fail(s.logger, "delete transport", err, zap.Int64("transport_id", id))
	}
	s.logger.Info("transport deleted", zap.Int64("transport_id", id))
	return nil
}

func (s *TransportService) List(ctx context.Context) ([]models.Transport, error) {
	transports, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fail(s.logger, "list transports", err)
	}
	return transports, nil
}

func (s *TransportService) ListByToLocation(ctx context.Context) ([]models.Transport, error) {
	transports, err := s.repo.FindAllOrderByToLocation(ctx)
	if err != nil {
		return nil, fail(s.logger, "list transports by destination", err)
	}
	return transports, nil
}

// FindByToLocation returns the transports whose destination equals dest,
// ignoring surrounding whitespace.
func (s *TransportService) FindByToLocation(ctx context.Context, dest string) ([]models.Transport, error) {
	if err := validation.Destination(dest); err != nil {
		return nil, err
	}
	transports, err := s.repo.FindByToLocation(ctx, dest)
	if err != nil {
		return nil, fail(s.logger, "find transports by destination", err)
	}
	return transports, nil
}

func (s *TransportService) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.CountAll(ctx)
	if err != nil {
		return 0, fail(s.logger, "count transports", err)
	}
	return count, nil
}

// TotalRevenue is the total price of all transports, paid or not.
func (s *TransportService) TotalRevenue(ctx context.Context) (money.Amount, error) {
	total, err := s.repo.SumTotalRevenue(ctx)
	if err != nil {
		return money.Zero, fail(s.logger, "sum revenue", err)
	}
	return total, nil
}

// RevenueForCompany is the total price of one company's transports, paid
// or not.
func (s *TransportService) RevenueForCompany(ctx context.Context, companyID int64) (money.Amount, error) {
	company, err := s.companies.FindByID(ctx, companyID)
	if _, err = existing(company, err, e.Company, companyID); err != nil {
		return money.Zero, fail(s.logger, "resolve company", err, zap.Int64("company_id", companyID))
	}
	total, err := s.repo.SumRevenueForCompany(ctx, companyID)
	if err != nil {
		return money.Zero, fail(s.logger, "sum company revenue", err, zap.Int64("company_id", companyID))
	}
	return total, nil
}

// RevenueForPeriod is the total price of the company's paid transports that
// departed within the period, both ends included.
func (s *TransportService) RevenueForPeriod(ctx context.Context, period *models.RevenuePeriod) (money.Amount, error) {
	if err := validation.RevenuePeriod(period); err != nil {
		return money.Zero, err
	}
	company, err := s.companies.FindByID(ctx, period.CompanyID)
	if _, err = existing(company, err, e.Company, period.CompanyID); err != nil {
		return money.Zero, fail(s.logger, "resolve company", err, zap.Int64("company_id", period.CompanyID))
	}
	total, err := s.repo.SumRevenueForCompanyAndPeriod(ctx, period.CompanyID, period.From.UTC(), period.To.UTC())
	if err != nil {
		return money.Zero, fail(s.logger, "sum period revenue", err, zap.Int64("company_id", period.CompanyID))
	}
	return total, nil
}

func (s *TransportService) DriverTransportStats(ctx context.Context) ([]models.DriverTransportCount, error) {
	stats, err := s.repo.DriverTransportStats(ctx)
	if err != nil {
		return nil, fail(s.logger, "report driver transports", err)
	}
	return stats, nil
}

func (s *TransportService) DriverRevenue(ctx context.Context) ([]models.DriverRevenue, error) {
	rows, err := s.repo.DriverRevenue(ctx)
	if err != nil {
		return nil, fail(s.logger, "report driver revenue", err)
	}
	return rows, nil
}
