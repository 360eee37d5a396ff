package controller

import (
	"context"
	"time"

	"github.com/gartstein/transport/internal/pkg/money"
	"github.com/gartstein/transport/internal/transport/models"
)

// MockCompanyRepository implements CompanyRepository for testing.
type MockCompanyRepository struct {
	create             func(context.Context, *models.Company) (*models.Company, error)
	update             func(context.Context, *models.Company) (*models.Company, error)
	findByID           func(context.Context, int64) (*models.Company, error)
	findAll            func(context.Context) ([]models.Company, error)
	findAllOrderByName func(context.Context) ([]models.Company, error)
	findAllWithRevenue func(context.Context) ([]models.CompanyRevenue, error)
	existsByName       func(context.Context, string) (bool, error)
	deleteByID         func(context.Context, int64) error
}

func (m *MockCompanyRepository) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	return m.create(ctx, c)
}

func (m *MockCompanyRepository) Update(ctx context.Context, c *models.Company) (*models.Company, error) {
	return m.update(ctx, c)
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id int64) (*models.Company, error) {
	return m.findByID(ctx, id)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context) ([]models.Company, error) {
	return m.findAll(ctx)
}

func (m *MockCompanyRepository) FindAllOrderByName(ctx context.Context) ([]models.Company, error) {
	return m.findAllOrderByName(ctx)
}

func (m *MockCompanyRepository) FindAllWithRevenue(ctx context.Context) ([]models.CompanyRevenue, error) {
	return m.findAllWithRevenue(ctx)
}

func (m *MockCompanyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.existsByName(ctx, name)
}

func (m *MockCompanyRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.deleteByID(ctx, id)
}

// MockTransportRepository implements TransportRepository for testing.
type MockTransportRepository struct {
	create                        func(context.Context, *models.Transport) (*models.Transport, error)
	update                        func(context.Context, *models.Transport) (*models.Transport, error)
	markPaid                      func(context.Context, int64) (*models.Transport, error)
	findByID                      func(context.Context, int64) (*models.Transport, error)
	findAll                       func(context.Context) ([]models.Transport, error)
	findAllOrderByToLocation      func(context.Context) ([]models.Transport, error)
	findByToLocation              func(context.Context, string) ([]models.Transport, error)
	deleteByID                    func(context.Context, int64) error
	countAll                      func(context.Context) (int64, error)
	sumTotalRevenue               func(context.Context) (money.Amount, error)
	sumRevenueForCompany          func(context.Context, int64) (money.Amount, error)
	sumRevenueForCompanyAndPeriod func(context.Context, int64, time.Time, time.Time) (money.Amount, error)
	driverTransportStats          func(context.Context) ([]models.DriverTransportCount, error)
	driverRevenue                 func(context.Context) ([]models.DriverRevenue, error)
}

func (m *MockTransportRepository) Create(ctx context.Context, t *models.Transport) (*models.Transport, error) {
	return m.create(ctx, t)
}

func (m *MockTransportRepository) Update(ctx context.Context, t *models.Transport) (*models.Transport, error) {
	return m.update(ctx, t)
}

func (m *MockTransportRepository) MarkPaid(ctx context.Context, id int64) (*models.Transport, error) {
	return m.markPaid(ctx, id)
}

func (m *MockTransportRepository) FindByID(ctx context.Context, id int64) (*models.Transport, error) {
	return m.findByID(ctx, id)
}

func (m *MockTransportRepository) FindAll(ctx context.Context) ([]models.Transport, error) {
	return m.findAll(ctx)
}

func (m *MockTransportRepository) FindAllOrderByToLocation(ctx context.Context) ([]models.Transport, error) {
	return m.findAllOrderByToLocation(ctx)
}

func (m *MockTransportRepository) FindByToLocation(ctx context.Context, dest string) ([]models.Transport, error) {
	return m.findByToLocation(ctx, dest)
}

func (m *MockTransportRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.deleteByID(ctx, id)
}

func (m *MockTransportRepository) CountAll(ctx context.Context) (int64, error) {
	return m.countAll(ctx)
}

func (m *MockTransportRepository) SumTotalRevenue(ctx context.Context) (money.Amount, error) {
	return m.sumTotalRevenue(ctx)
}

func (m *MockTransportRepository) SumRevenueForCompany(ctx context.Context, companyID int64) (money.Amount, error) {
	return m.sumRevenueForCompany(ctx, companyID)
}

func (m *MockTransportRepository) SumRevenueForCompanyAndPeriod(ctx context.Context, companyID int64, from, to time.Time) (money.Amount, error) {
	return m.sumRevenueForCompanyAndPeriod(ctx, companyID, from, to)
}

func (m *MockTransportRepository) DriverTransportStats(ctx context.Context) ([]models.DriverTransportCount, error) {
	return m.driverTransportStats(ctx)
}

func (m *MockTransportRepository) DriverRevenue(ctx context.Context) ([]models.DriverRevenue, error) {
	return m.driverRevenue(ctx)
}

type companyFinderFunc func(context.Context, int64) (*models.Company, error)

func (f companyFinderFunc) FindByID(ctx context.Context, id int64) (*models.Company, error) {
	return f(ctx, id)
}

type clientFinderFunc func(context.Context, int64) (*models.Client, error)

func (f clientFinderFunc) FindByID(ctx context.Context, id int64) (*models.Client, error) {
	return f(ctx, id)
}

type vehicleFinderFunc func(context.Context, int64) (*models.Vehicle, error)

func (f vehicleFinderFunc) FindByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	return f(ctx, id)
}

type employeeFinderFunc func(context.Context, int64) (*models.Employee, error)

func (f employeeFinderFunc) FindByID(ctx context.Context, id int64) (*models.Employee, error) {
	return f(ctx, id)
}
