package db

import (
	"context"
	"strings"
	"time"

	"github.com/gartstein/transport/internal/pkg/money"
	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransportRepository struct {
	store *Store
}

func NewTransportRepository(store *Store) *TransportRepository {
	return &TransportRepository{store: store}
}

// withReferences loads the four references of a transport and the company
// of each of them.
func withReferences(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Company").
		Preload("Client.Company").
		Preload("Vehicle.Company").
		Preload("Driver.Company")
}

// Create inserts the transport. The referenced rows are not written; they
// must already exist.
func (r *TransportRepository) Create(ctx context.Context, transport *models.Transport) (*models.Transport, error) {
	err := r.store.WithTransaction(ctx, "transport.create", func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(transport).Error; err != nil {
			return err
		}
		return withReferences(tx).First(transport, transport.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return transport, nil
}

// Update writes route, times, cargo and price. References are fixed at
// creation and the paid flag only changes through MarkPaid.
func (r *TransportRepository) Update(ctx context.Context, transport *models.Transport) (*models.Transport, error) {
	var updated models.Transport
	err := r.store.WithTransaction(ctx, "transport.update", func(tx *gorm.DB) error {
		result := tx.Model(&models.Transport{}).
			Where("id = ?", transport.ID).
			Select("from_location", "to_location", "departure_at", "arrival_at",
				"cargo_description", "cargo_weight", "price_cents", "updated_at").
			Omit(clause.Associations).
			Updates(transport)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return e.NewNotFound(e.Transport, transport.ID)
		}
		return withReferences(tx).First(&updated, transport.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// MarkPaid sets the paid flag and nothing else, so a concurrent Update
// cannot be overwritten and the flag never goes back to false.
func (r *TransportRepository) MarkPaid(ctx context.Context, id int64) (*models.Transport, error) {
	var updated models.Transport
	err := r.store.WithTransaction(ctx, "transport.mark_paid", func(tx *gorm.DB) error {
		result := tx.Model(&models.Transport{}).
			Where("id = ?", id).
			UpdateColumns(map[string]any{"paid": true, "updated_at": time.Now().UTC()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return e.NewNotFound(e.Transport, id)
		}
		return withReferences(tx).First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *TransportRepository) FindByID(ctx context.Context, id int64) (*models.Transport, error) {
	var (
		transport models.Transport
		found     bool
	)
	err := r.store.WithTransaction(ctx, "transport.find", func(tx *gorm.DB) error {
		var err error
		found, err = first(withReferences(tx), &transport, id)
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return &transport, nil
}

func (r *TransportRepository) FindAll(ctx context.Context) ([]models.Transport, error) {
	return r.list(ctx, "transport.find_all", "id", nil)
}

// FindAllOrderByToLocation sorts by destination, then origin, then
// departure time.
func (r *TransportRepository) FindAllOrderByToLocation(ctx context.Context) ([]models.Transport, error) {
	order := r.store.sortKey("to_location") + ", " + r.store.sortKey("from_location") + ", departure_at, id"
	return r.list(ctx, "transport.find_all_by_destination", order, nil)
}

// FindByToLocation matches destinations ignoring leading and trailing
// whitespace of dest and spaces of the stored value.
func (r *TransportRepository) FindByToLocation(ctx context.Context, dest string) ([]models.Transport, error) {
	dest = strings.TrimSpace(dest)
	return r.list(ctx, "transport.find_by_destination", "departure_at, id", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("TRIM(to_location) = ?", dest)
	})
}

func (r *TransportRepository) list(ctx context.Context, op, order string, scope func(*gorm.DB) *gorm.DB) ([]models.Transport, error) {
	var transports []models.Transport
	err := r.store.WithTransaction(ctx, op, func(tx *gorm.DB) error {
		query := withReferences(tx)
		if scope != nil {
			query = query.Scopes(scope)
		}
		return query.Order(order).Find(&transports).Error
	})
	if err != nil {
		return nil, err
	}
	return transports, nil
}

func (r *TransportRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.store.WithTransaction(ctx, "transport.delete", func(tx *gorm.DB) error {
		return tx.Delete(&models.Transport{}, id).Error
	})
}

func (r *TransportRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.store.WithTransaction(ctx, "transport.count", func(tx *gorm.DB) error {
		return tx.Model(&models.Transport{}).Count(&count).Error
	})
	return count, err
}

// SumTotalRevenue is the sum of prices over all transports, paid or not.
func (r *TransportRepository) SumTotalRevenue(ctx context.Context) (money.Amount, error) {
	return r.sum(ctx, "transport.sum_total", nil)
}

// SumRevenueForCompany is the sum of prices over all transports of one
// company, paid or not.
func (r *TransportRepository) SumRevenueForCompany(ctx context.Context, companyID int64) (money.Amount, error) {
	return r.sum(ctx, "transport.sum_for_company", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("company_id = ?", companyID)
	})
}

// SumRevenueForCompanyAndPeriod sums the paid transports of one company
// that departed within [from, to].
func (r *TransportRepository) SumRevenueForCompanyAndPeriod(ctx context.Context, companyID int64, from, to time.Time) (money.Amount, error) {
	return r.sum(ctx, "transport.sum_for_period", func(tx *gorm.DB) *gorm.DB {
		return tx.
			Where("company_id = ?", companyID).
			Where("paid = ?", true).
			Where("departure_at BETWEEN ? AND ?", from.UTC(), to.UTC())
	})
}

func (r *TransportRepository) sum(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) (money.Amount, error) {
	var row struct {
		Total money.Amount
	}
	err := r.store.WithTransaction(ctx, op, func(tx *gorm.DB) error {
		query := tx.Model(&models.Transport{})
		if scope != nil {
			query = query.Scopes(scope)
		}
		return query.Select("COALESCE(SUM(price_cents), 0) AS total").Scan(&row).Error
	})
	if err != nil {
		return money.Zero, err
	}
	return row.Total, nil
}

type driverCountRow struct {
	DriverID       int64
	TransportCount int64
}

// DriverTransportStats counts the transports of every driver that has at
// least one, busiest driver first.
func (r *TransportRepository) DriverTransportStats(ctx context.Context) ([]models.DriverTransportCount, error) {
	var result []models.DriverTransportCount
	err := r.store.WithTransaction(ctx, "transport.driver_stats", func(tx *gorm.DB) error {
		var rows []driverCountRow
		err := tx.Model(&models.Transport{}).
			Select("driver_id, COUNT(*) AS transport_count").
			Group("driver_id").
			Order("transport_count DESC, driver_id").
			Scan(&rows).Error
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.DriverID)
		}
		drivers, err := loadDrivers(tx, ids)
		if err != nil {
			return err
		}

		result = make([]models.DriverTransportCount, 0, len(rows))
		for _, row := range rows {
			result = append(result, models.DriverTransportCount{
				Driver:     drivers[row.DriverID],
				Transports: row.TransportCount,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type driverRevenueRow struct {
	DriverID int64
	Revenue  money.Amount
}

// DriverRevenue sums the paid transports of every driver that has one,
// highest revenue first.
func (r *TransportRepository) DriverRevenue(ctx context.Context) ([]models.DriverRevenue, error) {
	var result []models.DriverRevenue
	err := r.store.WithTransaction(ctx, "transport.driver_revenue", func(tx *gorm.DB) error {
		var rows []driverRevenueRow
		err := tx.Model(&models.Transport{}).
			Select("driver_id, SUM(price_cents) AS revenue").
			Where("paid = ?", true).
			Group("driver_id").
			Order("revenue DESC, driver_id").
			Scan(&rows).Error
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.DriverID)
		}
		drivers, err := loadDrivers(tx, ids)
		if err != nil {
			return err
		}

		result = make([]models.DriverRevenue, 0, len(rows))
		for _, row := range rows {
			result = append(result, models.DriverRevenue{
				Driver:  drivers[row.DriverID],
				Revenue: row.Revenue,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func loadDrivers(tx *gorm.DB, ids []int64) (map[int64]models.Employee, error) {
	drivers := make(map[int64]models.Employee, len(ids))
	if len(ids) == 0 {
		return drivers, nil
	}
	var list []models.Employee
	if err := withCompany(tx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	for _, d := range list {
		drivers[d.ID] = d
	}
	return drivers, nil
}
