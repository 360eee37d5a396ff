package db

import (
	"context"

	"github.com/gartstein/transport/internal/pkg/money"
	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	store *Store
}

func NewCompanyRepository(store *Store) *CompanyRepository {
	return &CompanyRepository{store: store}
}

func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	err := r.store.WithTransaction(ctx, "company.create", func(tx *gorm.DB) error {
		return tx.Create(company).Error
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

// Update replaces name and address of the company with company.ID and
// returns the stored row.
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) (*models.Company, error) {
	var updated models.Company
	err := r.store.WithTransaction(ctx, "company.update", func(tx *gorm.DB) error {
		result := tx.Model(&models.Company{}).
			Where("id = ?", company.ID).
			Select("name", "address", "updated_at").
			Updates(company)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return e.NewNotFound(e.Company, company.ID)
		}
		return tx.First(&updated, company.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// FindByID returns nil without error when no company has the id.
func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*models.Company, error) {
	var (
		company models.Company
		found   bool
	)
	err := r.store.WithTransaction(ctx, "company.find", func(tx *gorm.DB) error {
		var err error
		found, err = first(tx, &company, id)
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) FindAll(ctx context.Context) ([]models.Company, error) {
	return r.list(ctx, "company.find_all", "id")
}

// FindAllOrderByName sorts by name, byte-wise, so upper case sorts before
// lower case.
func (r *CompanyRepository) FindAllOrderByName(ctx context.Context) ([]models.Company, error) {
	return r.list(ctx, "company.find_all_by_name", r.store.sortKey("name")+", id")
}

func (r *CompanyRepository) list(ctx context.Context, op, order string) ([]models.Company, error) {
	var companies []models.Company
	err := r.store.WithTransaction(ctx, op, func(tx *gorm.DB) error {
		return tx.Order(order).Find(&companies).Error
	})
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.store.WithTransaction(ctx, "company.exists_by_name", func(tx *gorm.DB) error {
		return tx.Model(&models.Company{}).
			Where("name = ?", name).
			Limit(1).
			Count(&count).Error
	})
	return count > 0, err
}

type companyRevenueRow struct {
	CompanyID int64
	Revenue   money.Amount
}

// FindAllWithRevenue returns every company with the sum of prices over all
// of its transports, paid or not, highest revenue first. Companies without
// transports report 0.00.
func (r *CompanyRepository) FindAllWithRevenue(ctx context.Context) ([]models.CompanyRevenue, error) {
	var result []models.CompanyRevenue
	err := r.store.WithTransaction(ctx, "company.find_all_with_revenue", func(tx *gorm.DB) error {
		var rows []companyRevenueRow
		err := tx.Model(&models.Company{}).
			Select("companies.id AS company_id, COALESCE(SUM(transports.price_cents), 0) AS revenue").
			Joins("LEFT JOIN transports ON transports.company_id = companies.id").
			Group("companies.id, companies.name").
			Order("revenue DESC, " + r.store.sortKey("companies.name") + ", companies.id").
			Scan(&rows).Error
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.CompanyID)
		}
		companies := make(map[int64]models.Company, len(ids))
		if len(ids) > 0 {
			var list []models.Company
			if err := tx.Where("id IN ?", ids).Find(&list).Error; err != nil {
				return err
			}
			for _, c := range list {
				companies[c.ID] = c
			}
		}

		result = make([]models.CompanyRevenue, 0, len(rows))
		for _, row := range rows {
			result = append(result, models.CompanyRevenue{
				Company: companies[row.CompanyID],
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

// DeleteByID removes the company. A missing id is not an error; a company
// that still owns clients, vehicles, employees or transports is not deleted.
func (r *CompanyRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.store.WithTransaction(ctx, "company.delete", func(tx *gorm.DB) error {
		if err := ensureUnreferenced(tx, e.Company, id,
			reference{model: &models.Client{}, table: "clients", column: "company_id"},
			reference{model: &models.Vehicle{}, table: "vehicles", column: "company_id"},
			reference{model: &models.Employee{}, table: "employees", column: "company_id"},
			reference{model: &models.Transport{}, table: "transports", column: "company_id"},
		); err != nil {
			return err
		}
		return tx.Delete(&models.Company{}, id).Error
	})
}
