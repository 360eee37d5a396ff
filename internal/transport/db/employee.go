package db

import (
	"context"
	"fmt"
	"strings"

	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// qualificationRank orders employees by the declaration order of
// models.Qualifications rather than by the stored string.
var qualificationRank = func() string {
	var b strings.Builder
	b.WriteString("CASE qualification")
	for i, q := range models.Qualifications {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", q, i)
	}
	fmt.Fprintf(&b, " ELSE %d END", len(models.Qualifications))
	return b.String()
}()

type EmployeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	err := r.store.WithTransaction(ctx, "employee.create", func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(employee).Error; err != nil {
			return err
		}
		return withCompany(tx).First(employee, employee.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	var updated models.Employee
	err := r.store.WithTransaction(ctx, "employee.update", func(tx *gorm.DB) error {
		result := tx.Model(&models.Employee{}).
			Where("id = ?", employee.ID).
			Select("first_name", "last_name", "qualification", "salary_cents", "updated_at").
			Omit(clause.Associations).
			Updates(employee)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return e.NewNotFound(e.Employee, employee.ID)
		}
		return withCompany(tx).First(&updated, employee.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*models.Employee, error) {
	var (
		employee models.Employee
		found    bool
	)
	err := r.store.WithTransaction(ctx, "employee.find", func(tx *gorm.DB) error {
		var err error
		found, err = first(withCompany(tx), &employee, id)
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]models.Employee, error) {
	return r.list(ctx, "employee.find_all", "id", nil)
}

// FindAllOrderByQualificationThenSalary sorts by qualification, then salary
// descending, then last and first name. The id makes the order total.
func (r *EmployeeRepository) FindAllOrderByQualificationThenSalary(ctx context.Context) ([]models.Employee, error) {
	return r.list(ctx, "employee.find_all_by_qualification", qualificationRank+", "+r.bySalaryThenName(), nil)
}

func (r *EmployeeRepository) FindAllOrderBySalaryDesc(ctx context.Context) ([]models.Employee, error) {
	return r.list(ctx, "employee.find_all_by_salary", r.bySalaryThenName(), nil)
}

func (r *EmployeeRepository) FindByQualification(ctx context.Context, q models.Qualification) ([]models.Employee, error) {
	return r.list(ctx, "employee.find_by_qualification", r.bySalaryThenName(), func(tx *gorm.DB) *gorm.DB {
		return tx.Where("qualification = ?", q)
	})
}

func (r *EmployeeRepository) bySalaryThenName() string {
	return "salary_cents DESC, " + r.store.sortKey("last_name") + ", " + r.store.sortKey("first_name") + ", id"
}

func (r *EmployeeRepository) list(ctx context.Context, op, order string, scope func(*gorm.DB) *gorm.DB) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.store.WithTransaction(ctx, op, func(tx *gorm.DB) error {
		query := withCompany(tx)
		if scope != nil {
			query = query.Scopes(scope)
		}
		return query.Order(order).Find(&employees).Error
	})
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// DeleteByID refuses to delete a driver that is still assigned to transports.
func (r *EmployeeRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.store.WithTransaction(ctx, "employee.delete", func(tx *gorm.DB) error {
		if err := ensureUnreferenced(tx, e.Employee, id,
			reference{model: &models.Transport{}, table: "transports", column: "driver_id"},
		); err != nil {
			return err
		}
		return tx.Delete(&models.Employee{}, id).Error
	})
}
