package db

import (
	"errors"
	"fmt"

	e "github.com/gartstein/transport/internal/transport/errors"
	"gorm.io/gorm"
)

// reference is a column in another table that points at the row being deleted.
type reference struct {
	model  any
	table  string
	column string
}

// ensureUnreferenced rejects a delete while dependent rows exist.
func ensureUnreferenced(tx *gorm.DB, entity e.Entity, id int64, refs ...reference) error {
	for _, ref := range refs {
		var count int64
		if err := tx.Model(ref.model).Where(ref.column+" = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &e.ConstraintError{
				Kind:       e.InUse,
				Constraint: ref.table + "." + ref.column,
				Err:        fmt.Errorf("%s %d is still referenced by %d %s", entity, id, count, ref.table),
			}
		}
	}
	return nil
}

// first loads one row into dest. found is false when no row matched.
func first(tx *gorm.DB, dest any, id int64) (found bool, err error) {
	err = tx.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// withCompany preloads the owning company of clients, vehicles and employees.
func withCompany(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Company")
}
