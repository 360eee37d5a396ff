package db

import (
	"context"

	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VehicleRepository struct {
	store *Store
}

func NewVehicleRepository(store *Store) *VehicleRepository {
	return &VehicleRepository{store: store}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	err := r.store.WithTransaction(ctx, "vehicle.create", func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(vehicle).Error; err != nil {
			return err
		}
		return withCompany(tx).First(vehicle, vehicle.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	var updated models.Vehicle
	err := r.store.WithTransaction(ctx, "vehicle.update", func(tx *gorm.DB) error {
		result := tx.Model(&models.Vehicle{}).
			Where("id = ?", vehicle.ID).
			Select("registration_number", "type", "capacity", "updated_at").
			Omit(clause.Associations).
			Updates(vehicle)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return e.NewNotFound(e.Vehicle, vehicle.ID)
		}
		return withCompany(tx).First(&updated, vehicle.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	var (
		vehicle models.Vehicle
		found   bool
	)
	err := r.store.WithTransaction(ctx, "vehicle.find", func(tx *gorm.DB) error {
		var err error
		found, err = first(withCompany(tx), &vehicle, id)
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) FindAll(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.store.WithTransaction(ctx, "vehicle.find_all", func(tx *gorm.DB) error {
		return withCompany(tx).Order("id").Find(&vehicles).Error
	})
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) ExistsByRegistration(ctx context.Context, registration string) (bool, error) {
	var count int64
	err := r.store.WithTransaction(ctx, "vehicle.exists_by_registration", func(tx *gorm.DB) error {
		return tx.Model(&models.Vehicle{}).
			Where("registration_number = ?", registration).
			Limit(1).
			Count(&count).Error
	})
	return count > 0, err
}

func (r *VehicleRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.store.WithTransaction(ctx, "vehicle.delete", func(tx *gorm.DB) error {
		if err := ensureUnreferenced(tx, e.Vehicle, id,
			reference{model: &models.Transport{}, table: "transports", column: "vehicle_id"},
		); err != nil {
			return err
		}
		return tx.Delete(&models.Vehicle{}, id).Error
	})
}
