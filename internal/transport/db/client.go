package db

import (
	"context"

	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository struct {
	store *Store
}

func NewClientRepository(store *Store) *ClientRepository {
	return &ClientRepository{store: store}
}

// Create inserts the client and returns it with its company loaded. The
// company itself is never written.
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	err := r.store.WithTransaction(ctx, "client.create", func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(client).Error; err != nil {
			return err
		}
		return withCompany(tx).First(client, client.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *models.Client) (*models.Client, error) {
	var updated models.Client
	err := r.store.WithTransaction(ctx, "client.update", func(tx *gorm.DB) error {
		result := tx.Model(&models.Client{}).
			Where("id = ?", client.ID).
			Select("name", "contact_details", "updated_at").
			Omit(clause.Associations).
			Updates(client)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return e.NewNotFound(e.Client, client.ID)
		}
		return withCompany(tx).First(&updated, client.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*models.Client, error) {
	var (
		client models.Client
		found  bool
	)
	err := r.store.WithTransaction(ctx, "client.find", func(tx *gorm.DB) error {
		var err error
		found, err = first(withCompany(tx), &client, id)
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := r.store.WithTransaction(ctx, "client.find_all", func(tx *gorm.DB) error {
		return withCompany(tx).Order("id").Find(&clients).Error
	})
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.store.WithTransaction(ctx, "client.delete", func(tx *gorm.DB) error {
		if err := ensureUnreferenced(tx, e.Client, id,
			reference{model: &models.Transport{}, table: "transports", column: "client_id"},
		); err != nil {
			return err
		}
		return tx.Delete(&models.Client{}, id).Error
	})
}
