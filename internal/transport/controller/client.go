package controller

import (
	"context"

	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"github.com/gartstein/transport/internal/transport/validation"
	"go.uber.org/zap"
)

type ClientRepository interface {
	ClientFinder
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) (*models.Client, error)
	FindAll(ctx context.Context) ([]models.Client, error)
	DeleteByID(ctx context.Context, id int64) error
}

// ClientService manages the clients of companies.
type ClientService struct {
	repo      ClientRepository
	companies CompanyFinder
	logger    *zap.Logger
}

func NewClientService(repo ClientRepository, companies CompanyFinder, logger *zap.Logger) *ClientService {
	return &ClientService{
		repo:      repo,
		companies: companies,
		logger:    logger.Named("client_service"),
	}
}

// Create adds a client to an existing company.
func (s *ClientService) Create(ctx context.Context, req *models.ClientCreate) (*models.Client, error) {
	if err := validation.ClientCreate(req); err != nil {
		return nil, err
	}
	found, err := s.companies.FindByID(ctx, req.CompanyID)
	company, err := existing(found, err, e.Company, req.CompanyID)
	if err != nil {
		return nil, fail(s.logger, "resolve company", err, zap.Int64("company_id", req.CompanyID))
	}

	client, err := s.repo.Create(ctx, &models.Client{
		Name:           req.Name,
		ContactDetails: req.ContactDetails,
		CompanyID:      company.ID,
	})
	if err != nil {
		return nil, fail(s.logger, "create client", err)
	}
	s.logger.Info("client created",
		zap.Int64("client_id", client.ID),
		zap.Int64("company_id", client.CompanyID),
	)
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (*models.Client, error) {
	found, err := s.repo.FindByID(ctx, id)
	client, err := existing(found, err, e.Client, id)
	if err != nil {
		return nil, fail(s.logger, "get client", err, zap.Int64("client_id", id))
	}
	return client, nil
}

// Update replaces name and contact details. The company stays the same.
func (s *ClientService) Update(ctx context.Context, req *models.ClientUpdate) (*models.Client, error) {
	if err := validation.ClientUpdate(req); err != nil {
		return nil, err
	}
	client, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	client.Name = req.Name
	client.ContactDetails = req.ContactDetails
	updated, err := s.repo.Update(ctx, client)
	if err != nil {
		return nil, fail(s.logger, "update client", err, zap.Int64("client_id", req.ID))
	}
	s.logger.Info("client updated", zap.Int64("client_id", updated.ID))
	return updated, nil
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fail(s.logger, "delete client", err, zap.Int64("client_id", id))
	}
	s.logger.Info("client deleted", zap.Int64("client_id", id))
	return nil
}

func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fail(s.logger, "list clients", err)
	}
	return clients, nil
}
