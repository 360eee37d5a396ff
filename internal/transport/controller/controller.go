// Package controller implements the business logic of the transport core.
// Each service validates its requests, resolves the records they refer to
// and delegates persistence and reporting to the repositories.
package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"go.uber.org/zap"
)

// CompanyFinder loads a company by id; nil without error when absent.
type CompanyFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Company, error)
}

type ClientFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Client, error)
}

type VehicleFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Vehicle, error)
}

type EmployeeFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Employee, error)
}

// existing turns a missing row into a NotFoundError.
func existing[T any](v *T, err error, entity e.Entity, id int64) (*T, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, e.NewNotFound(entity, id)
	}
	return v, nil
}

// fail wraps err with the action that failed. Not-found and validation
// errors are returned as they are; storage failures are logged.
func fail(logger *zap.Logger, action string, err error, fields ...zap.Field) error {
	if errors.Is(err, e.ErrNotFound) || errors.Is(err, e.ErrInvalidInput) {
		return err
	}
	if errors.Is(err, e.ErrStorage) {
		logger.Error("failed to "+action, append(fields, zap.Error(err))...)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
