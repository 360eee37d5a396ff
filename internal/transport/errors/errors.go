// Package errors defines the failure taxonomy shared by the repositories and
// services. Callers match on the sentinels with errors.Is and extract the
// details with errors.As.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = fmt.Errorf("not found")
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrConstraint   = fmt.Errorf("constraint violation")
	ErrDuplicate    = fmt.Errorf("duplicate value")
	ErrStorage      = fmt.Errorf("storage failure")
)

// Entity names the record kind an error refers to.
type Entity string

const (
	Company   Entity = "company"
	Client    Entity = "client"
	Vehicle   Entity = "vehicle"
	Employee  Entity = "employee"
	Transport Entity = "transport"
)

// NotFoundError reports an id that does not resolve to a row.
type NotFoundError struct {
	Entity Entity
	ID     int64
}

func NewNotFound(entity Entity, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s with id = %d", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FieldError is one failed rule of a request.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries every failed rule of a request.
type ValidationError struct {
	Fields []FieldError
}

// NewValidation returns nil when there is nothing to report.
func NewValidation(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// HasField reports whether the named field failed.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ConstraintKind classifies storage-level constraint failures.
type ConstraintKind string

const (
	Unique     ConstraintKind = "unique"
	ForeignKey ConstraintKind = "foreign_key"
	Check      ConstraintKind = "check"
	NotNull    ConstraintKind = "not_null"
	// InUse is a delete rejected because other rows still reference the target.
	InUse ConstraintKind = "in_use"
)

// ConstraintError is a uniqueness, reference or check constraint failure.
type ConstraintError struct {
	Kind       ConstraintKind
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	msg := fmt.Sprintf("%s constraint violated", e.Kind)
	if e.Constraint != "" {
		msg += " (" + e.Constraint + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraint || (target == ErrDuplicate && e.Kind == Unique)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// StorageError is any other failure of a unit of work. Its effects have been
// rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotFoundEntity returns the entity of a NotFoundError in err's chain.
func NotFoundEntity(err error) (Entity, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Entity, true
	}
	return "", false
}
