// Package validation checks service requests before anything reaches the
// store. Each request type has one function that lists every field rule
// with its message; the failed rules are collected into a single
// errors.ValidationError.
package validation

import (
	"strings"

	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank rejects strings made only of whitespace.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// rule is one field check. ok is false when the check failed.
type rule struct {
	field   string
	message string
	ok      bool
}

// tag checks value against a validator tag such as "notblank,max=100".
func tag(field string, value any, tags, message string) rule {
	return rule{field: field, message: message, ok: validate.Var(value, tags) == nil}
}

// check records a precomputed predicate.
func check(field string, ok bool, message string) rule {
	return rule{field: field, message: message, ok: ok}
}

// collect turns the failed rules into a ValidationError, or nil.
func collect(rules ...rule) error {
	var fields []e.FieldError
	for _, r := range rules {
		if !r.ok {
			fields = append(fields, e.FieldError{Field: r.field, Message: r.message})
		}
	}
	return e.NewValidation(fields)
}

func positiveID(field string, id int64, message string) rule {
	return tag(field, id, "gt=0", message)
}
