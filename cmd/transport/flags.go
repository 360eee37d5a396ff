package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gartstein/transport/internal/transport/models"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*timeValue)(nil)
	_ pflag.Value = (*qualificationValue)(nil)
)

// timeValue accepts RFC 3339 or a bare date, read as midnight UTC.
type timeValue struct {
	t *time.Time
}

func (v timeValue) String() string {
	if v.t == nil || v.t.IsZero() {
		return ""
	}
	return v.t.Format(time.RFC3339)
}

func (v timeValue) Set(s string) error {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*v.t = t
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("want RFC 3339 or YYYY-MM-DD, got %q", s)
	}
	*v.t = t
	return nil
}

func (timeValue) Type() string {
	return "time"
}

type qualificationValue struct {
	q *models.Qualification
}

func (v qualificationValue) String() string {
	if v.q == nil {
		return ""
	}
	return string(*v.q)
}

func (v qualificationValue) Set(s string) error {
	q := models.Qualification(strings.ToUpper(s))
	if !q.Valid() {
		return fmt.Errorf("want one of %v", models.Qualifications)
	}
	*v.q = q
	return nil
}

func (qualificationValue) Type() string {
	return "qualification"
}
