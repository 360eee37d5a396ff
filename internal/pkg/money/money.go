// Package money provides Amount, an exact fixed-point monetary value with two
// fractional digits. Amounts are persisted as integer minor units so that
// aggregates computed by the database never pass through floating point.
package money

import (
	"database/sql/driver"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits an Amount carries.
const Scale = 2

// Amount is a non-floating monetary value. The zero value is 0.00.
type Amount struct {
	d decimal.Decimal
}

// Zero is 0.00.
var Zero = Amount{}

// Minor units are stored as int64.
var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// New wraps a decimal. The value is kept as given; use HasValidScale to
// check that it fits in minor units.
func New(d decimal.Decimal) Amount {
	return Amount{d: d}
}

// Parse reads a decimal string such as "120.50".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{d: d}, nil
}

// MustParse is Parse for constants and tests. It panics on malformed input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromCents builds an Amount from minor units.
func FromCents(cents int64) Amount {
	return Amount{d: decimal.New(cents, -Scale)}
}

// Cents returns the value in minor units. Digits beyond Scale are dropped.
// The result is only meaningful when FitsMinorUnits is true.
func (a Amount) Cents() int64 {
	return a.d.Shift(Scale).IntPart()
}

// Decimal exposes the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.d
}

func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

// Equal compares numerically, so 1.5 equals 1.50.
func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

func (a Amount) IsNegative() bool {
	return a.d.IsNegative()
}

func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

// HasValidScale reports whether the amount has at most Scale fractional digits.
func (a Amount) HasValidScale() bool {
	return a.d.Equal(a.d.Truncate(Scale))
}

// FitsMinorUnits reports whether the amount in minor units fits in int64.
func (a Amount) FitsMinorUnits() bool {
	cents := a.d.Shift(Scale)
	return cents.Cmp(minCents) >= 0 && cents.Cmp(maxCents) <= 0
}

// String renders the amount with exactly two fractional digits.
func (a Amount) String() string {
	return a.d.StringFixed(Scale)
}

// Value stores the amount as minor units.
func (a Amount) Value() (driver.Value, error) {
	if !a.HasValidScale() {
		return nil, fmt.Errorf("amount %s has more than %d fractional digits", a.d.String(), Scale)
	}
	if !a.FitsMinorUnits() {
		return nil, fmt.Errorf("amount %s is out of range", a.d.String())
	}
	return a.Cents(), nil
}

// Scan reads minor units. Drivers report SUM over BIGINT either as an integer
// (SQLite) or as a NUMERIC string (PostgreSQL); both are accepted.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Zero
	case int64:
		*a = FromCents(v)
	case int32:
		*a = FromCents(int64(v))
	case int:
		*a = FromCents(int64(v))
	case float64:
		*a = Amount{d: decimal.NewFromFloat(v).Round(0).Shift(-Scale)}
	case []byte:
		return a.scanString(string(v))
	case string:
		return a.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into money.Amount", src)
	}
	return nil
}

func (a *Amount) scanString(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("scan amount %q: %w", s, err)
	}
	*a = Amount{d: d.Shift(-Scale)}
	return nil
}

// GormDataType makes AutoMigrate create an integer column.
func (Amount) GormDataType() string {
	return "bigint"
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = Amount{d: d}
	return nil
}
