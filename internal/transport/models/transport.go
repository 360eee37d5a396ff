package models

import (
	"time"

	"github.com/gartstein/transport/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// Transport is one transport job. Every read returns it with its company,
// client, vehicle and driver loaded, each of those with its own company.
type Transport struct {
	ID        int64    `gorm:"primaryKey;autoIncrement"`
	CompanyID int64    `gorm:"not null;index"`
	Company   Company  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ClientID  int64    `gorm:"not null;index"`
	Client    Client   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	VehicleID int64    `gorm:"not null;index"`
	Vehicle   Vehicle  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	DriverID  int64    `gorm:"not null;index"`
	Driver    Employee `gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	FromLocation string `gorm:"size:255;not null"`
	ToLocation   string `gorm:"size:255;not null;index"`
	// DepartureAt and ArrivalAt are stored in UTC. Arrival before departure
	// is accepted.
	DepartureAt time.Time `gorm:"not null;index"`
	ArrivalAt   time.Time `gorm:"not null"`

	CargoDescription string `gorm:"size:500"`
	// CargoWeight is optional; Valid is false when it was not given.
	CargoWeight decimal.NullDecimal `gorm:"type:decimal(12,3)"`
	Price       money.Amount        `gorm:"column:price_cents;not null;check:price_cents >= 0"`
	// Paid only moves from false to true, through MarkPaid.
	Paid bool `gorm:"not null;default:false;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransportCreate references four existing records by id. Client, vehicle and
// driver must belong to the company.
type TransportCreate struct {
	CompanyID        int64
	ClientID         int64
	VehicleID        int64
	DriverID         int64
	FromLocation     string
	ToLocation       string
	Departure        time.Time
	Arrival          time.Time
	CargoDescription string
	CargoWeight      decimal.NullDecimal
	Price            money.Amount
	Paid             bool
}

// TransportUpdate replaces the scalar fields of a transport. References and
// the paid flag are not part of it.
type TransportUpdate struct {
	ID               int64
	FromLocation     string
	ToLocation       string
	Departure        time.Time
	Arrival          time.Time
	CargoDescription string
	CargoWeight      decimal.NullDecimal
	Price            money.Amount
}

// RevenuePeriod selects the paid transports of one company that departed
// within [From, To], both ends inclusive.
type RevenuePeriod struct {
	CompanyID int64
	From      time.Time
	To        time.Time
}
