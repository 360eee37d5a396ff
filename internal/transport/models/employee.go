package models

import (
	"time"

	"github.com/gartstein/transport/internal/pkg/money"
)

// Qualification is an employee's fixed role classification.
type Qualification string

const (
	DriverStandard  Qualification = "DRIVER_STANDARD"
	DriverHazardous Qualification = "DRIVER_HAZARDOUS"
	Mechanic        Qualification = "MECHANIC"
	Office          Qualification = "OFFICE"
)

// Qualifications lists every qualification in declaration order. Reports
// that sort by qualification use this order, not the lexical one.
var Qualifications = []Qualification{DriverStandard, DriverHazardous, Mechanic, Office}

// Valid reports whether q is one of Qualifications.
func (q Qualification) Valid() bool {
	return q.Rank() >= 0
}

// Rank is the position of q in Qualifications, or -1.
func (q Qualification) Rank() int {
	for i, v := range Qualifications {
		if v == q {
			return i
		}
	}
	return -1
}

// Employee works for a company; drivers are referenced by transports.
type Employee struct {
	ID            int64         `gorm:"primaryKey;autoIncrement"`
	FirstName     string        `gorm:"size:100;not null"`
	LastName      string        `gorm:"size:100;not null"`
	Qualification Qualification `gorm:"size:32;not null;index"`
	Salary        money.Amount  `gorm:"column:salary_cents;not null;check:salary_cents >= 0"`
	CompanyID     int64         `gorm:"not null;index"`
	Company       Company       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName is "First Last".
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type EmployeeCreate struct {
	CompanyID     int64
	FirstName     string
	LastName      string
	Qualification Qualification
	Salary        money.Amount
}

type EmployeeUpdate struct {
	ID            int64
	FirstName     string
	LastName      string
	Qualification Qualification
	Salary        money.Amount
}
