// Package models defines the records managed by the transport core: the
// entities persisted through GORM, the enumerations they use, the request
// types accepted by the services and the rows returned by reports.
package models

import (
	"time"
)

// Company is the root of ownership: every client, vehicle, employee and
// transport belongs to exactly one company.
type Company struct {
	// ID is assigned by the store on creation.
	ID int64 `gorm:"primaryKey;autoIncrement"`
	// Name is unique across all companies.
	Name string `gorm:"size:100;not null;uniqueIndex"`
	// Address is optional.
	Address string `gorm:"size:255"`
	// CreatedAt records when the company was created.
	CreatedAt time.Time
	// UpdatedAt records when the company was last updated.
	UpdatedAt time.Time
}

// CompanyCreate holds the fields needed to register a company.
type CompanyCreate struct {
	Name    string
	Address string
}

// CompanyUpdate replaces the mutable fields of an existing company.
type CompanyUpdate struct {
	// ID is the company to update.
	ID      int64
	Name    string
	Address string
}
