package models

import "time"

// Client is a customer of a company.
type Client struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	Name           string  `gorm:"size:100;not null"`
	ContactDetails string  `gorm:"size:255"`
	CompanyID      int64   `gorm:"not null;index"`
	Company        Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ClientCreate struct {
	CompanyID      int64
	Name           string
	ContactDetails string
}

// ClientUpdate does not carry the owning company; it cannot be changed.
type ClientUpdate struct {
	ID             int64
	Name           string
	ContactDetails string
}
