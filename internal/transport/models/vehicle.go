package models

import "time"

// VehicleType is the closed set of vehicle kinds.
type VehicleType string

const (
	Truck VehicleType = "TRUCK"
	Van   VehicleType = "VAN"
	Car   VehicleType = "CAR"
	Bus   VehicleType = "BUS"
)

// VehicleTypes lists every vehicle type in declaration order.
var VehicleTypes = []VehicleType{Truck, Van, Car, Bus}

// Valid reports whether t is one of VehicleTypes.
func (t VehicleType) Valid() bool {
	for _, v := range VehicleTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Vehicle is a registered vehicle of a company.
type Vehicle struct {
	ID                 int64       `gorm:"primaryKey;autoIncrement"`
	RegistrationNumber string      `gorm:"size:20;not null;uniqueIndex"`
	Type               VehicleType `gorm:"size:20;not null"`
	Capacity           int         `gorm:"not null;check:capacity >= 0"`
	CompanyID          int64       `gorm:"not null;index"`
	Company            Company     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type VehicleCreate struct {
	CompanyID          int64
	RegistrationNumber string
	Type               VehicleType
	Capacity           int
}

type VehicleUpdate struct {
	ID                 int64
	RegistrationNumber string
	Type               VehicleType
	Capacity           int
}
