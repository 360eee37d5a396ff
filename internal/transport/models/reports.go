package models

import "github.com/gartstein/transport/internal/pkg/money"

// CompanyRevenue is one company with the sum of prices over all of its
// transports, paid or not.
type CompanyRevenue struct {
	Company Company
	Revenue money.Amount
}

// DriverTransportCount is a driver with the number of transports they drove.
type DriverTransportCount struct {
	Driver     Employee
	Transports int64
}

// DriverRevenue is a driver with the sum of prices over their paid transports.
type DriverRevenue struct {
	Driver  Employee
	Revenue money.Amount
}
