package validation

import (
	"github.com/gartstein/transport/internal/pkg/money"
	"github.com/gartstein/transport/internal/transport/models"
	"github.com/shopspring/decimal"
)

// Cargo weight is stored as decimal(12,3).
const weightScale = 3

var maxWeight = decimal.New(1, 12-weightScale)

func CompanyCreate(r *models.CompanyCreate) error {
	return collect(
		tag("name", r.Name, "notblank", "Transport company name is required."),
		tag("name", r.Name, "max=100", "Transport company name cannot be longer than 100 characters."),
		tag("address", r.Address, "max=255", "Address cannot be longer than 255 characters."),
	)
}

func CompanyUpdate(r *models.CompanyUpdate) error {
	return collect(
		positiveID("id", r.ID, "Transport company ID must be a positive number."),
		tag("name", r.Name, "notblank", "Transport company name is required."),
		tag("name", r.Name, "max=100", "Transport company name cannot be longer than 100 characters."),
		tag("address", r.Address, "max=255", "Address cannot be longer than 255 characters."),
	)
}

func ClientCreate(r *models.ClientCreate) error {
	return collect(
		positiveID("companyId", r.CompanyID, "Company ID must be a positive number."),
		tag("name", r.Name, "notblank", "Client name is required."),
		tag("name", r.Name, "max=100", "Client name cannot be longer than 100 characters."),
		tag("contactDetails", r.ContactDetails, "max=255", "Contact details cannot be longer than 255 characters."),
	)
}

func ClientUpdate(r *models.ClientUpdate) error {
	return collect(
		positiveID("id", r.ID, "Client ID must be a positive number."),
		tag("name", r.Name, "notblank", "Client name is required."),
		tag("name", r.Name, "max=100", "Client name cannot be longer than 100 characters."),
		tag("contactDetails", r.ContactDetails, "max=255", "Contact details cannot be longer than 255 characters."),
	)
}

func VehicleCreate(r *models.VehicleCreate) error {
	return collect(
		positiveID("companyId", r.CompanyID, "Company ID must be a positive number."),
		tag("registrationNumber", r.RegistrationNumber, "notblank", "Registration number is required."),
		tag("registrationNumber", r.RegistrationNumber, "max=20", "Registration number cannot be longer than 20 characters."),
		check("type", r.Type.Valid(), "Vehicle type is required."),
		tag("capacity", r.Capacity, "gte=0", "Capacity cannot be negative."),
	)
}

func VehicleUpdate(r *models.VehicleUpdate) error {
	return collect(
		positiveID("id", r.ID, "Vehicle ID must be a positive number."),
		tag("registrationNumber", r.RegistrationNumber, "notblank", "Registration number is required."),
		tag("registrationNumber", r.RegistrationNumber, "max=20", "Registration number cannot be longer than 20 characters."),
		check("type", r.Type.Valid(), "Vehicle type is required."),
		tag("capacity", r.Capacity, "gte=0", "Capacity cannot be negative."),
	)
}

func EmployeeCreate(r *models.EmployeeCreate) error {
	rules := []rule{
		positiveID("companyId", r.CompanyID, "Company ID must be a positive number."),
		tag("firstName", r.FirstName, "notblank", "First name is required."),
		tag("firstName", r.FirstName, "max=100", "First name must not exceed 100 characters."),
		tag("lastName", r.LastName, "notblank", "Last name is required."),
		tag("lastName", r.LastName, "max=100", "Last name must not exceed 100 characters."),
		qualification(r.Qualification),
	}
	return collect(append(rules, amount("salary", r.Salary, "Salary cannot be negative.")...)...)
}

func EmployeeUpdate(r *models.EmployeeUpdate) error {
	rules := []rule{
		positiveID("id", r.ID, "Employee ID must be a positive number."),
		tag("firstName", r.FirstName, "notblank", "First name is required."),
		tag("firstName", r.FirstName, "max=100", "First name must not exceed 100 characters."),
		tag("lastName", r.LastName, "notblank", "Last name is required."),
		tag("lastName", r.LastName, "max=100", "Last name must not exceed 100 characters."),
		qualification(r.Qualification),
	}
	return collect(append(rules, amount("salary", r.Salary, "Salary cannot be negative.")...)...)
}

func qualification(q models.Qualification) rule {
	return check("qualification", q.Valid(), "Qualification is required.")
}

// QualificationFilter validates a standalone qualification argument.
func QualificationFilter(q models.Qualification) error {
	return collect(qualification(q))
}

func TransportCreate(r *models.TransportCreate) error {
	rules := []rule{
		positiveID("companyId", r.CompanyID, "Company ID must be a positive number."),
		positiveID("clientId", r.ClientID, "Client ID must be a positive number."),
		positiveID("vehicleId", r.VehicleID, "Vehicle ID must be a positive number."),
		positiveID("driverId", r.DriverID, "Driver ID must be a positive number."),
	}
	rules = append(rules, transportFields(r.FromLocation, r.ToLocation, r.Departure.IsZero(), r.Arrival.IsZero(),
		r.CargoDescription, r.CargoWeight, r.Price)...)
	return collect(rules...)
}

func TransportUpdate(r *models.TransportUpdate) error {
	rules := []rule{
		positiveID("id", r.ID, "Transport ID must be a positive number."),
	}
	rules = append(rules, transportFields(r.FromLocation, r.ToLocation, r.Departure.IsZero(), r.Arrival.IsZero(),
		r.CargoDescription, r.CargoWeight, r.Price)...)
	return collect(rules...)
}

func transportFields(from, to string, noDeparture, noArrival bool, cargo string, weight decimal.NullDecimal, price money.Amount) []rule {
	rules := []rule{
		tag("fromLocation", from, "notblank", "Departure address is required."),
		tag("fromLocation", from, "max=255", "Departure address cannot be longer than 255 characters."),
		tag("toLocation", to, "notblank", "Arrival address is required."),
		tag("toLocation", to, "max=255", "Arrival address cannot be longer than 255 characters."),
		check("departure", !noDeparture, "Departure date and time are required."),
		check("arrival", !noArrival, "Arrival date and time are required."),
		tag("cargoDescription", cargo, "max=500", "Cargo description cannot be longer than 500 characters."),
		check("cargoWeight", !weight.Valid || !weight.Decimal.IsNegative(), "Cargo weight cannot be negative."),
		check("cargoWeight", !weight.Valid || weight.Decimal.Equal(weight.Decimal.Truncate(weightScale)),
			"Cargo weight cannot have more than 3 decimal places."),
		check("cargoWeight", !weight.Valid || weight.Decimal.Abs().LessThan(maxWeight),
			"Cargo weight cannot have more than 9 integer digits."),
	}
	return append(rules, amount("price", price, "Transport price cannot be negative.")...)
}

// Destination validates the argument of a destination search.
func Destination(dest string) error {
	return collect(tag("toLocation", dest, "notblank", "Destination cannot be empty."))
}

// RevenuePeriod rejects a period whose start is after its end.
func RevenuePeriod(r *models.RevenuePeriod) error {
	return collect(
		positiveID("companyId", r.CompanyID, "Company ID must be a positive number."),
		check("from", !r.From.IsZero(), "From date-time is required."),
		check("to", !r.To.IsZero(), "To date-time is required."),
		check("from", !r.From.After(r.To), "Start date/time cannot be after the end date/time."),
	)
}

func amount(field string, a money.Amount, negativeMessage string) []rule {
	return []rule{
		check(field, !a.IsNegative(), negativeMessage),
		check(field, a.HasValidScale(), "Amount cannot have more than 2 decimal places."),
		check(field, a.FitsMinorUnits(), "Amount is too large."),
	}
}
