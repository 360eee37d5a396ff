package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gartstein/transport/internal/pkg/money"
	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedFields(t *testing.T, err error) []string {
	t.Helper()
	var ve *e.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	fields := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	return fields
}

func TestCompanyCreate(t *testing.T) {
	tests := []struct {
		name       string
		input      models.CompanyCreate
		wantFields []string
	}{
		{
			name:  "valid",
			input: models.CompanyCreate{Name: "Acme Logistics", Address: "Sofia"},
		},
		{
			name:       "blank name",
			input:      models.CompanyCreate{Name: "   "},
			wantFields: []string{"name"},
		},
		{
			name:       "name too long",
			input:      models.CompanyCreate{Name: strings.Repeat("a", 101)},
			wantFields: []string{"name"},
		},
		{
			name:  "cyrillic name counts runes",
			input: models.CompanyCreate{Name: strings.Repeat("ж", 100)},
		},
		{
			name:       "address too long",
			input:      models.CompanyCreate{Name: "Acme", Address: strings.Repeat("x", 256)},
			wantFields: []string{"address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CompanyCreate(&tt.input)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, e.ErrInvalidInput)
			assert.Equal(t, tt.wantFields, failedFields(t, err))
		})
	}
}

func TestCompanyUpdateRequiresID(t *testing.T) {
	err := CompanyUpdate(&models.CompanyUpdate{Name: "Acme"})
	assert.Equal(t, []string{"id"}, failedFields(t, err))
}

func TestClientRequests(t *testing.T) {
	assert.NoError(t, ClientCreate(&models.ClientCreate{CompanyID: 1, Name: "Client A"}))

	err := ClientCreate(&models.ClientCreate{Name: ""})
	assert.Equal(t, []string{"companyId", "name"}, failedFields(t, err))

	err = ClientUpdate(&models.ClientUpdate{ID: 3, Name: "B", ContactDetails: strings.Repeat("c", 300)})
	assert.Equal(t, []string{"contactDetails"}, failedFields(t, err))
}

func TestVehicleRequests(t *testing.T) {
	valid := models.VehicleCreate{CompanyID: 1, RegistrationNumber: "CA1234AB", Type: models.Truck, Capacity: 20}
	assert.NoError(t, VehicleCreate(&valid))

	err := VehicleCreate(&models.VehicleCreate{CompanyID: 1, RegistrationNumber: "CA1234AB-TOO-LONG-NUMBER", Type: "BOAT", Capacity: -1})
	assert.Equal(t, []string{"registrationNumber", "type", "capacity"}, failedFields(t, err))

	err = VehicleUpdate(&models.VehicleUpdate{ID: 0, RegistrationNumber: "X", Type: models.Van})
	assert.Equal(t, []string{"id"}, failedFields(t, err))
}

func TestEmployeeRequests(t *testing.T) {
	valid := models.EmployeeCreate{
		CompanyID:     1,
		FirstName:     "Ivan",
		LastName:      "Ivanov",
		Qualification: models.DriverStandard,
		Salary:        money.MustParse("2500.00"),
	}
	assert.NoError(t, EmployeeCreate(&valid))

	invalid := valid
	invalid.Qualification = "PILOT"
	invalid.Salary = money.MustParse("-1")
	assert.Equal(t, []string{"qualification", "salary"}, failedFields(t, EmployeeCreate(&invalid)))

	fractional := valid
	fractional.Salary = money.MustParse("100.005")
	assert.Equal(t, []string{"salary"}, failedFields(t, EmployeeCreate(&fractional)))

	assert.NoError(t, QualificationFilter(models.Mechanic))
	assert.Error(t, QualificationFilter(""))
}

func TestTransportCreate(t *testing.T) {
	departure := time.Date(2020, 1, 10, 10, 0, 0, 0, time.UTC)
	valid := models.TransportCreate{
		CompanyID:    1,
		ClientID:     2,
		VehicleID:    3,
		DriverID:     4,
		FromLocation: "Sofia",
		ToLocation:   "Plovdiv",
		Departure:    departure,
		// arrival before departure is accepted
		Arrival: departure.Add(-time.Hour),
		Price:   money.MustParse("100.00"),
	}
	assert.NoError(t, TransportCreate(&valid))

	invalid := models.TransportCreate{
		CargoWeight:      decimal.NewNullDecimal(decimal.NewFromInt(-5)),
		CargoDescription: strings.Repeat("d", 501),
		Price:            money.MustParse("-0.01"),
	}
	assert.Equal(t, []string{
		"companyId", "clientId", "vehicleId", "driverId",
		"fromLocation", "toLocation", "departure", "arrival",
		"cargoDescription", "cargoWeight", "price",
	}, failedFields(t, TransportCreate(&invalid)))
}

func TestTransportStorableRanges(t *testing.T) {
	departure := time.Date(2020, 1, 10, 10, 0, 0, 0, time.UTC)
	base := models.TransportCreate{
		CompanyID:    1,
		ClientID:     2,
		VehicleID:    3,
		DriverID:     4,
		FromLocation: "Sofia",
		ToLocation:   "Plovdiv",
		Departure:    departure,
		Arrival:      departure.Add(time.Hour),
		Price:        money.MustParse("100.00"),
	}

	tests := []struct {
		name   string
		modify func(*models.TransportCreate)
		want   []string
	}{
		{
			name:   "weight with three decimals",
			modify: func(r *models.TransportCreate) { r.CargoWeight = decimal.NewNullDecimal(decimal.RequireFromString("999999999.999")) },
		},
		{
			name:   "weight with four decimals",
			modify: func(r *models.TransportCreate) { r.CargoWeight = decimal.NewNullDecimal(decimal.RequireFromString("1.23456")) },
			want:   []string{"cargoWeight"},
		},
		{
			name:   "weight with ten integer digits",
			modify: func(r *models.TransportCreate) { r.CargoWeight = decimal.NewNullDecimal(decimal.RequireFromString("1000000000")) },
			want:   []string{"cargoWeight"},
		},
		{
			name:   "largest storable price",
			modify: func(r *models.TransportCreate) { r.Price = money.MustParse("92233720368547758.07") },
		},
		{
			name:   "price beyond int64 minor units",
			modify: func(r *models.TransportCreate) { r.Price = money.MustParse("184467440737095516.17") },
			want:   []string{"price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.modify(&req)
			err := TransportCreate(&req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, failedFields(t, err))
		})
	}

	salary := models.EmployeeCreate{
		CompanyID:     1,
		FirstName:     "Ivan",
		LastName:      "Petrov",
		Qualification: models.Office,
		Salary:        money.MustParse("100000000000000000"),
	}
	assert.Equal(t, []string{"salary"}, failedFields(t, EmployeeCreate(&salary)))
}

func TestTransportUpdate(t *testing.T) {
	now := time.Now()
	err := TransportUpdate(&models.TransportUpdate{
		ID:           9,
		FromLocation: "Sofia",
		ToLocation:   " ",
		Departure:    now,
		Arrival:      now,
	})
	assert.Equal(t, []string{"toLocation"}, failedFields(t, err))
}

func TestDestination(t *testing.T) {
	assert.NoError(t, Destination("  Plovdiv "))
	assert.Error(t, Destination("  "))
}

func TestRevenuePeriod(t *testing.T) {
	from := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2020, 3, 31, 23, 59, 0, 0, time.UTC)

	assert.NoError(t, RevenuePeriod(&models.RevenuePeriod{CompanyID: 1, From: from, To: to}))
	assert.NoError(t, RevenuePeriod(&models.RevenuePeriod{CompanyID: 1, From: from, To: from}))

	err := RevenuePeriod(&models.RevenuePeriod{CompanyID: 1, From: to, To: from})
	assert.Equal(t, []string{"from"}, failedFields(t, err))
}
