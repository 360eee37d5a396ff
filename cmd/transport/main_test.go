package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/gartstein/transport/internal/transport/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	out, a, err := execute(t, args...)
	require.NoError(t, a.close())
	return out, err
}

// execute runs the root command and returns the app it populated, still
// open.
func execute(t *testing.T, args ...string) (string, *app, error) {
	t.Setenv("TRANSPORT_CONFIG", "")
	t.Setenv("TRANSPORT_DATABASE__DRIVER", "sqlite")
	t.Setenv("TRANSPORT_DATABASE__PATH", ":memory:")
	t.Setenv("TRANSPORT_LOG__LEVEL", "error")

	var (
		out bytes.Buffer
		a   app
	)
	cmd := newRootCmd(&a)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), &a, err
}

func TestReportTotalOnEmptyDatabase(t *testing.T) {
	out, err := run(t, "report", "total")
	require.NoError(t, err)
	assert.Equal(t, "Transports: 0\nRevenue:    0.00\n", out)
}

func TestListCompaniesOnEmptyDatabase(t *testing.T) {
	out, err := run(t, "list", "companies", "--by-name")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
}

func TestReportPeriodUnknownCompany(t *testing.T) {
	_, err := run(t, "report", "period", "--company", "3", "--from", "2024-01-01", "--to", "2024-01-31")
	assert.Error(t, err)
}

func TestCloseAfterFailedCommand(t *testing.T) {
	_, a, err := execute(t, "report", "period", "--company", "3", "--from", "2024-01-01", "--to", "2024-01-31")
	require.Error(t, err)
	require.NotNil(t, a.store, "the store should be open after the root command ran")

	store := a.store
	require.NoError(t, a.close())
	assert.Error(t, store.Ping(context.Background()), "the store should be closed after a failed command")
	assert.NoError(t, a.close(), "closing twice is harmless")
}

func TestTimeValue(t *testing.T) {
	var got time.Time
	v := timeValue{&got}

	require.NoError(t, v.Set("2024-02-29"))
	assert.True(t, got.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, v.Set("2024-02-29T10:00:00+02:00"))
	assert.True(t, got.Equal(time.Date(2024, time.February, 29, 8, 0, 0, 0, time.UTC)))

	assert.Error(t, v.Set("29/02/2024"))
}

func TestQualificationValue(t *testing.T) {
	var q models.Qualification
	v := qualificationValue{&q}

	require.NoError(t, v.Set("mechanic"))
	assert.Equal(t, models.Mechanic, q)
	assert.Error(t, v.Set("pilot"))
}
