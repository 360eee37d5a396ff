package db

import (
	"context"
	"testing"

	e "github.com/gartstein/transport/internal/transport/errors"
	"github.com/gartstein/transport/internal/transport/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFindCompany(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.company(t, "Speedy Logistics")
	assert.Positive(t, created.ID, "the store should assign an id")

	found, err := f.companies.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found, "FindByID should return the created company")
	assert.Equal(t, "Speedy Logistics", found.Name)
	assert.Equal(t, "Main St 1", found.Address)
}

func TestFindCompanyMissing(t *testing.T) {
	f := newFixture(t)

	found, err := f.companies.FindByID(context.Background(), 42)
	assert.NoError(t, err, "a missing row is not an error")
	assert.Nil(t, found)
}

func TestCreateCompanyDuplicateName(t *testing.T) {
	f := newFixture(t)
	f.company(t, "Twin")

	_, err := f.companies.Create(context.Background(), &models.Company{Name: "Twin"})
	assert.ErrorIs(t, err, e.ErrDuplicate, "the unique index should reject a second company with the same name")
}

func TestUpdateCompany(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "Old Name")

	updated, err := f.companies.Update(ctx, &models.Company{ID: c.ID, Name: "New Name", Address: ""})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Empty(t, updated.Address, "an empty address should overwrite the old one")

	_, err = f.companies.Update(ctx, &models.Company{ID: c.ID + 100, Name: "Ghost"})
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestFindAllOrderByNameIsCaseSensitive(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"beta", "Alpha", "alpha", "Beta"} {
		f.company(t, name)
	}

	companies, err := f.companies.FindAllOrderByName(context.Background())
	require.NoError(t, err)

	var names []string
	for _, c := range companies {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Alpha", "Beta", "alpha", "beta"}, names)
}

func TestFindAllWithRevenue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	busy := f.crew(t, "Busy")
	same := f.crew(t, "Also Busy")
	f.company(t, "Idle")

	f.transport(t, busy, busy.driver, "Varna", "100.10", true, day(1))
	f.transport(t, busy, busy.driver, "Varna", "0.20", false, day(2))
	f.transport(t, same, same.driver, "Ruse", "100.30", false, day(3))

	rows, err := f.companies.FindAllWithRevenue(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3, "companies without transports are listed too")

	assert.Equal(t, "Also Busy", rows[0].Company.Name, "equal revenue is ordered by name")
	assert.Equal(t, "100.30", rows[0].Revenue.String())
	assert.Equal(t, "Busy", rows[1].Company.Name)
	assert.Equal(t, "100.30", rows[1].Revenue.String(), "revenue includes unpaid transports")
	assert.Equal(t, "Idle", rows[2].Company.Name)
	assert.True(t, rows[2].Revenue.IsZero())
}

func TestDeleteCompany(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "Short Lived")

	require.NoError(t, f.companies.DeleteByID(ctx, c.ID))
	found, err := f.companies.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, found, "deleted company should be gone")

	assert.NoError(t, f.companies.DeleteByID(ctx, c.ID), "deleting twice is not an error")
	assert.NoError(t, f.companies.DeleteByID(ctx, 9999), "deleting an unknown id is not an error")
}

func TestDeleteCompanyStillReferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "Owner")
	f.client(t, c.ID)

	err := f.companies.DeleteByID(ctx, c.ID)
	var constraint *e.ConstraintError
	require.ErrorAs(t, err, &constraint)
	assert.Equal(t, e.InUse, constraint.Kind)
	assert.Equal(t, "clients.company_id", constraint.Constraint)

	found, err := f.companies.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.NotNil(t, found, "a referenced company must survive the failed delete")
}
