package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-booking/models"
)

func TestAssignTableBestFit(t *testing.T) {
	f := newFixture(t, 4, 2, 6, 2)
	assigner := NewTableAssigner(f.db)

	assign := func(party int) *models.Table {
		table, err := assigner.AssignTable(tuesday, dinnerAt7, party)
		require.NoError(t, err)
		return table
	}

	table := assign(2)
	require.NotNil(t, table)
	assert.Equal(t, f.tables[1].ID, table.ID, "smallest capacity, lowest id")

	f.seedBooking(t, tuesday, dinnerAt7, 2, models.BookingStatusConfirmed, uintPtr(f.tables[1].ID))
	assert.Equal(t, f.tables[3].ID, assign(2).ID)

	f.seedBooking(t, tuesday, dinnerAt7, 2, models.BookingStatusPending, uintPtr(f.tables[3].ID))
	assert.Equal(t, f.tables[0].ID, assign(2).ID, "next smallest capacity")

	assert.Equal(t, f.tables[2].ID, assign(5).ID)
	assert.Nil(t, assign(7))

	f.deactivate(t, f.tables[2])
	assert.Nil(t, assign(5))
}

func TestAssignTableOtherSlotsDoNotInterfere(t *testing.T) {
	f := newFixture(t, 2)
	f.seedBooking(t, tuesday, "20:00:00", 2, models.BookingStatusConfirmed, uintPtr(f.tables[0].ID))
	f.seedBooking(t, monday, dinnerAt7, 2, models.BookingStatusConfirmed, uintPtr(f.tables[0].ID))

	table, err := NewTableAssigner(f.db).AssignTable(tuesday, dinnerAt7, 2)
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, f.tables[0].ID, table.ID)
}
