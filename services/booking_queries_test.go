package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-booking/models"
)

func TestGetBookingByToken(t *testing.T) {
	f := newFixture(t, 4)
	b, err := f.bookings.CreateBooking(guestInput(tuesday, "19:00", 2), false)
	require.NoError(t, err)

	got, err := f.bookings.GetBookingByToken(b.ConfirmationToken)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, "Table 1", got.TableLabel())

	_, err = f.bookings.GetBooking(b.ID + 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingsByDate(t *testing.T) {
	f := newFixture(t, 4)
	late := f.seedBooking(t, tuesday, "20:00:00", 2, models.BookingStatusConfirmed, nil)
	early := f.seedBooking(t, tuesday, "12:00:00", 2, models.BookingStatusPending, nil)
	f.seedBooking(t, monday, "12:00:00", 2, models.BookingStatusPending, nil)

	bookings, err := f.bookings.BookingsByDate(tuesday)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, early.ID, bookings[0].ID)
	assert.Equal(t, late.ID, bookings[1].ID)
}

func TestSearchBookings(t *testing.T) {
	f := newFixture(t, 4)
	for i := 0; i < 5; i++ {
		f.seedBooking(t, tuesday, "19:00:00", 2, models.BookingStatusConfirmed, nil)
	}
	grace := f.seedBooking(t, monday, "19:00:00", 2, models.BookingStatusConfirmed, nil)
	require.NoError(t, f.db.Model(&grace).Updates(map[string]interface{}{"customer_name": "Grace Hopper", "email": "grace@navy.mil"}).Error)

	found, err := f.bookings.SearchBookings("hopper", 0, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, grace.ID, found[0].ID)

	found, err = f.bookings.SearchBookings("navy.mil", 10, 0)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	page, err := f.bookings.SearchBookings("", 4, 0)
	require.NoError(t, err)
	assert.Len(t, page, 4)
	assert.Equal(t, tuesday, page[0].Date, "newest date first")

	rest, err := f.bookings.SearchBookings("", 4, 4)
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}

func TestBookingStats(t *testing.T) {
	f := newFixture(t, 4)
	f.seedBooking(t, tuesday, "19:00:00", 2, models.BookingStatusConfirmed, nil)
	f.seedBooking(t, tuesday, "20:00:00", 4, models.BookingStatusConfirmed, nil)
	f.seedBooking(t, tuesday, "20:00:00", 3, models.BookingStatusCancelled, nil)
	f.seedBooking(t, saturday, "20:00:00", 8, models.BookingStatusConfirmed, nil)

	stats, err := f.bookings.BookingStats(monday, tuesday)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, models.BookingStatusCancelled, stats[0].Status)
	assert.Equal(t, int64(1), stats[0].Count)
	assert.Equal(t, models.BookingStatusConfirmed, stats[1].Status)
	assert.Equal(t, int64(2), stats[1].Count)
	assert.Equal(t, int64(6), stats[1].TotalGuests)
	assert.InDelta(t, 3.0, stats[1].AvgPartySize, 0.001)

	all, err := f.bookings.BookingStats("", "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), all[1].Count)
}

func TestDeleteBooking(t *testing.T) {
	f := newFixture(t, 4)
	b := f.seedBooking(t, tuesday, "19:00:00", 2, models.BookingStatusPending, nil)

	require.NoError(t, f.bookings.DeleteBooking(b.ID))
	assert.Contains(t, f.holds.cancelled, b.ID)
	assert.ErrorIs(t, f.bookings.DeleteBooking(b.ID), ErrNotFound)
}

func TestExportBookings(t *testing.T) {
	f := newFixture(t, 2, 4)
	table := f.tables[1].ID
	dinner := f.seedBooking(t, tuesday, "19:00:00", 4, models.BookingStatusConfirmed, &table)
	lunch := f.seedBooking(t, monday, "12:00:00", 2, models.BookingStatusCancelled, nil)
	f.seedBooking(t, saturday, "19:00:00", 2, models.BookingStatusConfirmed, nil)

	rows, err := f.bookings.ExportBookings(monday, tuesday, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, lunch.ID, rows[0].ID)
	assert.Equal(t, dinner.ID, rows[1].ID)
	assert.Equal(t, "Table 2", rows[1].TableLabel())

	rows, err = f.bookings.ExportBookings(monday, saturday, models.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExportBookingsRejectsBadFilters(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.bookings.ExportBookings("2030-13-01", "yesterday", "lost")
	require.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 3)
}
