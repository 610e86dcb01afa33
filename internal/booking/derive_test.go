package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/glutenfreeeats/booking-api/internal/booking"
	"github.com/glutenfreeeats/booking-api/internal/model"
)

func mkBooking(id uint64, status model.BookingStatus, attendance model.Attendance, date time.Time) model.Booking {
	return model.Booking{ID: id, Status: status, Attendance: attendance, Date: date}
}

func TestNeedsAttendanceToday(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	confirmedToday := mkBooking(1, model.StatusConfirmed, model.AttendanceNone, now.Add(-2*time.Hour))
	confirmedYesterday := mkBooking(2, model.StatusConfirmed, model.AttendanceNone, now.AddDate(0, 0, -1))
	pendingToday := mkBooking(3, model.StatusPending, model.AttendanceNone, now.Add(time.Hour))
	decidedToday := mkBooking(4, model.StatusConfirmed, model.AttendanceConfirmed, now.Add(-time.Hour))
	cancelledToday := mkBooking(5, model.StatusCancelled, model.AttendanceNone, now)
	confirmedTonight := mkBooking(6, model.StatusConfirmed, model.AttendanceNone,
		time.Date(2026, 8, 28, 23, 30, 0, 0, time.UTC))

	got := booking.NeedsAttendanceToday([]model.Booking{
		confirmedToday, confirmedYesterday, pendingToday, decidedToday, cancelledToday, confirmedTonight,
	}, now)

	require.Len(t, got, 2)
	require.Equal(t, uint64(1), got[0].ID)
	require.Equal(t, uint64(6), got[1].ID)
}

func TestNeedsAttendanceToday_Empty(t *testing.T) {
	now := time.Now()
	got := booking.NeedsAttendanceToday(nil, now)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestNeedsAttendanceCheck(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	overdue := mkBooking(1, model.StatusConfirmed, model.AttendanceNone, now.Add(-90*time.Minute))
	recent := mkBooking(2, model.StatusConfirmed, model.AttendanceNone, now.Add(-30*time.Minute))
	upcoming := mkBooking(3, model.StatusConfirmed, model.AttendanceNone, now.Add(time.Hour))
	decided := mkBooking(4, model.StatusConfirmed, model.AttendanceNoShow, now.Add(-3*time.Hour))
	pendingOld := mkBooking(5, model.StatusPending, model.AttendanceNone, now.Add(-5*time.Hour))

	got := booking.NeedsAttendanceCheck([]model.Booking{overdue, recent, upcoming, decided, pendingOld}, now)

	require.Len(t, got, 1)
	require.Equal(t, uint64(1), got[0].ID)
}

func TestUnreadPending(t *testing.T) {
	bookings := []model.Booking{
		mkBooking(1, model.StatusPending, model.AttendanceNone, time.Now()),
		mkBooking(2, model.StatusPending, model.AttendanceNone, time.Now()),
		mkBooking(3, model.StatusConfirmed, model.AttendanceNone, time.Now()),
	}

	got := booking.UnreadPending(bookings, nil)
	require.Len(t, got, 2)

	seen := map[uint64]struct{}{1: {}}
	got = booking.UnreadPending(bookings, seen)
	require.Len(t, got, 1)
	require.Equal(t, uint64(2), got[0].ID)

	seen[2] = struct{}{}
	require.Empty(t, booking.UnreadPending(bookings, seen))
}

func TestByDate(t *testing.T) {
	d1 := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 9, 2, 12, 30, 0, 0, time.UTC)

	bookings := []model.Booking{
		mkBooking(1, model.StatusPending, model.AttendanceNone, d2),
		mkBooking(2, model.StatusPending, model.AttendanceNone, d1),
		mkBooking(3, model.StatusConfirmed, model.AttendanceNone, d1.Add(2*time.Hour)),
	}

	days, groups := booking.ByDate(bookings)
	require.Equal(t, []string{"2026-09-01", "2026-09-02"}, days)
	require.Len(t, groups["2026-09-01"], 2)
	require.Len(t, groups["2026-09-02"], 1)

	// Creation order preserved within a day.
	require.Equal(t, uint64(2), groups["2026-09-01"][0].ID)
	require.Equal(t, uint64(3), groups["2026-09-01"][1].ID)
}
