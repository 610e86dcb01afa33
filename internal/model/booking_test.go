package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glutenfreeeats/booking-api/internal/model"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from model.BookingStatus
		to   model.BookingStatus
		want bool
	}{
		{"pending to confirmed", model.StatusPending, model.StatusConfirmed, true},
		{"pending to cancelled", model.StatusPending, model.StatusCancelled, true},
		{"pending to pending", model.StatusPending, model.StatusPending, false},
		{"confirmed to cancelled", model.StatusConfirmed, model.StatusCancelled, false},
		{"confirmed to pending", model.StatusConfirmed, model.StatusPending, false},
		{"cancelled to confirmed", model.StatusCancelled, model.StatusConfirmed, false},
		{"cancelled to pending", model.StatusCancelled, model.StatusPending, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, model.CanTransition(tc.from, tc.to))
		})
	}
}

func TestApplyStatus(t *testing.T) {
	b := model.Booking{Status: model.StatusPending}
	require.NoError(t, b.ApplyStatus(model.StatusConfirmed))
	require.Equal(t, model.StatusConfirmed, b.Status)

	// Confirmed is terminal for the status dimension.
	err := b.ApplyStatus(model.StatusCancelled)
	require.ErrorIs(t, err, model.ErrInvalidTransition)
	require.Equal(t, model.StatusConfirmed, b.Status)
}

func TestApplyAttendance(t *testing.T) {
	t.Run("requires confirmed booking", func(t *testing.T) {
		pending := model.Booking{Status: model.StatusPending}
		_, err := pending.ApplyAttendance(model.AttendanceConfirmed)
		require.ErrorIs(t, err, model.ErrInvalidTransition)

		cancelled := model.Booking{Status: model.StatusCancelled}
		_, err = cancelled.ApplyAttendance(model.AttendanceNoShow)
		require.ErrorIs(t, err, model.ErrInvalidTransition)
		require.Equal(t, model.AttendanceNone, cancelled.Attendance)
	})

	t.Run("records outcome once", func(t *testing.T) {
		b := model.Booking{Status: model.StatusConfirmed}
		recorded, err := b.ApplyAttendance(model.AttendanceConfirmed)
		require.NoError(t, err)
		require.True(t, recorded)
		require.Equal(t, model.AttendanceConfirmed, b.Attendance)

		// Same decision again is a no-op and reports nothing new
		// to persist.
		recorded, err = b.ApplyAttendance(model.AttendanceConfirmed)
		require.NoError(t, err)
		require.False(t, recorded)
		require.Equal(t, model.AttendanceConfirmed, b.Attendance)

		// Switching the decision is rejected.
		_, err = b.ApplyAttendance(model.AttendanceNoShow)
		require.ErrorIs(t, err, model.ErrInvalidTransition)
		require.Equal(t, model.AttendanceConfirmed, b.Attendance)
	})

	t.Run("no-show follows the same rules", func(t *testing.T) {
		b := model.Booking{Status: model.StatusConfirmed}
		recorded, err := b.ApplyAttendance(model.AttendanceNoShow)
		require.NoError(t, err)
		require.True(t, recorded)

		recorded, err = b.ApplyAttendance(model.AttendanceNoShow)
		require.NoError(t, err)
		require.False(t, recorded)

		_, err = b.ApplyAttendance(model.AttendanceConfirmed)
		require.ErrorIs(t, err, model.ErrInvalidTransition)
	})

	t.Run("rejects unknown outcomes", func(t *testing.T) {
		b := model.Booking{Status: model.StatusConfirmed}
		_, err := b.ApplyAttendance(model.AttendanceNone)
		require.ErrorIs(t, err, model.ErrInvalidTransition)
		_, err = b.ApplyAttendance(model.Attendance("late"))
		require.ErrorIs(t, err, model.ErrInvalidTransition)
	})
}

func TestMintsReviewCode(t *testing.T) {
	t.Run("first confirmation mints exactly once", func(t *testing.T) {
		b := model.Booking{Status: model.StatusConfirmed}
		recorded, err := b.ApplyAttendance(model.AttendanceConfirmed)
		require.NoError(t, err)
		require.True(t, b.MintsReviewCode(recorded))
		b.RestaurantReviewCode = "4821"

		// Repeating the decision must leave the issued code stable.
		recorded, err = b.ApplyAttendance(model.AttendanceConfirmed)
		require.NoError(t, err)
		require.False(t, b.MintsReviewCode(recorded))
		require.Equal(t, "4821", b.RestaurantReviewCode)
	})

	t.Run("no-show never mints", func(t *testing.T) {
		b := model.Booking{Status: model.StatusConfirmed}
		recorded, err := b.ApplyAttendance(model.AttendanceNoShow)
		require.NoError(t, err)
		require.True(t, recorded)
		require.False(t, b.MintsReviewCode(recorded))
	})

	t.Run("existing code is never replaced", func(t *testing.T) {
		b := model.Booking{Status: model.StatusConfirmed, RestaurantReviewCode: "1234"}
		recorded, err := b.ApplyAttendance(model.AttendanceConfirmed)
		require.NoError(t, err)
		require.True(t, recorded)
		require.False(t, b.MintsReviewCode(recorded))
	})
}
