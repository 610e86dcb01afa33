package booking

import (
	"sort"
	"time"

	"github.com/glutenfreeeats/booking-api/internal/model"
)

// The derivations in this file are recomputed on every request rather
// than cached on the booking record.  The "today" boundary moves at
// midnight and the collection mutates on every owner action, so a
// cached field would go stale; recomputation is idempotent and
// side-effect free.

// NeedsAttendanceToday returns the bookings that still require an
// attendance decision for the calendar day of now: confirmed, no
// outcome recorded, and dated on the same local day.  Order of the
// input is preserved.
func NeedsAttendanceToday(bookings []model.Booking, now time.Time) []model.Booking {
	y, m, d := now.Date()
	out := make([]model.Booking, 0)
	for _, b := range bookings {
		if b.Status != model.StatusConfirmed || b.Attendance != model.AttendanceNone {
			continue
		}
		by, bm, bd := b.Date.In(now.Location()).Date()
		if by == y && bm == m && bd == d {
			out = append(out, b)
		}
	}
	return out
}

// NeedsAttendanceCheck returns confirmed bookings whose reservation
// time passed more than an hour ago without an attendance decision.
// This list drives the advisory "verify attendance" prompt on the
// dashboard; it never changes booking state by itself.
func NeedsAttendanceCheck(bookings []model.Booking, now time.Time) []model.Booking {
	cutoff := now.Add(-time.Hour)
	out := make([]model.Booking, 0)
	for _, b := range bookings {
		if b.Status != model.StatusConfirmed || b.Attendance != model.AttendanceNone {
			continue
		}
		if b.Date.Before(cutoff) {
			out = append(out, b)
		}
	}
	return out
}

// UnreadPending returns the pending bookings whose IDs are not in the
// seen set.  The seen set is owned by a Tracker; this function only
// reads it.
func UnreadPending(bookings []model.Booking, seen map[uint64]struct{}) []model.Booking {
	out := make([]model.Booking, 0)
	for _, b := range bookings {
		if b.Status != model.StatusPending {
			continue
		}
		if _, ok := seen[b.ID]; ok {
			continue
		}
		out = append(out, b)
	}
	return out
}

// ByDate groups bookings by their calendar day, returning the day keys
// in ascending order alongside the groups.  Within a day the input
// order (creation order) is preserved.
func ByDate(bookings []model.Booking) ([]string, map[string][]model.Booking) {
	groups := make(map[string][]model.Booking)
	for _, b := range bookings {
		key := b.Date.Format("2006-01-02")
		groups[key] = append(groups[key], b)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, groups
}
