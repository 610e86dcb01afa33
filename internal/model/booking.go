package model

import (
	"errors"
	"time"
)

// BookingStatus enumerates the lifecycle states of a booking.  A booking
// is created PENDING, moves to CONFIRMED or CANCELLED only from PENDING,
// and CANCELLED is terminal.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Attendance enumerates the post-visit outcome of a confirmed booking.
// AttendanceNone is the zero state; the outcome is set exactly once and
// only while the booking is CONFIRMED.
type Attendance string

const (
	AttendanceNone      Attendance = ""
	AttendanceConfirmed Attendance = "confirmed"
	AttendanceNoShow    Attendance = "no-show"
)

// ErrInvalidTransition is returned when a status or attendance change
// violates the booking lifecycle.  Handlers should translate this into
// an HTTP 409 response.
var ErrInvalidTransition = errors.New("invalid booking transition")

// Booking records a table reservation made by a customer at a
// restaurant.  Restaurant name and image are denormalized onto the
// record so booking lists render without extra lookups.
//
// Fields:
//  ID                   – primary key identifier.
//  RestaurantID         – restaurant being booked.
//  RestaurantName       – denormalized restaurant name.
//  RestaurantImage      – denormalized restaurant image URL.
//  CustomerID           – user who made the booking.
//  CustomerName         – display name captured at booking time.
//  Date                 – combined date+time of the reservation.
//  People               – number of guests, at least 1.
//  Notes                – optional free-text guest request.
//  Status               – lifecycle state (pending, confirmed, cancelled).
//  Attendance           – visit outcome, empty until decided.
//  BookingCode          – short code issued to the customer at creation.
//  RestaurantReviewCode – 4-digit code minted on attendance confirmation,
//                         redeemable for a verified review.
//  HasGuarantee         – whether a guarantee card was registered.
//  CreatedAt            – creation timestamp.
//  UpdatedAt            – last update timestamp.
type Booking struct {
	ID                   uint64        `json:"id"`
	RestaurantID         uint64        `json:"restaurant_id"`
	RestaurantName       string        `json:"restaurant_name"`
	RestaurantImage      string        `json:"restaurant_image,omitempty"`
	CustomerID           uint64        `json:"customer_id"`
	CustomerName         string        `json:"customer_name"`
	Date                 time.Time     `json:"date"`
	People               int           `json:"people"`
	Notes                string        `json:"notes,omitempty"`
	Status               BookingStatus `json:"status"`
	Attendance           Attendance    `json:"attendance,omitempty"`
	BookingCode          string        `json:"booking_code"`
	RestaurantReviewCode string        `json:"restaurant_review_code,omitempty"`
	HasGuarantee         bool          `json:"has_guarantee"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// CanTransition reports whether a booking may move from one status to
// another.  Only PENDING bookings can change state; CANCELLED and
// CONFIRMED are terminal for the status dimension.  A transition to the
// same status is not a transition.
func CanTransition(from, to BookingStatus) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusConfirmed || to == StatusCancelled
}

// ApplyStatus transitions the booking to the given status, returning
// ErrInvalidTransition when the lifecycle forbids it.
func (b *Booking) ApplyStatus(to BookingStatus) error {
	if !CanTransition(b.Status, to) {
		return ErrInvalidTransition
	}
	b.Status = to
	return nil
}

// ApplyAttendance records the visit outcome for a confirmed booking.
// The outcome is set exactly once: repeating the same decision is a
// no-op, switching to a different decision fails.  A booking that is
// not CONFIRMED (including cancelled ones) can never acquire an
// attendance value.
//
// The returned flag reports whether the outcome was newly recorded.
// An idempotent repeat returns false; callers answer those with the
// current state and must not persist anything or mint a new review
// code, so the code issued on the first confirmation stays stable.
func (b *Booking) ApplyAttendance(outcome Attendance) (bool, error) {
	if outcome != AttendanceConfirmed && outcome != AttendanceNoShow {
		return false, ErrInvalidTransition
	}
	if b.Status != StatusConfirmed {
		return false, ErrInvalidTransition
	}
	if b.Attendance != AttendanceNone {
		if b.Attendance == outcome {
			return false, nil // idempotent repeat
		}
		return false, ErrInvalidTransition
	}
	b.Attendance = outcome
	return true, nil
}

// MintsReviewCode reports whether the attendance decision just applied
// should mint a review code: only the first confirmed-attendance
// decision on a booking that does not carry one yet.  The recorded
// flag is ApplyAttendance's return value.
func (b *Booking) MintsReviewCode(recorded bool) bool {
	return recorded && b.Attendance == AttendanceConfirmed && b.RestaurantReviewCode == ""
}
