// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used by the publisher and the background consumer.
const (
	QueueBookingCreated    = "booking.created"
	QueueBookingAttendance = "booking.attendance"
)

// BookingCreatedEvent is published when a customer places a new booking.
// It carries enough context for downstream consumers to log, notify the
// restaurant, or feed analytics without querying the primary database.
type BookingCreatedEvent struct {
	EventID        string `json:"event_id"`
	BookingID      uint64 `json:"booking_id"`
	BookingCode    string `json:"booking_code"`
	RestaurantID   uint64 `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	CustomerID     uint64 `json:"customer_id"`
	CustomerName   string `json:"customer_name"`
	Date           string `json:"date"`
	People         int    `json:"people"`
	HasGuarantee   bool   `json:"has_guarantee"`
	CreatedAt      string `json:"created_at"`
}

// AttendanceConfirmedEvent is published when a restaurant records the
// visit outcome of a confirmed booking. ReviewCode is only set when the
// outcome is "confirmed" and a review code was minted for the visit.
type AttendanceConfirmedEvent struct {
	EventID        string `json:"event_id"`
	BookingID      uint64 `json:"booking_id"`
	BookingCode    string `json:"booking_code"`
	RestaurantID   uint64 `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	CustomerID     uint64 `json:"customer_id"`
	Outcome        string `json:"outcome"`
	ReviewCode     string `json:"review_code,omitempty"`
	DecidedAt      string `json:"decided_at"`
}
