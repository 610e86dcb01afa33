package model

import "time"

// Review is a customer review of a restaurant.  A review is marked
// verified when it was submitted with the review code minted on
// attendance confirmation of the matching booking.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – reviewed restaurant.
//  BookingID    – booking the review was redeemed against (0 when none).
//  CustomerID   – author of the review.
//  CustomerName – display name captured at submission time.
//  Rating       – star rating from 1 to 5.
//  Comment      – optional free-text comment.
//  Verified     – true when the review code matched the booking.
//  CreatedAt    – submission timestamp.
type Review struct {
	ID           uint64    `json:"id"`
	RestaurantID uint64    `json:"restaurant_id"`
	BookingID    uint64    `json:"booking_id,omitempty"`
	CustomerID   uint64    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}
