package model

import "time"

// Restaurant represents a venue listed in the app.  Each restaurant
// belongs to one owner and may receive bookings and reviews.  The
// rating fields are aggregates maintained by the review repository.
//
// Fields:
//  ID           – primary key identifier.
//  OwnerID      – user ID of the restaurant owner.
//  Name         – display name of the restaurant.
//  Image        – cover image URL.
//  Cuisine      – cuisine label shown on cards (e.g. "Italiana").
//  Address      – street address.
//  GlutenFree   – whether the venue offers a dedicated gluten-free menu.
//  Rating       – average review rating, 0 when unreviewed.
//  ReviewCount  – number of reviews behind the average.
//  CreatedAt    – timestamp when the restaurant was created.
//  UpdatedAt    – timestamp of last update.
type Restaurant struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"-"`
	Name        string    `json:"name"`
	Image       string    `json:"image,omitempty"`
	Cuisine     string    `json:"cuisine,omitempty"`
	Address     string    `json:"address,omitempty"`
	GlutenFree  bool      `json:"gluten_free"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
