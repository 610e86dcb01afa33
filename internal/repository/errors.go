// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to act on a resource owned by someone else, while
// ErrBookingNotFound signals that an update or lookup referenced a
// booking that does not exist.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as reviewing a booking that already has
// a review. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrBookingNotFound is returned when a booking cannot be found.
// Updates against a missing id report this explicitly rather than
// no-opping, so dashboards learn the record is gone.
var ErrBookingNotFound = errors.New("booking not found")

// ErrRestaurantNotFound is returned when a restaurant cannot be found
// or is owned by a different user than expected.
var ErrRestaurantNotFound = errors.New("restaurant not found")
