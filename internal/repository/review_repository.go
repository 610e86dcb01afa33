package repository

import (
	"context"
	"database/sql"

	"github.com/glutenfreeeats/booking-api/internal/model"
)

// ReviewRepo provides persistence for restaurant reviews.  Verified
// reviews are created together with the restaurant rating aggregate in
// a single transaction.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning reviews and the restaurant aggregate.
func (r *ReviewRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a review within the scope of an existing
// transaction and populates the generated ID on the record.  The
// caller must commit or rollback the transaction.
func (r *ReviewRepo) CreateTx(ctx context.Context, tx *sql.Tx, rev *model.Review) error {
	const q = `INSERT INTO reviews (restaurant_id, booking_id, customer_id, customer_name, rating, comment, verified)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	var bookingID any
	if rev.BookingID != 0 {
		bookingID = rev.BookingID
	}
	res, err := tx.ExecContext(ctx, q, rev.RestaurantID, bookingID, rev.CustomerID,
		rev.CustomerName, rev.Rating, nullIfEmpty(rev.Comment), rev.Verified)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		`SELECT created_at FROM reviews WHERE id = ?`, rev.ID).Scan(&rev.CreatedAt)
}

// ExistsForBookingTx reports whether a review was already redeemed
// against the booking.  Used to keep one verified review per booking.
func (r *ReviewRepo) ExistsForBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (bool, error) {
	var count int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE booking_id = ?`, bookingID).Scan(&count)
	return count > 0, err
}

// ListByRestaurant returns reviews for a restaurant, newest first.
func (r *ReviewRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Review, error) {
	const q = `SELECT id, restaurant_id, booking_id, customer_id, customer_name, rating, comment, verified, created_at
	           FROM reviews WHERE restaurant_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		var (
			rev       model.Review
			bookingID sql.NullInt64
			comment   sql.NullString
		)
		if err := rows.Scan(&rev.ID, &rev.RestaurantID, &bookingID, &rev.CustomerID,
			&rev.CustomerName, &rev.Rating, &comment, &rev.Verified, &rev.CreatedAt); err != nil {
			return nil, err
		}
		if bookingID.Valid {
			rev.BookingID = uint64(bookingID.Int64)
		}
		rev.Comment = comment.String
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
