package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/glutenfreeeats/booking-api/internal/model"
)

// BookingRepo is the single writer for booking records.  All mutation
// happens through Create and Update; no other component touches the
// bookings table.  Restaurant name and image are denormalized into
// results via a JOIN so list endpoints render without extra lookups.
// All timestamp fields are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// bookingCols is the projection shared by every booking query.
const bookingCols = `b.id, b.restaurant_id, rst.name, rst.image, b.customer_id, b.customer_name,
                     b.date, b.people, b.notes, b.status, b.attendance, b.booking_code,
                     b.restaurant_review_code, b.has_guarantee, b.created_at, b.updated_at`

const bookingFrom = ` FROM bookings b JOIN restaurants rst ON rst.id = b.restaurant_id `

// scanBooking reads one row of the shared projection into a model.Booking.
func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var (
		b          model.Booking
		image      sql.NullString
		notes      sql.NullString
		attendance sql.NullString
		reviewCode sql.NullString
	)
	err := row.Scan(
		&b.ID, &b.RestaurantID, &b.RestaurantName, &image, &b.CustomerID, &b.CustomerName,
		&b.Date, &b.People, &notes, &b.Status, &attendance, &b.BookingCode,
		&reviewCode, &b.HasGuarantee, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.RestaurantImage = image.String
	b.Notes = notes.String
	b.Attendance = model.Attendance(attendance.String)
	b.RestaurantReviewCode = reviewCode.String
	return &b, nil
}

// Create inserts a new booking.  The caller supplies every field except
// the generated ones; status and attendance must already hold their
// creation defaults (pending, none).  On success the record's ID and
// timestamps are populated from the stored row.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (restaurant_id, customer_id, customer_name, date, people, notes, status, booking_code, has_guarantee)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.RestaurantID, b.CustomerID, b.CustomerName, b.Date.UTC(), b.People,
		nullIfEmpty(b.Notes), string(b.Status), b.BookingCode, b.HasGuarantee)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the full row to populate timestamps and the joined
	// restaurant fields.
	stored, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *stored
	return nil
}

// GetByID returns a single booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	q := `SELECT ` + bookingCols + bookingFrom + `WHERE b.id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetByCode returns the booking carrying the given customer reference
// code, or ErrBookingNotFound.
func (r *BookingRepo) GetByCode(ctx context.Context, code string) (*model.Booking, error) {
	q := `SELECT ` + bookingCols + bookingFrom + `WHERE b.booking_code = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, strings.ToUpper(strings.TrimSpace(code))))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetForOwner returns a booking after verifying that the caller owns
// the restaurant it belongs to.  It returns ErrBookingNotFound when
// the booking does not exist and ErrForbidden when the restaurant is
// owned by someone else.
func (r *BookingRepo) GetForOwner(ctx context.Context, bookingID, ownerID uint64) (*model.Booking, error) {
	const checkQ = `SELECT rst.owner_id
	                FROM bookings b
	                JOIN restaurants rst ON rst.id = b.restaurant_id
	                WHERE b.id = ?`
	var actualOwnerID uint64
	if err := r.db.QueryRowContext(ctx, checkQ, bookingID).Scan(&actualOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if actualOwnerID != ownerID {
		return nil, ErrForbidden
	}
	return r.GetByID(ctx, bookingID)
}

// BookingUpdate is a partial set of fields to merge into an existing
// booking.  Nil pointers leave the stored value untouched.  Status and
// attendance changes must already have passed the model's transition
// guards; the repository persists, it does not re-validate.
type BookingUpdate struct {
	Status               *model.BookingStatus
	Attendance           *model.Attendance
	RestaurantReviewCode *string
	Notes                *string
	People               *int
	HasGuarantee         *bool
}

// Update merges the given fields into the booking and returns the
// updated record.  A missing id yields ErrBookingNotFound; a silent
// no-op would hide deleted bookings from dashboards.  An empty update
// is answered with the current record.
func (r *BookingRepo) Update(ctx context.Context, id uint64, u BookingUpdate) (*model.Booking, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*u.Status))
	}
	if u.Attendance != nil {
		sets = append(sets, "attendance = ?")
		if *u.Attendance == model.AttendanceNone {
			args = append(args, nil)
		} else {
			args = append(args, string(*u.Attendance))
		}
	}
	if u.RestaurantReviewCode != nil {
		sets = append(sets, "restaurant_review_code = ?")
		args = append(args, *u.RestaurantReviewCode)
	}
	if u.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, nullIfEmpty(*u.Notes))
	}
	if u.People != nil {
		sets = append(sets, "people = ?")
		args = append(args, *u.People)
	}
	if u.HasGuarantee != nil {
		sets = append(sets, "has_guarantee = ?")
		args = append(args, *u.HasGuarantee)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	// Existence check up front so a vanished id reports ErrBookingNotFound
	// instead of a zero-row UPDATE that looks like success.
	var exists uint64
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM bookings WHERE id = ?`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	q := `UPDATE bookings SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ListByRestaurant returns all bookings for a restaurant in creation
// order.  When none exist, an empty slice is returned.
func (r *BookingRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Booking, error) {
	q := `SELECT ` + bookingCols + bookingFrom + `WHERE b.restaurant_id = ? ORDER BY b.id`
	return r.list(ctx, q, restaurantID)
}

// ListByCustomer returns all bookings created by a customer, newest
// first, for the customer-facing bookings page.
func (r *BookingRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Booking, error) {
	q := `SELECT ` + bookingCols + bookingFrom + `WHERE b.customer_id = ? ORDER BY b.created_at DESC, b.id DESC`
	return r.list(ctx, q, customerID)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// nullIfEmpty maps "" to NULL so optional text columns stay NULL
// instead of accumulating empty strings.
func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
