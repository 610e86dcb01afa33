// This file defines repository methods for the restaurant catalogue.
// A Restaurant is the venue a booking points at; browse and search
// endpoints read from here and owners manage their own rows.  Only
// sanitized fields should be exposed in public API responses.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/glutenfreeeats/booking-api/internal/model"
)

// RestaurantRepo encapsulates all database queries related to
// restaurants.  It depends on a sql.DB connection configured at
// startup.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo constructs a RestaurantRepo with the provided DB
// handle.  This allows dependency injection of the database in tests
// and at startup.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

const restaurantCols = `id, owner_id, name, image, cuisine, address, gluten_free,
                        rating, review_count, created_at, updated_at`

func scanRestaurant(row interface{ Scan(...any) error }) (*model.Restaurant, error) {
	var (
		r       model.Restaurant
		image   sql.NullString
		cuisine sql.NullString
		address sql.NullString
	)
	err := row.Scan(&r.ID, &r.OwnerID, &r.Name, &image, &cuisine, &address,
		&r.GlutenFree, &r.Rating, &r.ReviewCount, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Image = image.String
	r.Cuisine = cuisine.String
	r.Address = address.String
	return &r, nil
}

// Create inserts a new restaurant.  On success the ID field is
// populated with the auto-generated value and the timestamps are read
// back so callers receive a fully populated record.
func (r *RestaurantRepo) Create(ctx context.Context, rst *model.Restaurant) error {
	const q = `INSERT INTO restaurants (owner_id, name, image, cuisine, address, gluten_free)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rst.OwnerID, rst.Name,
		nullIfEmpty(rst.Image), nullIfEmpty(rst.Cuisine), nullIfEmpty(rst.Address), rst.GlutenFree)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rst.ID = uint64(id)
	stored, err := r.GetByID(ctx, rst.ID)
	if err != nil {
		return err
	}
	*rst = *stored
	return nil
}

// GetByID fetches a restaurant regardless of owner.  It returns
// ErrRestaurantNotFound if no row is found.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (*model.Restaurant, error) {
	q := `SELECT ` + restaurantCols + ` FROM restaurants WHERE id = ?`
	rst, err := scanRestaurant(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return rst, nil
}

// GetByIDAndOwner fetches a restaurant only if it belongs to the given
// owner.  A missing or foreign row both report ErrRestaurantNotFound
// so the response does not leak which restaurants exist.
func (r *RestaurantRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Restaurant, error) {
	q := `SELECT ` + restaurantCols + ` FROM restaurants WHERE id = ? AND owner_id = ?`
	rst, err := scanRestaurant(r.db.QueryRowContext(ctx, q, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return rst, nil
}

// List returns all restaurants ordered by id for the public browse
// endpoint.
func (r *RestaurantRepo) List(ctx context.Context) ([]model.Restaurant, error) {
	q := `SELECT ` + restaurantCols + ` FROM restaurants ORDER BY id`
	return r.listQuery(ctx, q)
}

// ListByOwner returns the restaurants managed by a specific owner.
func (r *RestaurantRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Restaurant, error) {
	q := `SELECT ` + restaurantCols + ` FROM restaurants WHERE owner_id = ? ORDER BY id`
	return r.listQuery(ctx, q, ownerID)
}

// Search filters restaurants by a case-insensitive match on name or
// cuisine, optionally restricted to venues with a dedicated
// gluten-free menu.  An empty query with glutenFree unset degenerates
// to List.
func (r *RestaurantRepo) Search(ctx context.Context, query string, glutenFree *bool) ([]model.Restaurant, error) {
	q := `SELECT ` + restaurantCols + ` FROM restaurants`
	conds := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if s := strings.TrimSpace(query); s != "" {
		conds = append(conds, `(LOWER(name) LIKE ? OR LOWER(cuisine) LIKE ?)`)
		pat := "%" + strings.ToLower(s) + "%"
		args = append(args, pat, pat)
	}
	if glutenFree != nil {
		conds = append(conds, `gluten_free = ?`)
		args = append(args, *glutenFree)
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY rating DESC, id`
	return r.listQuery(ctx, q, args...)
}

// UpdateFields updates the mutable catalogue fields of a restaurant
// owned by the caller.  It returns ErrRestaurantNotFound when no row
// is affected (missing or not owned).
func (r *RestaurantRepo) UpdateFields(ctx context.Context, id, ownerID uint64, name, image, cuisine, address string, glutenFree bool) error {
	const q = `UPDATE restaurants SET name = ?, image = ?, cuisine = ?, address = ?, gluten_free = ?
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, name,
		nullIfEmpty(image), nullIfEmpty(cuisine), nullIfEmpty(address), glutenFree, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "nothing changed" from "not found / not owned".
		if _, err := r.GetByIDAndOwner(ctx, id, ownerID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a restaurant owned by the caller.  Deleting a
// restaurant with existing bookings reports ErrConflict so history is
// never silently orphaned.
func (r *RestaurantRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE restaurant_id = ?`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM restaurants WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

// ApplyReviewTx folds a new rating into the aggregate inside the
// caller's transaction.  The stored average and count stay consistent
// with the reviews table because both writes share the transaction.
func (r *RestaurantRepo) ApplyReviewTx(ctx context.Context, tx *sql.Tx, id uint64, rating int) error {
	const q = `UPDATE restaurants
	           SET rating = (rating * review_count + ?) / (review_count + 1),
	               review_count = review_count + 1
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, rating, id)
	return err
}

func (r *RestaurantRepo) listQuery(ctx context.Context, q string, args ...any) ([]model.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Restaurant, 0)
	for rows.Next() {
		rst, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rst)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
