package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/glutenfreeeats/booking-api/internal/handler"
	"github.com/glutenfreeeats/booking-api/internal/repository"
)

var restaurantColumns = []string{
	"id", "owner_id", "name", "image", "cuisine", "address", "gluten_free",
	"rating", "review_count", "created_at", "updated_at",
}

func updateRestaurantRequest(t *testing.T, h *handler.OwnerHandler) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/restaurants/7", strings.NewReader(`{"name":"Trattoria"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/restaurants/:id")
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set("user_id", uint64(7))
	require.NoError(t, h.UpdateRestaurant(c))
	return rec
}

func restaurantRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(restaurantColumns).
		AddRow(7, 7, "Trattoria", nil, nil, nil, true, 4.5, 10, now, now)
}

func TestUpdateRestaurant(t *testing.T) {
	t.Run("returns updated record", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM restaurants WHERE id = \? AND owner_id = \?`).
			WillReturnRows(restaurantRow())
		mock.ExpectExec(`UPDATE restaurants SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`FROM restaurants WHERE id = \?`).
			WillReturnRows(restaurantRow())

		h := &handler.OwnerHandler{RestaurantRepo: repository.NewRestaurantRepo(db)}
		rec := updateRestaurantRequest(t, h)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Trattoria")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("read-back failure reported as 500", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM restaurants WHERE id = \? AND owner_id = \?`).
			WillReturnRows(restaurantRow())
		mock.ExpectExec(`UPDATE restaurants SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`FROM restaurants WHERE id = \?`).
			WillReturnError(errors.New("connection lost"))

		h := &handler.OwnerHandler{RestaurantRepo: repository.NewRestaurantRepo(db)}
		rec := updateRestaurantRequest(t, h)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "error")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
