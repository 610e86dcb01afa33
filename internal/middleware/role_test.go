package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/glutenfreeeats/booking-api/internal/middleware"
	"github.com/glutenfreeeats/booking-api/internal/utils"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role any) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		h := middleware.RequireRole("OWNER")(okHandler)
		require.NoError(t, h(c))
		return rec
	}

	require.Equal(t, http.StatusOK, run("OWNER").Code)
	require.Equal(t, http.StatusForbidden, run("CUSTOMER").Code)
	require.Equal(t, http.StatusForbidden, run(nil).Code)
	require.Equal(t, http.StatusForbidden, run(42).Code)
}

func TestJWTAuth(t *testing.T) {
	const secret = "test-secret"
	e := echo.New()

	protected := middleware.JWTAuth(secret)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	})

	t.Run("valid token passes claims through", func(t *testing.T) {
		at, err := utils.NewAccessToken(secret, 7, "CUSTOMER", 15)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+at.Token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, protected(c))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"role":"CUSTOMER"`)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, protected(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with other secret rejected", func(t *testing.T) {
		at, err := utils.NewAccessToken("other-secret", 7, "CUSTOMER", 15)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+at.Token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, protected(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
