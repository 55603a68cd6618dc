package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/booking-api/internal/utils"
)

const testSecret = "unit-test-secret"

func doRequest(t *testing.T, e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newProtectedEcho(roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("", JWTAuth(testSecret), RequireRole(roles...))
	g.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get("user_id"), "role": c.Get("role")})
	})
	return e
}

func TestJWTAuthRejectsMissingOrBadToken(t *testing.T) {
	e := newProtectedEcho("OWNER")

	rec := doRequest(t, e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, e, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	e := newProtectedEcho("OWNER")

	at, err := utils.NewAccessToken(testSecret, 7, "OWNER", 5)
	require.NoError(t, err)

	rec := doRequest(t, e, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	e := newProtectedEcho("OWNER")

	at, err := utils.NewAccessToken("other-secret", 7, "OWNER", 5)
	require.NoError(t, err)

	rec := doRequest(t, e, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleEnforcesAllowedSet(t *testing.T) {
	e := newProtectedEcho("MANAGER")

	at, err := utils.NewAccessToken(testSecret, 7, "CUSTOMER", 5)
	require.NoError(t, err)
	rec := doRequest(t, e, "Bearer "+at.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	at, err = utils.NewAccessToken(testSecret, 7, "MANAGER", 5)
	require.NoError(t, err)
	rec = doRequest(t, e, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
