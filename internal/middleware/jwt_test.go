package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sheet-music-catalog/internal/utils"
)

const testSecret = "test-secret"

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *utils.IdentityClaims) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *utils.IdentityClaims
	h := RequireAuth(testSecret)(func(c echo.Context) error {
		seen = Identity(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, seen
}

func TestRequireAuth_MissingToken(t *testing.T) {
	t.Parallel()

	rec, seen := runAuth(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Access token required")
	require.Nil(t, seen)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	rec, seen := runAuth(t, "Bearer garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid or expired token")
	require.Nil(t, seen)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	tok, err := utils.IssueToken(testSecret, utils.IdentityClaims{UserID: 3, Role: "user"}, -time.Minute)
	require.NoError(t, err)

	rec, _ := runAuth(t, "Bearer "+tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tok, err := utils.IssueToken(testSecret, utils.IdentityClaims{
		UserID: 3, Username: "bob", Email: "bob@example.com", Role: "user",
	}, time.Hour)
	require.NoError(t, err)

	rec, seen := runAuth(t, "Bearer "+tok)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	require.Equal(t, uint64(3), seen.UserID)
	require.Equal(t, "bob", seen.Username)
}
