package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sheet-music-catalog/internal/utils"
)

func runAdmin(t *testing.T, id *utils.IdentityClaims) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(identityKey, id)
	}
	h := RequireAdmin()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	t.Parallel()

	rec := runAdmin(t, &utils.IdentityClaims{UserID: 1, Role: "admin"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_RejectsUser(t *testing.T) {
	t.Parallel()

	rec := runAdmin(t, &utils.IdentityClaims{UserID: 2, Role: "user"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "Admin access required")
}

func TestRequireAdmin_RejectsMissingIdentity(t *testing.T) {
	t.Parallel()

	rec := runAdmin(t, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
