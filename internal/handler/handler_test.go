package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sheet-music-catalog/internal/config"
	"github.com/iliyamo/sheet-music-catalog/internal/middleware"
	"github.com/iliyamo/sheet-music-catalog/internal/queue"
	"github.com/iliyamo/sheet-music-catalog/internal/repository"
	"github.com/iliyamo/sheet-music-catalog/internal/utils"
)

// These tests cover the validation and authorization paths that reject a
// request before any query is issued; the repositories are constructed over
// a nil connection and must never be reached.

const testSecret = "handler-test-secret"

func newTestServer() *echo.Echo {
	cfg := config.Config{JWTSecret: testSecret, TokenTTLHours: 24, BcryptCost: 4}
	users := repository.NewUserRepo(nil)
	records := repository.NewSheetMusicRepo(nil)

	a := NewAuthHandler(cfg, users)
	u := NewUserHandler(cfg, users)
	s := NewSheetMusicHandler(records, queue.NewPublisher(""))

	e := echo.New()
	api := e.Group("/api")
	api.POST("/register", a.Register)
	api.POST("/login", a.Login)
	auth := api.Group("", middleware.RequireAuth(testSecret))
	admin := auth.Group("/users", middleware.RequireAdmin())
	admin.PUT("/:id/role", u.UpdateUserRole)
	auth.GET("/sheet-music/:id", s.Get)
	auth.POST("/sheet-music", s.Create)
	return e
}

func token(t *testing.T, id uint64, role string) string {
	t.Helper()
	tok, err := utils.IssueToken(testSecret, utils.IdentityClaims{
		UserID: id, Username: "u", Email: "u@example.com", Role: role,
	}, time.Hour)
	require.NoError(t, err)
	return tok
}

func doJSON(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/register", `{"username":"a"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Username, email and password are required")
}

func TestLogin_MissingFields(t *testing.T) {
	t.Parallel()
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/login", `{"password":"x"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Username and password are required")
}

func TestCreateSheetMusic_MissingTitle(t *testing.T) {
	t.Parallel()
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/sheet-music", `{"composer":"Bach"}`, token(t, 7, "user"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Title is required")
}

func TestCreateSheetMusic_MalformedBody(t *testing.T) {
	t.Parallel()
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/sheet-music", `{"title":`, token(t, 7, "user"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid request body")
}

func TestCreateSheetMusic_RequiresAuth(t *testing.T) {
	t.Parallel()
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/sheet-music", `{"title":"Sonata"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Access token required")
}

func TestGetSheetMusic_NonNumericID(t *testing.T) {
	t.Parallel()
	e := newTestServer()

	rec := doJSON(e, http.MethodGet, "/api/sheet-music/abc", "", token(t, 7, "user"))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Not found")
}

func TestUpdateUserRole_InvalidRole(t *testing.T) {
	t.Parallel()
	e := newTestServer()

	rec := doJSON(e, http.MethodPut, "/api/users/2/role", `{"role":"superuser"}`, token(t, 1, "admin"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid role")
}

func TestUpdateUserRole_SelfChangeForbidden(t *testing.T) {
	t.Parallel()
	e := newTestServer()

	rec := doJSON(e, http.MethodPut, "/api/users/1/role", `{"role":"user"}`, token(t, 1, "admin"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Cannot change your own role")
}

func TestUpdateUserRole_NonAdminRejected(t *testing.T) {
	t.Parallel()
	e := newTestServer()

	rec := doJSON(e, http.MethodPut, "/api/users/2/role", `{"role":"admin"}`, token(t, 3, "user"))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "Admin access required")
}
