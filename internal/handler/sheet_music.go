package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sheet-music-catalog/internal/middleware"
	"github.com/iliyamo/sheet-music-catalog/internal/model"
	"github.com/iliyamo/sheet-music-catalog/internal/queue"
	"github.com/iliyamo/sheet-music-catalog/internal/repository"
)

// SheetMusicHandler bundles dependencies for the record CRUD endpoints.
// Events is optional; a nil-URL publisher swallows everything.
type SheetMusicHandler struct {
	Records *repository.SheetMusicRepo
	Events  *queue.Publisher
}

func NewSheetMusicHandler(records *repository.SheetMusicRepo, events *queue.Publisher) *SheetMusicHandler {
	return &SheetMusicHandler{Records: records, Events: events}
}

// publish emits an audit event for a record mutation. Failures are logged
// inside the publisher and never affect the response.
func (h *SheetMusicHandler) publish(c echo.Context, action string, recordID uint64, title string) {
	id := middleware.Identity(c)
	_ = h.Events.Publish(c.Request().Context(), queue.RecordEvent{
		Action:     action,
		RecordID:   recordID,
		Title:      title,
		UserID:     id.UserID,
		Username:   id.Username,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// List returns catalog records, optionally filtered by a q substring over
// title/composer/instrumentation and an exact difficulty match. Listing is
// not restricted to the caller's own records.
func (h *SheetMusicHandler) List(c echo.Context) error {
	f := repository.ListFilter{
		Query:      c.QueryParam("q"),
		Difficulty: c.QueryParam("difficulty"),
	}
	items, err := h.Records.List(c.Request().Context(), f)
	if err != nil {
		c.Logger().Errorf("list sheet music: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns a single record. Non-admins only reach their own records; a
// foreign record and a nonexistent one are both 404.
func (h *SheetMusicHandler) Get(c echo.Context) error {
	id := middleware.Identity(c)
	recID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
	}
	rec, err := h.Records.GetForUser(c.Request().Context(), recID, id.UserID, id.IsAdmin())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		c.Logger().Errorf("get sheet music: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	return c.JSON(http.StatusOK, rec)
}

// Create stores a new record owned by the caller. Title is the only
// required field; everything else passes through as given.
func (h *SheetMusicHandler) Create(c echo.Context) error {
	id := middleware.Identity(c)
	var f model.SheetMusicFields
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if f.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Title is required"})
	}

	rec, err := h.Records.Create(c.Request().Context(), f, id.UserID)
	if err != nil {
		c.Logger().Errorf("create sheet music: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	h.publish(c, queue.ActionCreated, rec.ID, rec.Title)
	return c.JSON(http.StatusCreated, rec)
}

// Update replaces a record's fields. The ownership gate runs as a
// precondition read in the repository; a failed gate is indistinguishable
// from a missing record.
func (h *SheetMusicHandler) Update(c echo.Context) error {
	id := middleware.Identity(c)
	recID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found or no permission"})
	}
	var f model.SheetMusicFields
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	rec, err := h.Records.Update(c.Request().Context(), recID, id.UserID, id.IsAdmin(), f)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found or no permission"})
		}
		c.Logger().Errorf("update sheet music: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	h.publish(c, queue.ActionUpdated, rec.ID, rec.Title)
	return c.JSON(http.StatusOK, rec)
}

// Delete removes a record, owner-scoped in a single statement.
func (h *SheetMusicHandler) Delete(c echo.Context) error {
	id := middleware.Identity(c)
	recID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found or no permission"})
	}
	if err := h.Records.Delete(c.Request().Context(), recID, id.UserID, id.IsAdmin()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found or no permission"})
		}
		c.Logger().Errorf("delete sheet music: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	h.publish(c, queue.ActionDeleted, recID, "")
	return c.JSON(http.StatusOK, echo.Map{"message": "Deleted successfully"})
}
