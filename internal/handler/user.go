package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sheet-music-catalog/internal/config"
	"github.com/iliyamo/sheet-music-catalog/internal/middleware"
	"github.com/iliyamo/sheet-music-catalog/internal/model"
	"github.com/iliyamo/sheet-music-catalog/internal/repository"
	"github.com/iliyamo/sheet-music-catalog/internal/utils"
)

// UserHandler bundles dependencies for profile and user-administration
// endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

// GetProfile returns the caller's own user record without the password
// hash. The row is re-read rather than echoed from the token so the client
// sees current data even when the token snapshot is stale.
func (h *UserHandler) GetProfile(c echo.Context) error {
	id := middleware.Identity(c)
	u, err := h.Users.GetByID(c.Request().Context(), id.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("profile: query user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	return c.JSON(http.StatusOK, u.Public())
}

type updateProfileReq struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateProfile patches full name, email and optionally the password.
// Changing the password requires proving knowledge of the current one.
// On success a fresh token reflecting the updated snapshot is issued; the
// previous token stays valid until its own expiry.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id := middleware.Identity(c)
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("profile update: query user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}

	hash := u.PasswordHash
	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Current password is required to set new password"})
		}
		if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Current password is incorrect"})
		}
		hash, err = utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
		if err != nil {
			c.Logger().Errorf("profile update: hash password: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
		}
	}

	if req.Email != "" && req.Email != u.Email {
		taken, err := h.Users.EmailTakenByOther(ctx, req.Email, u.ID)
		if err != nil {
			c.Logger().Errorf("profile update: check email: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
		}
		if taken {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already in use"})
		}
	}

	// Keep-or-replace: empty fields fall back to the stored values, the
	// whole row is written in one statement.
	fullName := u.FullName
	if req.FullName != "" {
		fullName = &req.FullName
	}
	email := u.Email
	if req.Email != "" {
		email = req.Email
	}
	if err := h.Users.UpdateProfile(ctx, u.ID, fullName, email, hash); err != nil {
		c.Logger().Errorf("profile update: write: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}

	updated, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		c.Logger().Errorf("profile update: reload user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	user := userPart{
		ID:       updated.ID,
		Username: updated.Username,
		Email:    updated.Email,
		FullName: updated.FullName,
		Role:     updated.Role,
	}
	token, err := issueToken(h.Cfg, user)
	if err != nil {
		c.Logger().Errorf("profile update: issue token: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"token":   token,
		"user":    user,
	})
}

// ListUsers returns every user, newest first. Admin only; the route applies
// RequireAdmin before this runs.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list users: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	return c.JSON(http.StatusOK, users)
}

type updateRoleReq struct {
	Role string `json:"role"`
}

// UpdateUserRole sets another user's role. Admins cannot change their own
// role, which keeps the last admin from locking themselves out.
func (h *UserHandler) UpdateUserRole(c echo.Context) error {
	id := middleware.Identity(c)
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user id"})
	}

	var req updateRoleReq
	if err := c.Bind(&req); err != nil || !model.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid role"})
	}
	if targetID == id.UserID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot change your own role"})
	}

	if err := h.Users.UpdateRole(c.Request().Context(), targetID, req.Role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("update role: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User role updated successfully"})
}
