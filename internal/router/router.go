// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sheet-music-catalog/internal/handler"
	"github.com/iliyamo/sheet-music-catalog/internal/middleware"
)

// RegisterRoutes registers the full API surface on the provided Echo
// instance. Register and login are open; every other /api route requires a
// valid session token, and user administration additionally requires the
// admin role.
func RegisterRoutes(e *echo.Echo, jwtSecret string, a *handler.AuthHandler, u *handler.UserHandler, s *handler.SheetMusicHandler) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	api.POST("/register", a.Register)
	api.POST("/login", a.Login)

	auth := api.Group("", middleware.RequireAuth(jwtSecret))
	auth.GET("/profile", u.GetProfile)
	auth.PUT("/profile", u.UpdateProfile)

	admin := auth.Group("/users", middleware.RequireAdmin())
	admin.GET("", u.ListUsers)
	admin.PUT("/:id/role", u.UpdateUserRole)

	auth.GET("/sheet-music", s.List)
	auth.GET("/sheet-music/:id", s.Get)
	auth.POST("/sheet-music", s.Create)
	auth.PUT("/sheet-music/:id", s.Update)
	auth.DELETE("/sheet-music/:id", s.Delete)
}
