package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/imontoya/soporte-tickets/internal/handler"
	"github.com/imontoya/soporte-tickets/internal/middleware"
	"github.com/imontoya/soporte-tickets/internal/repository"
)

// Handlers groups every handler the router wires up.  All of them are
// constructed once at startup with their dependencies injected; nothing
// here reaches for globals.
type Handlers struct {
	Auth          *handler.AuthHandler
	Tickets       *handler.TicketHandler
	Interacciones *handler.InteraccionHandler
	Admin         *handler.AdminHandler
	Health        *handler.HealthHandler
}

// Register wires all routes onto the Echo instance.  Three tiers:
// public (health, registro, login), authenticated (everything under
// /tickets plus /auth/me) and admin (the /admin group, which stacks
// RequireAdmin on top of the auth middleware).
func Register(e *echo.Echo, h Handlers, jwtSecret string, users *repository.UserRepo) {
	e.GET("/health", h.Health.Health)

	// Unauthenticated entry points.
	a := e.Group("/auth")
	a.POST("/registro", h.Auth.Registro)
	a.POST("/login", h.Auth.Login)

	authn := middleware.JWTAuth(jwtSecret, users)

	e.GET("/auth/me", h.Auth.Me, authn)

	// Ticket CRUD and interaction threads, all behind authentication.
	// Row-level authorization happens in the repositories and handlers.
	t := e.Group("/tickets", authn)
	t.POST("", h.Tickets.Crear)
	t.GET("", h.Tickets.Listar)
	t.GET("/:id", h.Tickets.Obtener)
	t.PUT("/:id", h.Tickets.Actualizar)
	t.POST("/:id/interacciones", h.Interacciones.Crear)
	t.GET("/:id/interacciones", h.Interacciones.Listar)

	// Administrator surface.
	admin := e.Group("/admin", authn, middleware.RequireAdmin())
	admin.GET("/estadisticas", h.Admin.Estadisticas)
	admin.GET("/usuarios", h.Admin.Usuarios)
}
