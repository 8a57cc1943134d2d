package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireAdmin returns middleware that rejects any actor without the
// administrator role.  It assumes JWTAuth already ran and stored the
// actor in the context; a missing actor is treated as forbidden.
func RequireAdmin() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            actor, ok := ActorFrom(c)
            if !ok || !actor.IsAdmin() {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "se requiere rol de administrador"})
            }
            return next(c)
        }
    }
}
