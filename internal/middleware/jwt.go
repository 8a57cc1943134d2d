package middleware // middleware contains reusable HTTP middleware functions

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/imontoya/soporte-tickets/internal/auth"
    "github.com/imontoya/soporte-tickets/internal/model"
    "github.com/imontoya/soporte-tickets/internal/repository"
    "github.com/imontoya/soporte-tickets/internal/utils"
)

// ActorKey is the echo context key under which the verified actor is
// stored for handlers.
const ActorKey = "actor"

// UserLoader is the slice of the user repository the middleware needs:
// a by-id lookup against the credential store.
type UserLoader interface {
    GetByID(ctx context.Context, id uint64) (model.Usuario, error)
}

// JWTAuth returns middleware that validates a Bearer access token and
// then looks the user up in the credential store on every request.  The
// token alone is not enough: the account must still exist and be
// active.  That lookup is what lets a deactivation take effect before
// the token's natural expiry, since tokens carry no revocation
// mechanism.  On success an auth.Actor is stored in the context under
// ActorKey; the role comes from the stored row, not the token claim.
func JWTAuth(secret string, users UserLoader) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            header := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(header, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(header, "Bearer ")

            claims, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                msg := "invalid token"
                if errors.Is(err, utils.ErrTokenExpired) {
                    msg = "token expired"
                }
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
            }

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()
            u, err := users.GetByID(ctx, claims.UsuarioID)
            if err != nil {
                if errors.Is(err, repository.ErrNotFound) {
                    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found or inactive"})
                }
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
            }
            if !u.Activo {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found or inactive"})
            }

            c.Set(ActorKey, auth.Actor{ID: u.ID, Rol: u.Rol})
            return next(c)
        }
    }
}

// ActorFrom retrieves the verified actor stored by JWTAuth.  The second
// return is false when the middleware did not run on this route.
func ActorFrom(c echo.Context) (auth.Actor, bool) {
    a, ok := c.Get(ActorKey).(auth.Actor)
    return a, ok
}
