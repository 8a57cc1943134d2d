package handler // handler defines the HTTP handlers of the API

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/imontoya/soporte-tickets/internal/auth"
	"github.com/imontoya/soporte-tickets/internal/middleware"
	"github.com/imontoya/soporte-tickets/internal/repository"
)

// dbTimeout bounds every database call made on behalf of a request.
const dbTimeout = 5 * time.Second

// reqContext derives a bounded context from the incoming request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// actor returns the verified identity stored by the auth middleware.
func actor(c echo.Context) auth.Actor {
	a, _ := middleware.ActorFrom(c)
	return a
}

// pathID parses the numeric id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// repoError maps repository sentinel errors onto the API's status
// contract; anything unrecognized is a server error, surfaced as such
// rather than masked.
func repoError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket no encontrado"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tiene permisos para esta operación"})
	case errors.Is(err, repository.ErrNoFields):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no hay campos para actualizar"})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "el email ya está registrado"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error interno"})
}
