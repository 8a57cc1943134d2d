package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/imontoya/soporte-tickets/internal/repository"
)

// AdminHandler bundles dependencies for the administrator-only
// endpoints.  The role gate itself is middleware; these handlers can
// assume an admin actor.
type AdminHandler struct {
	Users   *repository.UserRepo
	Tickets *repository.TicketRepo
}

func NewAdminHandler(users *repository.UserRepo, tickets *repository.TicketRepo) *AdminHandler {
	return &AdminHandler{Users: users, Tickets: tickets}
}

// Estadisticas returns global ticket counts by estado and prioridad.
func (h *AdminHandler) Estadisticas(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	e, err := h.Tickets.GetEstadisticas(ctx)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

// Usuarios lists every registered user, newest first.
func (h *AdminHandler) Usuarios(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]usuarioResp, 0, len(users))
	for _, u := range users {
		out = append(out, toUsuarioResp(u))
	}
	return c.JSON(http.StatusOK, out)
}
