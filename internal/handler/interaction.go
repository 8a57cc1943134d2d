package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/imontoya/soporte-tickets/internal/model"
	"github.com/imontoya/soporte-tickets/internal/repository"
)

// InteraccionHandler bundles dependencies for the ticket-thread
// endpoints.
type InteraccionHandler struct {
	Interacciones *repository.InteraccionRepo
}

func NewInteraccionHandler(i *repository.InteraccionRepo) *InteraccionHandler {
	return &InteraccionHandler{Interacciones: i}
}

type interaccionCrearReq struct {
	Mensaje   string `json:"mensaje"`
	EsInterno bool   `json:"es_interno"`
}

type interaccionResp struct {
	InteraccionID uint64    `json:"interaccion_id"`
	TicketID      uint64    `json:"ticket_id"`
	UsuarioID     *uint64   `json:"usuario_id"`
	Mensaje       string    `json:"mensaje"`
	EsInterno     bool      `json:"es_interno"`
	CreadoEn      time.Time `json:"creado_en"`
	NombreUsuario *string   `json:"nombre_usuario"`
}

func toInteraccionResp(in model.Interaccion) interaccionResp {
	return interaccionResp{
		InteraccionID: in.ID,
		TicketID:      in.TicketID,
		UsuarioID:     in.UsuarioID,
		Mensaje:       in.Mensaje,
		EsInterno:     in.EsInterno,
		CreadoEn:      in.CreadoEn,
		NombreUsuario: in.NombreUsuario,
	}
}

// Crear appends an interaction to a ticket's thread.  Internal notes
// require the admin role; the repository also rejects actors without
// read access to the ticket.
func (h *InteraccionHandler) Crear(c echo.Context) error {
	ticketID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket no encontrado"})
	}
	var req interaccionCrearReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	req.Mensaje = strings.TrimSpace(req.Mensaje)
	if req.Mensaje == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mensaje es obligatorio"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	in, err := h.Interacciones.Create(ctx, actor(c), ticketID, req.Mensaje, req.EsInterno)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, toInteraccionResp(in))
}

// Listar returns a ticket's thread in chronological order.  Non-admin
// actors never receive internal notes; the filter happens in SQL.
func (h *InteraccionHandler) Listar(c echo.Context) error {
	ticketID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket no encontrado"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	list, err := h.Interacciones.ListByTicket(ctx, actor(c), ticketID)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]interaccionResp, 0, len(list))
	for _, in := range list {
		out = append(out, toInteraccionResp(in))
	}
	return c.JSON(http.StatusOK, out)
}
