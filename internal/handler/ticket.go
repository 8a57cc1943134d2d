package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/imontoya/soporte-tickets/internal/auth"
	"github.com/imontoya/soporte-tickets/internal/cache"
	"github.com/imontoya/soporte-tickets/internal/model"
	"github.com/imontoya/soporte-tickets/internal/notify"
	"github.com/imontoya/soporte-tickets/internal/repository"
)

// TicketHandler bundles dependencies for the ticket CRUD endpoints.
type TicketHandler struct {
	Tickets *repository.TicketRepo
	Cache   *cache.TicketCache
	Notify  *notify.Publisher
}

func NewTicketHandler(tickets *repository.TicketRepo, c *cache.TicketCache, n *notify.Publisher) *TicketHandler {
	return &TicketHandler{Tickets: tickets, Cache: c, Notify: n}
}

// ----- DTOs -----

type ticketCrearReq struct {
	Titulo      string  `json:"titulo"`
	Descripcion *string `json:"descripcion"`
	Prioridad   string  `json:"prioridad"`
	Categoria   *string `json:"categoria"`
}

// ticketActualizarReq distinguishes absent fields from null via pointer
// semantics: an omitted key stays nil and is not applied.
type ticketActualizarReq struct {
	Titulo      *string `json:"titulo"`
	Descripcion *string `json:"descripcion"`
	Prioridad   *string `json:"prioridad"`
	Estado      *string `json:"estado"`
	Categoria   *string `json:"categoria"`
	AsignadoA   *uint64 `json:"asignado_a"`
}

type ticketResp struct {
	TicketID           uint64     `json:"ticket_id"`
	UsuarioID          uint64     `json:"usuario_id"`
	Titulo             string     `json:"titulo"`
	Descripcion        *string    `json:"descripcion"`
	Prioridad          string     `json:"prioridad"`
	Estado             string     `json:"estado"`
	Categoria          *string    `json:"categoria"`
	AsignadoA          *uint64    `json:"asignado_a"`
	CreadoEn           time.Time  `json:"creado_en"`
	ActualizadoEn      time.Time  `json:"actualizado_en"`
	CerradoEn          *time.Time `json:"cerrado_en,omitempty"`
	NombreUsuario      string     `json:"nombre_usuario"`
	AsignadoNombre     *string    `json:"asignado_nombre"`
	TotalInteracciones int        `json:"total_interacciones"`
}

func toTicketResp(t model.TicketDetalle) ticketResp {
	return ticketResp{
		TicketID:           t.ID,
		UsuarioID:          t.UsuarioID,
		Titulo:             t.Titulo,
		Descripcion:        t.Descripcion,
		Prioridad:          string(t.Prioridad),
		Estado:             string(t.Estado),
		Categoria:          t.Categoria,
		AsignadoA:          t.AsignadoA,
		CreadoEn:           t.CreadoEn,
		ActualizadoEn:      t.ActualizadoEn,
		CerradoEn:          t.CerradoEn,
		NombreUsuario:      t.NombreUsuario,
		AsignadoNombre:     t.AsignadoNombre,
		TotalInteracciones: t.TotalInteracciones,
	}
}

// Crear creates a ticket owned by the acting user.  Prioridad defaults
// to media when absent.
func (h *TicketHandler) Crear(c echo.Context) error {
	var req ticketCrearReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	req.Titulo = strings.TrimSpace(req.Titulo)
	if req.Titulo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "titulo es obligatorio"})
	}
	prioridad := model.PrioridadTicket(req.Prioridad)
	if req.Prioridad == "" {
		prioridad = model.PrioridadMedia
	}
	if !prioridad.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "prioridad inválida"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	t, err := h.Tickets.Create(ctx, actor(c).ID, req.Titulo, req.Descripcion, prioridad, req.Categoria)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, toTicketResp(t))
}

// Listar returns the actor's visible tickets, optionally filtered by
// estado and prioridad, newest first.  Regular users only ever see rows
// they own or are assigned to; that filter is part of the SQL query so
// page/limit apply to visible rows.
func (h *TicketHandler) Listar(c echo.Context) error {
	var filtro repository.ListFiltro
	if v := c.QueryParam("estado"); v != "" {
		e := model.EstadoTicket(v)
		if !e.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "estado inválido"})
		}
		filtro.Estado = &e
	}
	if v := c.QueryParam("prioridad"); v != "" {
		p := model.PrioridadTicket(v)
		if !p.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "prioridad inválida"})
		}
		filtro.Prioridad = &p
	}
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	ctx, cancel := reqContext(c)
	defer cancel()

	tickets, err := h.Tickets.List(ctx, actor(c), filtro, page, limit)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]ticketResp, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketResp(t))
	}
	return c.JSON(http.StatusOK, out)
}

// Obtener fetches one ticket.  The cached estado is peeked first but
// only logged: the full row query always runs, and the fresh estado is
// written back to the cache afterwards.  The peek never short-circuits;
// this mirrors how the system has always behaved and the cache stays a
// non-authoritative hint.
func (h *TicketHandler) Obtener(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket no encontrado"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if estado, ok := h.Cache.Peek(ctx, id); ok {
		log.Printf("cache: hint for ticket %d: estado=%s", id, estado)
	}

	t, err := h.Tickets.GetDetalle(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	if !auth.CanAccessTicket(actor(c), t.UsuarioID, t.AsignadoA) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no tiene permisos para ver este ticket"})
	}

	h.Cache.Store(ctx, id, string(t.Estado))
	return c.JSON(http.StatusOK, toTicketResp(t))
}

// Actualizar applies a partial update.  Field presence is decided by
// the JSON body (omitted keys stay nil); enum values are validated here
// so the repository only ever sees well-formed changes.  When the
// update closes the ticket, a ticket.cerrado event is published
// fire-and-forget.
func (h *TicketHandler) Actualizar(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket no encontrado"})
	}
	var req ticketActualizarReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}

	cambios := repository.CambiosTicket{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Categoria:   req.Categoria,
		AsignadoA:   req.AsignadoA,
	}
	if req.Prioridad != nil {
		p := model.PrioridadTicket(*req.Prioridad)
		if !p.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "prioridad inválida"})
		}
		cambios.Prioridad = &p
	}
	if req.Estado != nil {
		e := model.EstadoTicket(*req.Estado)
		if !e.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "estado inválido"})
		}
		cambios.Estado = &e
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	t, err := h.Tickets.Update(ctx, id, cambios, actor(c))
	if err != nil {
		return repoError(c, err)
	}

	if cambios.Estado != nil && cambios.Estado.Cierra() {
		h.publishCerrado(t)
	}
	return c.JSON(http.StatusOK, toTicketResp(t))
}

// publishCerrado emits the closed-ticket event without tying its fate
// to the HTTP response: the update already committed.
func (h *TicketHandler) publishCerrado(t model.TicketDetalle) {
	ev := notify.TicketCerradoEvent{
		TicketID:  t.ID,
		UsuarioID: t.UsuarioID,
		Titulo:    t.Titulo,
		Estado:    string(t.Estado),
	}
	if t.CerradoEn != nil {
		ev.CerradoEn = t.CerradoEn.UTC().Format(time.RFC3339)
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Notify.PublishTicketCerrado(ctx, ev)
	}()
}

// queryInt parses an integer query parameter with a default.
func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
