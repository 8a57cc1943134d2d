package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/imontoya/soporte-tickets/internal/auth"
	"github.com/imontoya/soporte-tickets/internal/cache"
	"github.com/imontoya/soporte-tickets/internal/model"
)

// TicketRepo owns all reads and writes against the Tickets table.  It
// also carries the ticket-status cache so that every successful create
// or update deletes the cached entry for that ticket in the same code
// path as the write (delete-on-write, never update-on-write).
type TicketRepo struct {
	DB    *sql.DB
	Cache *cache.TicketCache
}

func NewTicketRepo(db *sql.DB, c *cache.TicketCache) *TicketRepo {
	return &TicketRepo{DB: db, Cache: c}
}

// detalleQuery joins the owner and assignee names and counts the
// interactions on the thread, mirroring what clients need to render a
// ticket without extra round trips.
const detalleQuery = `
SELECT t.ticket_id, t.usuario_id, t.titulo, t.descripcion, t.prioridad, t.estado,
       t.categoria, t.asignado_a, t.creado_en, t.actualizado_en, t.cerrado_en,
       u.nombre AS nombre_usuario, a.nombre AS asignado_nombre,
       (SELECT COUNT(*) FROM Interacciones i WHERE i.ticket_id = t.ticket_id) AS total_interacciones
FROM Tickets t
INNER JOIN Usuarios u ON t.usuario_id = u.usuario_id
LEFT JOIN Usuarios a ON t.asignado_a = a.usuario_id`

// Create inserts a new ticket owned by ownerID with estado 'abierto'
// and a null cerrado_en, then returns the stored row.
func (r *TicketRepo) Create(ctx context.Context, ownerID uint64, titulo string, descripcion *string, prioridad model.PrioridadTicket, categoria *string) (model.TicketDetalle, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO Tickets (usuario_id, titulo, descripcion, prioridad, categoria) VALUES (?,?,?,?,?)",
		ownerID, titulo, descripcion, string(prioridad), categoria)
	if err != nil {
		return model.TicketDetalle{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.TicketDetalle{}, err
	}
	r.Cache.Invalidate(ctx, uint64(id))
	return r.GetDetalle(ctx, uint64(id))
}

// GetDetalle fetches one ticket with joined display fields.  Missing
// rows map to ErrNotFound.  Access control is the caller's concern:
// this read is also used internally before permission checks.
func (r *TicketRepo) GetDetalle(ctx context.Context, id uint64) (model.TicketDetalle, error) {
	row := r.DB.QueryRowContext(ctx, detalleQuery+" WHERE t.ticket_id = ?", id)
	return scanDetalle(row)
}

// ListFiltro carries the optional list filters.  Nil means the filter
// is absent.
type ListFiltro struct {
	Estado    *model.EstadoTicket
	Prioridad *model.PrioridadTicket
}

// List returns tickets newest first, paginated with a 1-indexed page.
// For regular users the owner-or-assignee predicate is part of the SQL
// WHERE clause so that pagination counts only visible rows; admins see
// everything.
func (r *TicketRepo) List(ctx context.Context, actor auth.Actor, f ListFiltro, page, limit int) ([]model.TicketDetalle, error) {
	query, args := buildListQuery(actor, f, page, limit)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TicketDetalle{}
	for rows.Next() {
		t, err := scanDetalleRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// buildListQuery assembles the list statement and its arguments.  Kept
// separate from List so the row-filter and pagination arithmetic are
// testable without a database.
func buildListQuery(actor auth.Actor, f ListFiltro, page, limit int) (string, []interface{}) {
	var b strings.Builder
	b.WriteString(detalleQuery)
	b.WriteString(" WHERE 1=1")
	args := []interface{}{}

	if !actor.IsAdmin() {
		b.WriteString(" AND (t.usuario_id = ? OR t.asignado_a = ?)")
		args = append(args, actor.ID, actor.ID)
	}
	if f.Estado != nil {
		b.WriteString(" AND t.estado = ?")
		args = append(args, string(*f.Estado))
	}
	if f.Prioridad != nil {
		b.WriteString(" AND t.prioridad = ?")
		args = append(args, string(*f.Prioridad))
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	b.WriteString(" ORDER BY t.creado_en DESC LIMIT ? OFFSET ?")
	args = append(args, limit, (page-1)*limit)
	return b.String(), args
}

// CambiosTicket is the presence-aware partial update payload: a nil
// field was absent from the request, a non-nil field overwrites the
// column.  This distinction is what makes the zero-field rejection and
// the all-or-nothing assignment check precise.
type CambiosTicket struct {
	Titulo      *string
	Descripcion *string
	Prioridad   *model.PrioridadTicket
	Estado      *model.EstadoTicket
	Categoria   *string
	AsignadoA   *uint64
}

// Update applies a partial update to one ticket.  Order of failure:
// missing ticket -> ErrNotFound; actor without owner/assignee/admin
// access -> ErrForbidden; asignado_a present without admin role ->
// ErrForbidden before any column is written; zero present fields ->
// ErrNoFields.  A transition into resuelto/cerrado stamps cerrado_en in
// the same UPDATE statement.  The cache entry is deleted after the
// write commits.
func (r *TicketRepo) Update(ctx context.Context, id uint64, cambios CambiosTicket, actor auth.Actor) (model.TicketDetalle, error) {
	var ownerID uint64
	var asignadoA sql.NullInt64
	err := r.DB.QueryRowContext(ctx,
		"SELECT usuario_id, asignado_a FROM Tickets WHERE ticket_id = ?", id).
		Scan(&ownerID, &asignadoA)
	if err == sql.ErrNoRows {
		return model.TicketDetalle{}, ErrNotFound
	}
	if err != nil {
		return model.TicketDetalle{}, err
	}

	var asignadoPtr *uint64
	if asignadoA.Valid {
		v := uint64(asignadoA.Int64)
		asignadoPtr = &v
	}
	if !auth.CanAccessTicket(actor, ownerID, asignadoPtr) {
		return model.TicketDetalle{}, ErrForbidden
	}

	setClause, args, err := buildTicketUpdate(cambios, actor)
	if err != nil {
		return model.TicketDetalle{}, err
	}
	args = append(args, id)
	if _, err := r.DB.ExecContext(ctx, "UPDATE Tickets SET "+setClause+" WHERE ticket_id = ?", args...); err != nil {
		return model.TicketDetalle{}, err
	}
	r.Cache.Invalidate(ctx, id)
	return r.GetDetalle(ctx, id)
}

// buildTicketUpdate turns a CambiosTicket into a SET clause and its
// arguments.  The assignment permission is checked here, before any
// column reaches the database, so a forbidden request applies nothing.
func buildTicketUpdate(cambios CambiosTicket, actor auth.Actor) (string, []interface{}, error) {
	if cambios.AsignadoA != nil && !auth.CanAssign(actor) {
		return "", nil, ErrForbidden
	}

	sets := []string{}
	args := []interface{}{}
	if cambios.Titulo != nil {
		sets = append(sets, "titulo = ?")
		args = append(args, *cambios.Titulo)
	}
	if cambios.Descripcion != nil {
		sets = append(sets, "descripcion = ?")
		args = append(args, *cambios.Descripcion)
	}
	if cambios.Prioridad != nil {
		sets = append(sets, "prioridad = ?")
		args = append(args, string(*cambios.Prioridad))
	}
	if cambios.Estado != nil {
		sets = append(sets, "estado = ?")
		args = append(args, string(*cambios.Estado))
		if cambios.Estado.Cierra() {
			// cerrado_en travels in the same statement as the estado
			// change; it is never cleared on a later reopen.
			sets = append(sets, "cerrado_en = NOW()")
		}
	}
	if cambios.Categoria != nil {
		sets = append(sets, "categoria = ?")
		args = append(args, *cambios.Categoria)
	}
	if cambios.AsignadoA != nil {
		sets = append(sets, "asignado_a = ?")
		args = append(args, *cambios.AsignadoA)
	}
	if len(sets) == 0 {
		return "", nil, ErrNoFields
	}
	return strings.Join(sets, ", "), args, nil
}

// Estadisticas aggregates ticket counts for the admin dashboard.
type Estadisticas struct {
	TotalTickets     int            `json:"total_tickets"`
	TicketsAbiertos  int            `json:"tickets_abiertos"`
	TicketsEnProceso int            `json:"tickets_en_proceso"`
	TicketsResueltos int            `json:"tickets_resueltos"`
	TicketsCerrados  int            `json:"tickets_cerrados"`
	PorPrioridad     map[string]int `json:"tickets_por_prioridad"`
}

// GetEstadisticas returns the global per-estado counts and a
// per-prioridad breakdown.
func (r *TicketRepo) GetEstadisticas(ctx context.Context) (Estadisticas, error) {
	var e Estadisticas
	err := r.DB.QueryRowContext(ctx, `
SELECT COUNT(*),
       COALESCE(SUM(estado = 'abierto'), 0),
       COALESCE(SUM(estado = 'en_proceso'), 0),
       COALESCE(SUM(estado = 'resuelto'), 0),
       COALESCE(SUM(estado = 'cerrado'), 0)
FROM Tickets`).Scan(&e.TotalTickets, &e.TicketsAbiertos, &e.TicketsEnProceso, &e.TicketsResueltos, &e.TicketsCerrados)
	if err != nil {
		return Estadisticas{}, err
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT prioridad, COUNT(*) FROM Tickets GROUP BY prioridad")
	if err != nil {
		return Estadisticas{}, err
	}
	defer rows.Close()

	e.PorPrioridad = map[string]int{}
	for rows.Next() {
		var p string
		var n int
		if err := rows.Scan(&p, &n); err != nil {
			return Estadisticas{}, err
		}
		e.PorPrioridad[p] = n
	}
	return e, rows.Err()
}

func scanDetalle(row *sql.Row) (model.TicketDetalle, error) {
	var t model.TicketDetalle
	var descripcion, categoria, asignadoNombre sql.NullString
	var asignadoA sql.NullInt64
	var cerradoEn sql.NullTime
	err := row.Scan(&t.ID, &t.UsuarioID, &t.Titulo, &descripcion, &t.Prioridad, &t.Estado,
		&categoria, &asignadoA, &t.CreadoEn, &t.ActualizadoEn, &cerradoEn,
		&t.NombreUsuario, &asignadoNombre, &t.TotalInteracciones)
	if err == sql.ErrNoRows {
		return model.TicketDetalle{}, ErrNotFound
	}
	if err != nil {
		return model.TicketDetalle{}, err
	}
	fillDetalleNullables(&t, descripcion, categoria, asignadoNombre, asignadoA, cerradoEn)
	return t, nil
}

func scanDetalleRows(rows *sql.Rows) (model.TicketDetalle, error) {
	var t model.TicketDetalle
	var descripcion, categoria, asignadoNombre sql.NullString
	var asignadoA sql.NullInt64
	var cerradoEn sql.NullTime
	err := rows.Scan(&t.ID, &t.UsuarioID, &t.Titulo, &descripcion, &t.Prioridad, &t.Estado,
		&categoria, &asignadoA, &t.CreadoEn, &t.ActualizadoEn, &cerradoEn,
		&t.NombreUsuario, &asignadoNombre, &t.TotalInteracciones)
	if err != nil {
		return model.TicketDetalle{}, err
	}
	fillDetalleNullables(&t, descripcion, categoria, asignadoNombre, asignadoA, cerradoEn)
	return t, nil
}

func fillDetalleNullables(t *model.TicketDetalle, descripcion, categoria, asignadoNombre sql.NullString, asignadoA sql.NullInt64, cerradoEn sql.NullTime) {
	if descripcion.Valid {
		v := descripcion.String
		t.Descripcion = &v
	}
	if categoria.Valid {
		v := categoria.String
		t.Categoria = &v
	}
	if asignadoNombre.Valid {
		v := asignadoNombre.String
		t.AsignadoNombre = &v
	}
	if asignadoA.Valid {
		v := uint64(asignadoA.Int64)
		t.AsignadoA = &v
	}
	if cerradoEn.Valid {
		v := cerradoEn.Time
		t.CerradoEn = &v
	}
}
