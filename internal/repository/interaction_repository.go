package repository

import (
	"context"
	"database/sql"

	"github.com/imontoya/soporte-tickets/internal/auth"
	"github.com/imontoya/soporte-tickets/internal/model"
)

// InteraccionRepo owns the Interacciones table.  Rows are append-only:
// there is no update or delete here on purpose.
type InteraccionRepo struct{ DB *sql.DB }

func NewInteraccionRepo(db *sql.DB) *InteraccionRepo { return &InteraccionRepo{DB: db} }

// Create appends an interaction to a ticket's thread on behalf of
// actor.  Missing ticket -> ErrNotFound; internal note without admin
// role, or an actor without read access to the ticket -> ErrForbidden.
func (r *InteraccionRepo) Create(ctx context.Context, actor auth.Actor, ticketID uint64, mensaje string, esInterno bool) (model.Interaccion, error) {
	if err := r.checkTicketAccess(ctx, actor, ticketID); err != nil {
		return model.Interaccion{}, err
	}
	if esInterno && !auth.CanUseInternal(actor) {
		return model.Interaccion{}, ErrForbidden
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO Interacciones (ticket_id, usuario_id, mensaje, es_interno) VALUES (?,?,?,?)",
		ticketID, actor.ID, mensaje, esInterno)
	if err != nil {
		return model.Interaccion{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Interaccion{}, err
	}

	row := r.DB.QueryRowContext(ctx, `
SELECT i.interaccion_id, i.ticket_id, i.usuario_id, i.mensaje, i.es_interno, i.creado_en, u.nombre
FROM Interacciones i
LEFT JOIN Usuarios u ON i.usuario_id = u.usuario_id
WHERE i.interaccion_id = ?`, id)
	return scanInteraccion(row)
}

// ListByTicket returns a ticket's thread in chronological order.
// Internal notes are filtered out in SQL for non-admin actors, so they
// never reach the result set at all.
func (r *InteraccionRepo) ListByTicket(ctx context.Context, actor auth.Actor, ticketID uint64) ([]model.Interaccion, error) {
	if err := r.checkTicketAccess(ctx, actor, ticketID); err != nil {
		return nil, err
	}

	query, args := buildInteraccionListQuery(actor, ticketID)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Interaccion{}
	for rows.Next() {
		var in model.Interaccion
		var usuarioID sql.NullInt64
		var nombre sql.NullString
		if err := rows.Scan(&in.ID, &in.TicketID, &usuarioID, &in.Mensaje, &in.EsInterno, &in.CreadoEn, &nombre); err != nil {
			return nil, err
		}
		fillInteraccionNullables(&in, usuarioID, nombre)
		out = append(out, in)
	}
	return out, rows.Err()
}

// buildInteraccionListQuery assembles the thread statement.  Internal
// notes are excluded in the WHERE clause for non-admin actors, so they
// never reach the result set at all.  Kept separate from ListByTicket
// so the visibility filter is testable without a database.
func buildInteraccionListQuery(actor auth.Actor, ticketID uint64) (string, []interface{}) {
	query := `
SELECT i.interaccion_id, i.ticket_id, i.usuario_id, i.mensaje, i.es_interno, i.creado_en, u.nombre
FROM Interacciones i
LEFT JOIN Usuarios u ON i.usuario_id = u.usuario_id
WHERE i.ticket_id = ?`
	if !auth.CanUseInternal(actor) {
		query += " AND i.es_interno = 0"
	}
	query += " ORDER BY i.creado_en ASC"
	return query, []interface{}{ticketID}
}

// checkTicketAccess verifies the ticket exists and that actor may read
// it, using the same owner/assignee rule as ticket reads.
func (r *InteraccionRepo) checkTicketAccess(ctx context.Context, actor auth.Actor, ticketID uint64) error {
	var ownerID uint64
	var asignadoA sql.NullInt64
	err := r.DB.QueryRowContext(ctx,
		"SELECT usuario_id, asignado_a FROM Tickets WHERE ticket_id = ?", ticketID).
		Scan(&ownerID, &asignadoA)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	var asignadoPtr *uint64
	if asignadoA.Valid {
		v := uint64(asignadoA.Int64)
		asignadoPtr = &v
	}
	if !auth.CanAccessTicket(actor, ownerID, asignadoPtr) {
		return ErrForbidden
	}
	return nil
}

func scanInteraccion(row *sql.Row) (model.Interaccion, error) {
	var in model.Interaccion
	var usuarioID sql.NullInt64
	var nombre sql.NullString
	err := row.Scan(&in.ID, &in.TicketID, &usuarioID, &in.Mensaje, &in.EsInterno, &in.CreadoEn, &nombre)
	if err == sql.ErrNoRows {
		return model.Interaccion{}, ErrNotFound
	}
	if err != nil {
		return model.Interaccion{}, err
	}
	fillInteraccionNullables(&in, usuarioID, nombre)
	return in, nil
}

func fillInteraccionNullables(in *model.Interaccion, usuarioID sql.NullInt64, nombre sql.NullString) {
	if usuarioID.Valid {
		v := uint64(usuarioID.Int64)
		in.UsuarioID = &v
	}
	if nombre.Valid {
		v := nombre.String
		in.NombreUsuario = &v
	}
}
