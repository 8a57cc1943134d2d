package model

import "time"

// EstadoTicket enumerates the ticket lifecycle states.  The values are
// stored verbatim in the `Tickets.estado` column.
type EstadoTicket string

const (
    EstadoAbierto   EstadoTicket = "abierto"
    EstadoEnProceso EstadoTicket = "en_proceso"
    EstadoResuelto  EstadoTicket = "resuelto"
    EstadoCerrado   EstadoTicket = "cerrado"
    EstadoCancelado EstadoTicket = "cancelado"
)

// Valid reports whether e is a known lifecycle state.
func (e EstadoTicket) Valid() bool {
    switch e {
    case EstadoAbierto, EstadoEnProceso, EstadoResuelto, EstadoCerrado, EstadoCancelado:
        return true
    }
    return false
}

// Cierra reports whether a transition into e must stamp `cerrado_en`.
func (e EstadoTicket) Cierra() bool {
    return e == EstadoResuelto || e == EstadoCerrado
}

// PrioridadTicket enumerates ticket priorities, stored verbatim in the
// `Tickets.prioridad` column.
type PrioridadTicket string

const (
    PrioridadBaja    PrioridadTicket = "baja"
    PrioridadMedia   PrioridadTicket = "media"
    PrioridadAlta    PrioridadTicket = "alta"
    PrioridadUrgente PrioridadTicket = "urgente"
)

// Valid reports whether p is a known priority.
func (p PrioridadTicket) Valid() bool {
    switch p {
    case PrioridadBaja, PrioridadMedia, PrioridadAlta, PrioridadUrgente:
        return true
    }
    return false
}

// Ticket represents a support ticket row in the `Tickets` table.
// Tickets are owned by the user who created them and may optionally be
// assigned to another user by an administrator.  Rows are never deleted.
//
// Fields:
//  ID           – primary key identifier (Tickets.ticket_id).
//  UsuarioID    – owning user.
//  Titulo       – short summary.
//  Descripcion  – optional free text.
//  Prioridad    – baja, media, alta or urgente.
//  Estado       – lifecycle state.
//  Categoria    – optional free-form category.
//  AsignadoA    – optional assignee user id (set by administrators only).
//  CreadoEn     – creation timestamp.
//  ActualizadoEn– timestamp of the last update.
//  CerradoEn    – set when the ticket transitions into resuelto/cerrado.
type Ticket struct {
    ID            uint64          // Tickets.ticket_id
    UsuarioID     uint64          // Tickets.usuario_id
    Titulo        string          // Tickets.titulo
    Descripcion   *string         // Tickets.descripcion (nullable)
    Prioridad     PrioridadTicket // Tickets.prioridad
    Estado        EstadoTicket    // Tickets.estado
    Categoria     *string         // Tickets.categoria (nullable)
    AsignadoA     *uint64         // Tickets.asignado_a (nullable)
    CreadoEn      time.Time       // Tickets.creado_en
    ActualizadoEn time.Time       // Tickets.actualizado_en
    CerradoEn     *time.Time      // Tickets.cerrado_en (nullable)
}

// TicketDetalle is a Ticket enriched with display fields resolved by
// joins: the owner's name, the assignee's name and the number of
// interactions on the thread.  Returned by single-ticket and list reads.
type TicketDetalle struct {
    Ticket
    NombreUsuario      string  // Usuarios.nombre of the owner
    AsignadoNombre     *string // Usuarios.nombre of the assignee (nullable)
    TotalInteracciones int     // count of Interacciones rows
}
