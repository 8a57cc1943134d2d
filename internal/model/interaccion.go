package model

import "time"

// Interaccion is one entry in a ticket's conversation thread, stored in
// the `Interacciones` table.  Rows are append-only: they are never
// updated or deleted.  Interactions flagged es_interno are visible to
// administrators only.  UsuarioID is nullable because the batch worker
// appends system messages without an author.
//
// Fields:
//  ID        – primary key identifier (Interacciones.interaccion_id).
//  TicketID  – parent ticket.
//  UsuarioID – authoring user, nil for system-generated entries.
//  Mensaje   – message text.
//  EsInterno – admin-only internal note flag.
//  CreadoEn  – creation timestamp.
type Interaccion struct {
    ID        uint64    // Interacciones.interaccion_id
    TicketID  uint64    // Interacciones.ticket_id
    UsuarioID *uint64   // Interacciones.usuario_id (nullable)
    Mensaje   string    // Interacciones.mensaje
    EsInterno bool      // Interacciones.es_interno
    CreadoEn  time.Time // Interacciones.creado_en
    // NombreUsuario is resolved by a join for display and is empty for
    // system-generated entries.
    NombreUsuario *string
}
