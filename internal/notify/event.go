// Package notify defines domain events published to the message broker.
package notify

// TicketCerradoEvent is published when an update moves a ticket into
// resuelto or cerrado.  It carries enough for downstream consumers
// (notifications, analytics) to act without querying the database.
type TicketCerradoEvent struct {
    TicketID  uint64 `json:"ticket_id"`
    UsuarioID uint64 `json:"usuario_id"`
    Titulo    string `json:"titulo"`
    Estado    string `json:"estado"`
    CerradoEn string `json:"cerrado_en"`
}
