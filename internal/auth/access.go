// Package auth contains the access-control decisions for tickets and
// interactions.  The functions here are pure: they look only at the
// acting user's identity and role and at the owner/assignee fields of
// the resource.  Row filtering for list queries is not decided here –
// repositories apply the equivalent owner-or-assignee predicate in SQL
// so that pagination stays correct.
package auth

import "github.com/imontoya/soporte-tickets/internal/model"

// Actor is the verified identity attached to every authenticated
// request: the user id from the token subject and the role looked up
// from the credential store.
type Actor struct {
    ID  uint64
    Rol model.Rol
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
    return a.Rol == model.RolAdmin
}

// CanAccessTicket decides read and update access to a single ticket.
// Administrators may access any ticket; regular users only tickets they
// own or are assigned to.
func CanAccessTicket(a Actor, ownerID uint64, asignadoA *uint64) bool {
    switch a.Rol {
    case model.RolAdmin:
        return true
    case model.RolUsuario:
        if a.ID == ownerID {
            return true
        }
        return asignadoA != nil && a.ID == *asignadoA
    }
    return false
}

// CanAssign decides whether the actor may set or change a ticket's
// asignado_a field.  Only administrators assign tickets.
func CanAssign(a Actor) bool {
    return a.Rol == model.RolAdmin
}

// CanUseInternal decides whether the actor may create or view
// internal-flagged interactions.  Only administrators see internal
// notes; for everyone else they do not exist.
func CanUseInternal(a Actor) bool {
    return a.Rol == model.RolAdmin
}
