package model

import "time"

// Rol is the closed set of user roles.  Authorization decisions switch
// exhaustively over these two values; there is no third role and string
// values outside this set are rejected at the request boundary.
type Rol string

const (
    RolAdmin   Rol = "admin"   // administrator: full access to every ticket
    RolUsuario Rol = "usuario" // regular user: owner/assignee access only
)

// Valid reports whether r is one of the two known roles.
func (r Rol) Valid() bool {
    return r == RolAdmin || r == RolUsuario
}

// Usuario represents an application user record as stored in the
// `Usuarios` table.  Each field corresponds to a column in the
// database.  Handlers define separate response types with JSON tags;
// this struct is used by the repository layer only.
//
// Fields:
//  ID            – primary key identifier of the user (Usuarios.usuario_id).
//  Nombre        – display name.
//  Email         – unique email address.
//  PasswordHash  – bcrypt hashed password.
//  Rol           – role of the user (admin or usuario).
//  Activo        – whether the account is active.
//  CreadoEn      – timestamp of registration.
//  UltimoAcceso  – timestamp of the last successful login (null until first login).
type Usuario struct {
    ID           uint64     // Usuarios.usuario_id
    Nombre       string     // Usuarios.nombre
    Email        string     // Usuarios.email
    PasswordHash string     // Usuarios.password_hash
    Rol          Rol        // Usuarios.rol
    Activo       bool       // Usuarios.activo
    CreadoEn     time.Time  // Usuarios.creado_en
    UltimoAcceso *time.Time // Usuarios.ultimo_acceso (nullable)
}
