// Package repository defines error types that are reused across the
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between failure scenarios and map them to
// HTTP statuses without inspecting error strings.
package repository

import "errors"

// ErrNotFound is returned when the requested ticket or user row does
// not exist. Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the acting user is not authorized to
// perform an operation on a ticket: a regular user touching a ticket
// they neither own nor are assigned to, or a non-admin trying to set
// asignado_a. Handlers translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned on registration when the email is already
// taken. The API contract maps this to HTTP 400.
var ErrEmailExists = errors.New("email already exists")

// ErrNoFields is returned when a partial update carries zero fields.
// Handlers translate this into an HTTP 400 response.
var ErrNoFields = errors.New("no fields to update")
