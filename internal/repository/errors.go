// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors. Handlers translate them into HTTP
// statuses: ErrNotFound becomes 404, ErrEmailExists and ErrConflict
// become 409, ErrForbidden becomes 403.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row. Handlers should
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a user insert collides with the unique
// email key. Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state in dependent records. Handlers should translate this
// into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an HTTP
// 403 response.
var ErrForbidden = errors.New("forbidden")
