package errors

import "errors"

// Sentinel errors shared by the service and API layers. Services wrap them
// with context; the API layer matches them with errors.Is and picks the
// HTTP status.

var (
	// ErrNotFound signifies that a thread, message or setting does not exist.
	// Mapped to 404.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client input failed validation, e.g. an
	// unknown message type or an alias pointing at no view.
	// Mapped to 400.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that the request conflicts with current state.
	// Mapped to 409.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the caller may not perform the action.
	// Mapped to 403.
	ErrPermission = errors.New("permission denied")

	// ErrInternal hides unexpected failures from clients.
	// Mapped to 500.
	ErrInternal = errors.New("internal server error")
)
