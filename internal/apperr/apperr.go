// Package apperr defines the error taxonomy shared across the backend.
//
// Packages wrap these sentinels with fmt.Errorf("pkg: context: %w", ...) so
// callers can branch with errors.Is while the message keeps its provenance.
package apperr

import "errors"

var (
	// ErrNotFound marks a referenced project, node, stage or profile that
	// does not exist (in the requested project scope where applicable).
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation, e.g. a taken username.
	ErrConflict = errors.New("conflict")

	// ErrInvalidID marks an identifier whose prefix resolves to no known
	// entity kind. Raised before any store access.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrUnauthorized marks a credential mismatch on login.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternal marks a store or blob-intake failure.
	ErrInternal = errors.New("internal error")
)
