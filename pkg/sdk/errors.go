package campusdir

import "github.com/kailas-cloud/campusdir/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound        = domain.ErrNotFound
	ErrAlreadyExists   = domain.ErrAlreadyExists
	ErrInvalidInput    = domain.ErrInvalidInput
	ErrInvalidDocument = domain.ErrInvalidDocument
)

// ValidationError lists the rejected fields of a create request.
// Retrieve it with errors.As; it also matches ErrInvalidInput.
type ValidationError = domain.ValidationError

// FieldError is one rejected field of a ValidationError.
type FieldError = domain.FieldError
