package usecase

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden means the record is not owned by the acting user. The
	// ownership query matches id and owner together, so a missing record
	// and a mismatched owner are indistinguishable on purpose.
	ErrForbidden = errors.New("forbidden")
)
