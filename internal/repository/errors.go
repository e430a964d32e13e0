package repository

import "errors"

var (
	// ErrVersionConflict means the document changed since it was read.
	ErrVersionConflict = errors.New("repository: version conflict")
	// ErrDuplicateEmail means an account with that email already exists.
	ErrDuplicateEmail = errors.New("repository: email already exists")
)
