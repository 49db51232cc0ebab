package errs

import (
	"errors"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrParse       = errors.New("malformed record")
	ErrUnknownBook = errors.New("unknown book reference")
	ErrDuplicateID = errors.New("duplicate id")
	ErrInvalidID   = errors.New("invalid book id")
)
