package document

import (
	"errors"
)

var (
	// ErrUnknownDocument is returned for a name outside the registry.
	ErrUnknownDocument = errors.New("unknown document")
)
