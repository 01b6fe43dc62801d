package storage

import (
	"errors"
)

var (
	// ErrUnknownAssetClass is returned for an asset class without a policy.
	ErrUnknownAssetClass = errors.New("unknown asset class")

	// ErrUnsupportedType is returned when the file extension or the
	// declared content type is outside the class allow-list.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrTooLarge is returned when the declared size exceeds the class ceiling.
	ErrTooLarge = errors.New("too large")
)
