package store

import "errors"

var (
	// ErrUnknownHashStrategy is returned when a hash strategy name does not
	// match any supported strategy.
	ErrUnknownHashStrategy = errors.New("unknown hash strategy")
)
