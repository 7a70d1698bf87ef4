package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from transport errors raised by adapters.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a search was requested without query text.
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidPage indicates a page number below 1.
	ErrInvalidPage = errors.New("invalid page")

	// ErrInvalidColorMode indicates an unknown --color value.
	ErrInvalidColorMode = errors.New("invalid color mode")

	// ErrSearchUnavailable indicates no search client is configured.
	ErrSearchUnavailable = errors.New("search client unavailable")

	// ErrRateLimited indicates the remote service refused the request
	// because of its fair-use limits.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnknownConfigKey indicates a config key that codegrep does not read.
	ErrUnknownConfigKey = errors.New("unknown config key")
)
