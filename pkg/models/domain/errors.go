package domain

import "errors"

var (
	// ErrInvalidInput marks requests that cannot be analyzed: unsupported
	// listing URLs or manual input missing make/model.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable marks a failed call to any required
	// third-party API. The whole request fails; no partial reports.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUnauthorized marks a missing or rejected server-side API key.
	ErrUnauthorized = errors.New("unauthorized")

	ErrNotFound = errors.New("not found")
)
