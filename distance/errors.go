// SPDX-License-Identifier: MIT

package distance

import "errors"

// Every message is prefixed with "distance: ..." so the origin is greppable.
// Callers match with errors.Is; context is attached with %w at the boundary.
var (
	// ErrTooFewCities is returned by Build when fewer than two cities are given.
	ErrTooFewCities = errors.New("distance: at least two cities are required")

	// ErrBadCoordinate signals a NaN or ±Inf city coordinate.
	ErrBadCoordinate = errors.New("distance: coordinate is NaN or Inf")

	// ErrOutOfRange indicates that a row or column index is outside [0, n).
	ErrOutOfRange = errors.New("distance: index out of range")
)

// ErrBadCSV wraps malformed rows in ReadCSV.
var ErrBadCSV = errors.New("distance: malformed city csv")
