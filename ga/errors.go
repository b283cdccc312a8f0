// SPDX-License-Identifier: MIT

package ga

import "errors"

var (
	// ErrInvalidInput is returned by Start when the city set cannot form a
	// tour (fewer than two cities, non-finite coordinates). The underlying
	// distance sentinel is wrapped as well.
	ErrInvalidInput = errors.New("ga: invalid input")

	// ErrInvalidConfig is returned when a Config value is outside its
	// documented bound. The run does not start.
	ErrInvalidConfig = errors.New("ga: invalid config")
)
