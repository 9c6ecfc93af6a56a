package store

import "errors"

var (
	// ErrExecutingQuery wraps database execution failures.
	ErrExecutingQuery = errors.New("error executing query")
	// ErrScanningRow wraps row scan failures.
	ErrScanningRow = errors.New("error scanning row")
)
