package server

import "errors"

var (
	errInvalidLimit = errors.New("invalid limit")
)
