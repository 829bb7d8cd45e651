package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("already linked")
	ErrDisabled     = errors.New("telegram authentication disabled on server")
)
