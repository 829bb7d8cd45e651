// Package common defines shared constants and sentinel errors used across
// the tgauth server, its repositories and the operator CLI. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorDisabled     = errors.New("telegram authentication is disabled")

	// Secret lookup.
	ErrorSecretUnavailable = errors.New("bot secret unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// ErrorConflict is returned by repositories when a uniqueness constraint
// rejects a write.
var ErrorConflict = errors.New("conflict")
