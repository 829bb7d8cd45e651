// Package models holds the records persisted by the server repositories.
package models

import "time"

// LinkedIdentity binds a local user to a provider-assigned uid.
type LinkedIdentity struct {
	ID          string
	UserID      string
	Provider    string
	ProviderUID string
	Info        map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
