// Package identities persists linked identities. Postgres and SQLite
// implementations share the Repository contract: lookups return
// common.ErrorNotFound when no row matches and writes rejected by a
// uniqueness constraint return common.ErrorConflict.
package identities

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/tgauth/internal/server/models"
)

type Repository interface {
	FindByProviderUID(ctx context.Context, provider, uid string) (*models.LinkedIdentity, error)
	FindByUser(ctx context.Context, userID, provider string) (*models.LinkedIdentity, error)
	Create(ctx context.Context, li *models.LinkedIdentity) (*models.LinkedIdentity, error)
	Update(ctx context.Context, li *models.LinkedIdentity) error
	Delete(ctx context.Context, id string) error
}

func encodeInfo(info map[string]string) ([]byte, error) {
	if info == nil {
		info = map[string]string{}
	}
	b, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("encode info: %w", err)
	}
	return b, nil
}

func decodeInfo(b []byte) (map[string]string, error) {
	info := map[string]string{}
	if len(b) == 0 {
		return info, nil
	}
	if err := json.Unmarshal(b, &info); err != nil {
		return nil, fmt.Errorf("decode info: %w", err)
	}
	return info, nil
}
