// Package secrets looks up the bot token the widget signatures are keyed
// with. The token may be configured inline, read from a file or fetched
// from an S3-compatible object store.
package secrets

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/common"
)

// Source returns the current bot token. An empty token is reported as
// common.ErrorSecretUnavailable.
type Source interface {
	Lookup(ctx context.Context) ([]byte, error)
}

// Static is a token held in memory.
type Static []byte

func (s Static) Lookup(context.Context) ([]byte, error) {
	if len(s) == 0 {
		return nil, common.ErrorSecretUnavailable
	}
	return bytes.Clone(s), nil
}

// File reads the token from a file on every lookup. Surrounding whitespace
// is trimmed.
type File string

func (f File) Lookup(context.Context) ([]byte, error) {
	b, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorSecretUnavailable, err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, common.ErrorSecretUnavailable
	}
	return b, nil
}

// Cached keeps the token of an underlying Source for ttl.
type Cached struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	token   []byte
	expires time.Time
}

func NewCached(src Source, ttl time.Duration) *Cached {
	return &Cached{src: src, ttl: ttl, now: time.Now}
}

func (c *Cached) Lookup(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != nil && c.now().Before(c.expires) {
		return bytes.Clone(c.token), nil
	}

	token, err := c.src.Lookup(ctx)
	if err != nil {
		return nil, err
	}
	c.token = bytes.Clone(token)
	c.expires = c.now().Add(c.ttl)
	return token, nil
}
