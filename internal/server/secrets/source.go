package secrets

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/server/config"
)

const remoteCacheTTL = 5 * time.Minute

// FromConfig picks the token source: an S3 object when BotTokenS3Key is
// set, then BotTokenFile, then the inline BotToken.
func FromConfig(ctx context.Context, cfg *config.Config) (Source, error) {
	switch {
	case cfg.BotTokenS3Key != "":
		s, err := NewS3(ctx, S3Options{
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Key:          cfg.BotTokenS3Key,
		})
		if err != nil {
			return nil, err
		}
		return NewCached(s, remoteCacheTTL), nil
	case cfg.BotTokenFile != "":
		return File(cfg.BotTokenFile), nil
	default:
		return Static(cfg.BotToken), nil
	}
}
