// Package config handles configuration for the server component. Values
// are layered: defaults, then an optional JSON file, then TGAUTH_*
// environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the tgauth server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - MetricsAddr: bind address for /metrics; empty disables it.
//   - DatabaseDriver / DatabaseDSN: "pgx" (PostgreSQL) or "sqlite".
//   - SecretKey / AccessTokenValidityDuration: JWT signing key and lifetime.
//   - Enabled: master switch for Telegram login.
//   - BotName: widget bot username, without the leading '@'.
//   - BotToken / BotTokenFile / BotTokenS3Key: where the bot token comes from.
//   - S3*: object store holding the bot token when BotTokenS3Key is set.
//   - MaxAuthAge / MaxClockSkew: freshness window and future-date bound.
//   - Debug: log every validation step.
type Config struct {
	EndpointAddrGRPC            string        `env:"GRPC_ADDR"`
	MetricsAddr                 string        `env:"METRICS_ADDR"`
	DatabaseDriver              string        `env:"DATABASE_DRIVER"`
	DatabaseDSN                 string        `env:"DATABASE_DSN"`
	SecretKey                   string        `env:"SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"ACCESS_TOKEN_TTL"`
	Enabled                     bool          `env:"ENABLED"`
	BotName                     string        `env:"BOT_NAME"`
	BotToken                    string        `env:"BOT_TOKEN"`
	BotTokenFile                string        `env:"BOT_TOKEN_FILE"`
	BotTokenS3Key               string        `env:"BOT_TOKEN_S3_KEY"`
	S3RootUser                  string        `env:"S3_ROOT_USER"`
	S3RootPassword              string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket                    string        `env:"S3_BUCKET"`
	S3Region                    string        `env:"S3_REGION"`
	S3BaseEndpoint              string        `env:"S3_BASE_ENDPOINT"`
	MaxAuthAge                  time.Duration `env:"MAX_AUTH_AGE"`
	MaxClockSkew                time.Duration `env:"MAX_CLOCK_SKEW"`
	Debug                       bool          `env:"DEBUG"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.MetricsAddr = ""
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "tgauth.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.Enabled = true
	c.S3Bucket = "tgauth"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.MaxAuthAge = 24 * time.Hour
	c.MaxClockSkew = 0
}

// LoadConfig builds a Config from os.Args and the environment.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load builds a Config from args and the environment. Invalid input
// panics, as with the flag package's PanicOnError.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}

// Validate reports settings that keep Telegram login from working. A
// disabled configuration is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	var errs []error
	if c.BotName == "" {
		errs = append(errs, errors.New("bot name is not set"))
	}
	if c.BotToken == "" && c.BotTokenFile == "" && c.BotTokenS3Key == "" {
		errs = append(errs, errors.New("no bot token source configured"))
	}
	if c.BotTokenS3Key != "" && c.S3Bucket == "" {
		errs = append(errs, errors.New("bot token s3 key set without bucket"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database dsn is not set"))
	}
	switch c.DatabaseDriver {
	case "pgx", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.DatabaseDriver))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("jwt secret key is not set"))
	}
	if c.MaxAuthAge <= 0 {
		errs = append(errs, errors.New("max auth age must be positive"))
	}
	return errors.Join(errs...)
}
