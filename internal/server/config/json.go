package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tgauth/internal/flagx"
	"github.com/dmitrijs2005/tgauth/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations use timex.Duration,
// so "24h" and integer nanoseconds are both accepted. Pointer fields tell
// an explicit false apart from an absent key.
type JsonConfig struct {
	EndpointAddrGRPC            string          `json:"endpoint_addr_grpc"`
	MetricsAddr                 string          `json:"metrics_addr"`
	DatabaseDriver              string          `json:"database_driver"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	Enabled                     *bool           `json:"telegram_auth_enabled"`
	BotName                     string          `json:"telegram_auth_bot_name"`
	BotToken                    string          `json:"telegram_auth_bot_token"`
	BotTokenFile                string          `json:"telegram_auth_bot_token_file"`
	BotTokenS3Key               string          `json:"telegram_auth_bot_token_s3_key"`
	S3RootUser                  string          `json:"s3_root_user"`
	S3RootPassword              string          `json:"s3_root_password"`
	S3Bucket                    string          `json:"s3_bucket"`
	S3Region                    string          `json:"s3_region"`
	S3BaseEndpoint              string          `json:"s3_base_endpoint"`
	MaxAuthAge                  *timex.Duration `json:"max_auth_age"`
	MaxClockSkew                *timex.Duration `json:"max_clock_skew"`
	Debug                       *bool           `json:"telegram_auth_debug"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// key present in it onto config. A missing file or invalid JSON panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.BotName, c.BotName)
	setString(&config.BotToken, c.BotToken)
	setString(&config.BotTokenFile, c.BotTokenFile)
	setString(&config.BotTokenS3Key, c.BotTokenS3Key)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.MaxAuthAge != nil {
		config.MaxAuthAge = c.MaxAuthAge.Duration
	}
	if c.MaxClockSkew != nil {
		config.MaxClockSkew = c.MaxClockSkew.Duration
	}
	if c.Enabled != nil {
		config.Enabled = *c.Enabled
	}
	if c.Debug != nil {
		config.Debug = *c.Debug
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
