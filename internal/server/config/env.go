package config

import "github.com/caarlos0/env/v11"

const envPrefix = "TGAUTH_"

// parseEnv overlays TGAUTH_* environment variables. Unset variables keep
// the current value.
func parseEnv(config *Config) {
	if err := env.ParseWithOptions(config, env.Options{Prefix: envPrefix}); err != nil {
		panic(err)
	}
}
