package config

import (
	"os"
	"strconv"
)

// applyEnvOverrides copies ECOSHARE_* environment variables onto cfg.
// Unparseable values are ignored so a bad variable never blocks startup.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Cache.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil && ttl >= 0 {
			cfg.Cache.TTLSeconds = ttl
		}
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
}
