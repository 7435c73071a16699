// Package config reads the server configuration from the environment,
// or from the files goconfig is pointed at.
package config

import (
	"strconv"
	"time"

	"github.com/escalopa/goconfig"
	"github.com/rs/zerolog/log"
)

var cfg = goconfig.New()

// Get ...
func Get(key string) string {
	return cfg.Get(key)
}

// GetOrDefault ...
func GetOrDefault(key, def string) string {
	env := cfg.Get(key)
	if env != "" {
		return env
	}
	return def
}

// GetInt returns def when key is unset or not an integer.
func GetInt(key string, def int) int {
	return parse(key, def, strconv.Atoi)
}

// GetDuration accepts Go durations like "30s".
func GetDuration(key string, def time.Duration) time.Duration {
	return parse(key, def, time.ParseDuration)
}

func GetBool(key string, def bool) bool {
	return parse(key, def, strconv.ParseBool)
}

func parse[T any](key string, def T, fn func(string) (T, error)) T {
	raw := cfg.Get(key)
	if raw == "" {
		return def
	}
	v, err := fn(raw)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Str("value", raw).Msg("invalid config value, using default")
		return def
	}
	return v
}
