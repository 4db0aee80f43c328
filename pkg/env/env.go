// Package env reads the few settings needed before config.Load has run.
package env

import (
	"os"
	"strconv"
	"strings"
)

func lookup(key string) (string, bool) {
	raw, ok := os.LookupEnv(key)
	raw = strings.TrimSpace(raw)
	return raw, ok && raw != ""
}

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if raw, ok := lookup(key); ok {
		return raw
	}
	return fallback
}

// Bool is Get for booleans; unparsable values also yield fallback.
func Bool(key string, fallback bool) bool {
	raw, ok := lookup(key)
	if !ok {
		return fallback
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return fallback
}
