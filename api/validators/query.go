package validators

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sweetslice/storefront/pkg/validation"
)

// queryParam parses the named query value, returning fallback when it is absent or blank.
// A value that fails parse becomes a validation error carrying problem for that key.
func queryParam[T any](r *http.Request, key string, fallback T, parse func(string) (T, string)) (T, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	value, problem := parse(raw)
	if problem != "" {
		var zero T
		fields := validation.Fields{}
		fields.Add(key, problem)
		return zero, fields.Err()
	}
	return value, nil
}

// ParseQueryInt reads an integer within [min, max].
func ParseQueryInt(r *http.Request, key string, fallback, min, max int) (int, error) {
	return queryParam(r, key, fallback, func(raw string) (int, string) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, "must be numeric"
		}
		if n < min || n > max {
			return 0, fmt.Sprintf("must be between %d and %d", min, max)
		}
		return n, ""
	})
}

func ParseQueryBool(r *http.Request, key string, fallback bool) (bool, error) {
	return queryParam(r, key, fallback, func(raw string) (bool, string) {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return false, "must be true or false"
		}
		return b, ""
	})
}
