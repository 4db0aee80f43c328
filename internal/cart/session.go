package cart

import (
	"regexp"

	"github.com/google/uuid"
)

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidSession reports whether s can be used as a cart session id (and therefore as a
// file name or redis key segment).
func ValidSession(s string) bool {
	return sessionPattern.MatchString(s)
}

// NewSession returns a fresh random session id.
func NewSession() string {
	return uuid.NewString()
}
