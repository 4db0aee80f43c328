package instance

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

const EnvInstanceID = "SWEETSLICE_INSTANCE_ID"

// GetID identifies this API process on the shared cart event channel. It prefers
// SWEETSLICE_INSTANCE_ID, then host and pid, then a random id.
func GetID() string {
	if id := os.Getenv(EnvInstanceID); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return fmt.Sprintf("%s-%d", host, os.Getpid())
	}
	return uuid.NewString()
}
