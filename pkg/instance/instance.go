package instance

import (
	"os"

	"github.com/angelmondragon/rocketshoes-cart/pkg/env"
)

// GetID identifies this process in logs and published notifications.
// ROCKETSHOES_INSTANCE_ID wins, then the platform DYNO name, then the hostname.
func GetID() string {
	if id := env.Get("ROCKETSHOES_INSTANCE_ID", ""); id != "" {
		return id
	}
	if id := env.Get("DYNO", ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
