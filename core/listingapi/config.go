package listingapi

import (
	"fmt"
	"time"
)

// Config holds the address of the listing service.
type Config struct {
	// Host is the listing service hostname.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the listing service port.
	Port int `mapstructure:"port" default:"3000"`
	// TimeoutSeconds bounds every HTTP call made to the service.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// BaseURL returns the root URL of the listing service.
func (c Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

// Timeout returns the per-request timeout. Zero disables it.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
