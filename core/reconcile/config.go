package reconcile

import "time"

// Config holds the account settings of the engine.
type Config struct {
	// SteamID is the account whose listings are managed.
	SteamID string `mapstructure:"steamid" default:""`
	// Token is the listing service access token registered during Init.
	Token string `mapstructure:"token" default:""`
	// UserAgent is reported when registering the agent.
	UserAgent string `mapstructure:"user_agent" default:"listing-manager"`
	// FlushIntervalMillis is how often the mutation queue is flushed.
	FlushIntervalMillis int `mapstructure:"flush_interval_ms" default:"1000"`
	// InventoryRefreshSeconds is how often an inventory refresh is requested.
	InventoryRefreshSeconds int `mapstructure:"inventory_refresh_seconds" default:"60"`
}

// FlushInterval returns the queue flush interval.
func (c Config) FlushInterval() time.Duration {
	return time.Duration(c.FlushIntervalMillis) * time.Millisecond
}

// InventoryRefreshInterval returns the inventory refresh interval.
func (c Config) InventoryRefreshInterval() time.Duration {
	return time.Duration(c.InventoryRefreshSeconds) * time.Second
}
