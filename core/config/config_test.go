package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1", cfg.Manager.Host)
	assert.Equal(t, 3000, cfg.Manager.Port)
	assert.Equal(t, 1000, cfg.Listings.FlushIntervalMillis)
	assert.Equal(t, 60, cfg.Listings.InventoryRefreshSeconds)
	assert.Equal(t, "listing-manager", cfg.Listings.UserAgent)
	assert.Equal(t, "storage", cfg.Schema.Source)
	assert.Equal(t, "schema/items.json", cfg.Schema.Object)
	assert.Equal(t, "listing-manager", cfg.Storage.Bucket)
	assert.Equal(t, "listings", cfg.Database.Name)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("LISTINGS_STEAMID", "76561198000000000")
	t.Setenv("MANAGER_PORT", "4100")
	t.Setenv("SCHEMA_SOURCE", "database")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "76561198000000000", cfg.Listings.SteamID)
	assert.Equal(t, 4100, cfg.Manager.Port)
	assert.Equal(t, "database", cfg.Schema.Source)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "LISTINGS_TOKEN=from-dotenv\nSERVER_API_KEY=secret\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("LISTINGS_TOKEN")
		os.Unsetenv("SERVER_API_KEY")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Listings.Token)
	assert.Equal(t, "secret", cfg.Server.ApiKey)
}
