package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"test"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)
	cfg := LoadConfig()
	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, "", cfg.DatabaseDSN)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenValidityDuration)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	withArgs(t, "-a", ":9090", "-s", "override", "-t", "5")
	cfg := LoadConfig()
	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "override", cfg.SecretKey)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	body := `{
		"endpoint_addr": ":7070",
		"database_dsn": "postgres://x",
		"secret_key": "fromjson",
		"access_token_validity_duration": "30m",
		"refresh_token_validity_duration": "48h"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	withArgs(t, "-c", path)
	cfg := LoadConfig()
	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
	assert.Equal(t, "fromjson", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTokenValidityDuration)
}

func TestLoadConfig_FlagsBeatJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	body := `{"endpoint_addr": ":7070", "secret_key": "fromjson",
		"access_token_validity_duration": "30m",
		"refresh_token_validity_duration": "48h"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	withArgs(t, "-c", path, "-a", ":6060")
	cfg := LoadConfig()
	assert.Equal(t, ":6060", cfg.EndpointAddr, "flags take precedence over JSON")
	assert.Equal(t, "fromjson", cfg.SecretKey)
}
