package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080/api/v1", c.APIBaseURL)
	assert.Equal(t, 10*time.Second, c.HTTPTimeout)
	assert.Equal(t, "https://api.mapbox.com", c.GeocoderEndpoint)
	assert.Equal(t, "Cundinamarca", c.GeocoderRegion)
	assert.Equal(t, 300*time.Millisecond, c.DebounceInterval)
	assert.Equal(t, "wheels.db", c.DatabasePath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceInterval)
}
