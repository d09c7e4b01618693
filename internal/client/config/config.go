// Package config holds runtime settings for the Wheels CLI.
//
// Sources are applied in order, later ones winning:
// defaults -> .env file / environment -> JSON config file -> flags.
package config

import "time"

type Config struct {
	// APIBaseURL is the backend REST root, including the version prefix.
	APIBaseURL string
	// HTTPTimeout bounds every backend request.
	HTTPTimeout time.Duration

	// Geocoder settings for the mapping provider.
	GeocoderEndpoint string
	GeocoderToken    string
	GeocoderBBox     string
	GeocoderRegion   string
	// DebounceInterval is the autocomplete debounce delay.
	DebounceInterval time.Duration

	// DatabasePath is the local sqlite file holding session and lockout state.
	DatabasePath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api/v1"
	c.HTTPTimeout = 10 * time.Second
	c.GeocoderEndpoint = "https://api.mapbox.com"
	c.GeocoderToken = ""
	c.GeocoderBBox = "-75.0445,3.7135,-73.2520,5.5050"
	c.GeocoderRegion = "Cundinamarca"
	c.DebounceInterval = 300 * time.Millisecond
	c.DatabasePath = "wheels.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (optionally a .env file), a JSON file (if given), and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
