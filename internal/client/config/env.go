package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment,
// after loading a .env file when one exists in the working directory.
// A missing .env file is not an error.
//
// Recognized variables:
//
//	WHEELS_API_URL          backend REST root
//	WHEELS_HTTP_TIMEOUT     request timeout, e.g. "10s"
//	WHEELS_GEOCODER_URL     mapping provider base URL
//	WHEELS_GEOCODER_TOKEN   mapping provider access token
//	WHEELS_GEOCODER_BBOX    forward-geocoding bounding box
//	WHEELS_GEOCODER_REGION  required region for reverse results
//	WHEELS_DEBOUNCE         autocomplete debounce, e.g. "300ms"
//	WHEELS_DB_PATH          local database path
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString("WHEELS_API_URL", &cfg.APIBaseURL)
	setDuration("WHEELS_HTTP_TIMEOUT", &cfg.HTTPTimeout)
	setString("WHEELS_GEOCODER_URL", &cfg.GeocoderEndpoint)
	setString("WHEELS_GEOCODER_TOKEN", &cfg.GeocoderToken)
	setString("WHEELS_GEOCODER_BBOX", &cfg.GeocoderBBox)
	setString("WHEELS_GEOCODER_REGION", &cfg.GeocoderRegion)
	setDuration("WHEELS_DEBOUNCE", &cfg.DebounceInterval)
	setString("WHEELS_DB_PATH", &cfg.DatabasePath)
}
