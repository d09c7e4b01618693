package config

import (
	"encoding/json"
	"os"

	"github.com/wheelsapp/wheels-cli/internal/flagx"
	"github.com/wheelsapp/wheels-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like
// "300ms" or as integer nanoseconds. Absent fields leave the running config
// untouched.
type JsonConfig struct {
	APIBaseURL       *string         `json:"api_base_url"`
	HTTPTimeout      *timex.Duration `json:"http_timeout"`
	GeocoderEndpoint *string         `json:"geocoder_endpoint"`
	GeocoderToken    *string         `json:"geocoder_token"`
	GeocoderBBox     *string         `json:"geocoder_bbox"`
	GeocoderRegion   *string         `json:"geocoder_region"`
	DebounceInterval *timex.Duration `json:"debounce_interval"`
	DatabasePath     *string         `json:"database_path"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flag. No flag, no JSON. Read or unmarshal errors panic;
// a broken explicit config file should not be silently ignored.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.HTTPTimeout != nil {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	if jc.GeocoderEndpoint != nil {
		cfg.GeocoderEndpoint = *jc.GeocoderEndpoint
	}
	if jc.GeocoderToken != nil {
		cfg.GeocoderToken = *jc.GeocoderToken
	}
	if jc.GeocoderBBox != nil {
		cfg.GeocoderBBox = *jc.GeocoderBBox
	}
	if jc.GeocoderRegion != nil {
		cfg.GeocoderRegion = *jc.GeocoderRegion
	}
	if jc.DebounceInterval != nil {
		cfg.DebounceInterval = jc.DebounceInterval.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
}
