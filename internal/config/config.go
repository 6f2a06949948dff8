// Package config resolves the recognizer's runtime configuration from a
// YAML file and PLATEGATE_* environment variables. Detection thresholds,
// the OCR engine location, and the schedule database address are all
// injected here; nothing is embedded as a literal in core logic.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full configuration surface of the recognizer.
type Config struct {
	Log struct {
		// Level is a zerolog level name: debug, info, warn, error.
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Detection struct {
		ScaleFactor  float64 `mapstructure:"scale_factor"`
		MinNeighbors int     `mapstructure:"min_neighbors"`
		MinArea      int     `mapstructure:"min_area"`
		// Selection names the candidate policy: "first" or "largest".
		Selection string `mapstructure:"selection"`
	} `mapstructure:"detection"`

	OCR struct {
		// TessdataPrefix locates Tesseract training data. Empty uses
		// the engine default.
		TessdataPrefix string `mapstructure:"tessdata_prefix"`
		Language       string `mapstructure:"language"`
	} `mapstructure:"ocr"`

	Database struct {
		// DSN is the postgres connection string for the slot-booking
		// database this core reads.
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`

	Artifacts struct {
		// Dir, when set, receives crop and preprocessed-image PNGs per
		// run. Empty disables artifact writing.
		Dir string `mapstructure:"dir"`
	} `mapstructure:"artifacts"`
}

// Load reads configuration from the given file path (optional; pass ""
// to use defaults and environment only) with PLATEGATE_* environment
// overrides, e.g. PLATEGATE_DETECTION_MIN_AREA=800.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("detection.scale_factor", 1.1)
	v.SetDefault("detection.min_neighbors", 4)
	v.SetDefault("detection.min_area", 500)
	v.SetDefault("detection.selection", "first")
	v.SetDefault("ocr.tessdata_prefix", "")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("database.dsn", "host=localhost port=5432 user=plategate dbname=slot_booking sslmode=disable")
	v.SetDefault("artifacts.dir", "")

	v.SetEnvPrefix("PLATEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
