package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultStationsURL       = "https://dsc106.com/labs/lab07/data/bluebikes-stations.json"
	defaultTripsURL          = "https://dsc106.com/labs/lab07/data/bluebikes-traffic-2024-03.csv"
	defaultBostonLanesURL    = "https://bostonopendata-boston.opendata.arcgis.com/datasets/boston::existing-bike-network-2022.geojson"
	defaultCambridgeLanesURL = "https://data.cambridgema.gov/api/geospatial/hpnt-2n5v?method=export&format=GeoJSON"
)

// MapConfig describes the initial map view used for projection
type MapConfig struct {
	CenterLon float64 `yaml:"center_lon" validate:"gte=-180,lte=180"`
	CenterLat float64 `yaml:"center_lat" validate:"gte=-90,lte=90"`
	Zoom      float64 `yaml:"zoom" validate:"gte=5,lte=18"`
	Width     int     `yaml:"width" validate:"gt=0"`
	Height    int     `yaml:"height" validate:"gt=0"`
}

// Config holds all configuration for the stationflow CLI
type Config struct {
	// Data sources (URL or local path)
	StationsURL       string `yaml:"stations_url" validate:"required"`
	TripsURL          string `yaml:"trips_url" validate:"required"`
	BostonLanesURL    string `yaml:"boston_lanes_url"`
	CambridgeLanesURL string `yaml:"cambridge_lanes_url"`

	// 0 means no timeout
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds" validate:"gte=0"`

	Map MapConfig `yaml:"map"`

	// Output
	DefaultMinute int `yaml:"default_minute" validate:"gte=-1,lte=1439"`
	TopStations   int `yaml:"top_stations" validate:"gte=0"`
}

// HTTPTimeout returns the fetch timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Load reads .env files, then environment variables with defaults, then
// the optional YAML file at path. Keys present in the file override the
// environment. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	// Load .env if present; .env.local overrides it
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	cfg := &Config{
		StationsURL:       getEnv("STATIONS_URL", defaultStationsURL),
		TripsURL:          getEnv("TRIPS_URL", defaultTripsURL),
		BostonLanesURL:    getEnv("BOSTON_LANES_URL", defaultBostonLanesURL),
		CambridgeLanesURL: getEnv("CAMBRIDGE_LANES_URL", defaultCambridgeLanesURL),

		HTTPTimeoutSeconds: getEnvInt("HTTP_TIMEOUT_SECONDS", 0),

		Map: MapConfig{
			CenterLon: getEnvFloat("MAP_CENTER_LON", -71.09415),
			CenterLat: getEnvFloat("MAP_CENTER_LAT", 42.36027),
			Zoom:      getEnvFloat("MAP_ZOOM", 12),
			Width:     getEnvInt("MAP_WIDTH", 1200),
			Height:    getEnvInt("MAP_HEIGHT", 800),
		},

		DefaultMinute: getEnvInt("DEFAULT_MINUTE", -1),
		TopStations:   getEnvInt("TOP_STATIONS", 10),
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
