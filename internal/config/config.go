package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	BaseURL       string
	StoreURL      string
	StoreToken    string
	Password      string
	GeoEndpoint   string
	GeoTimeout    time.Duration
	GeoIPPath     string
	UploadDir     string
	FlushInterval time.Duration
	BufferSize    int
	CacheSize     int
}

func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	password := os.Getenv("APPLINK_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("APPLINK_PASSWORD is required")
	}

	storeURL := os.Getenv("APPLINK_STORE_URL")
	if storeURL == "" {
		return nil, fmt.Errorf("APPLINK_STORE_URL is required")
	}

	cfg := &Config{
		Port:          envOrDefault("APPLINK_PORT", "8080"),
		BaseURL:       strings.TrimRight(envOrDefault("APPLINK_BASE_URL", "http://localhost:8080"), "/"),
		StoreURL:      storeURL,
		StoreToken:    os.Getenv("APPLINK_STORE_TOKEN"),
		Password:      password,
		GeoEndpoint:   envOrDefault("APPLINK_GEO_ENDPOINT", "https://ipapi.co"),
		GeoTimeout:    parseDuration("APPLINK_GEO_TIMEOUT", 3*time.Second),
		GeoIPPath:     os.Getenv("APPLINK_GEOIP_PATH"),
		UploadDir:     envOrDefault("APPLINK_UPLOAD_DIR", "./uploads"),
		FlushInterval: parseDuration("APPLINK_FLUSH_INTERVAL", 10*time.Second),
		BufferSize:    parseInt("APPLINK_BUFFER_SIZE", 10000),
		CacheSize:     parseInt("APPLINK_CACHE_SIZE", 10000),
	}

	if cfg.GeoTimeout <= 0 {
		return nil, fmt.Errorf("APPLINK_GEO_TIMEOUT must be positive")
	}
	if cfg.FlushInterval <= 0 {
		return nil, fmt.Errorf("APPLINK_FLUSH_INTERVAL must be positive")
	}
	if cfg.BufferSize <= 0 {
		return nil, fmt.Errorf("APPLINK_BUFFER_SIZE must be positive")
	}
	if cfg.CacheSize <= 0 {
		return nil, fmt.Errorf("APPLINK_CACHE_SIZE must be positive")
	}

	return cfg, nil
}

// LandingURL returns the public visitor URL for a link id.
func (c *Config) LandingURL(id string) string {
	return c.BaseURL + "/l/" + id
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
