package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all dashboard settings, populated from environment variables.
type Config struct {
	Host  string
	Port  int
	Debug bool

	DataPath  string
	DataSheet string

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Mapbox geocoding and map tiles.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Site summary publishing; disabled when no brokers are set.
	KafkaBrokers   []string
	KafkaSiteTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	port, err := strconv.Atoi(sharedcfg.EnvOrDefault("PORT", "8050"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, errors.New("invalid PORT")
	}

	debug, err := parseBool("DEBUG")
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s"))
	if err != nil || mapboxTimeout <= 0 {
		return nil, errors.New("invalid MAPBOX_TIMEOUT")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		Host:  sharedcfg.EnvOrDefault("HOST", "127.0.0.1"),
		Port:  port,
		Debug: debug,

		DataPath:  sharedcfg.EnvOrDefault("DATA_PATH", "hwo_data_1223.csv"),
		DataSheet: os.Getenv("DATA_SHEET"),

		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),

		KafkaBrokers:   brokers,
		KafkaSiteTopic: sharedcfg.EnvOrDefault("KAFKA_SITE_TOPIC", "water-quality-site-averages"),
	}

	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if cfg.PublishEnabled() && cfg.KafkaSiteTopic == "" {
		return nil, errors.New("KAFKA_SITE_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// PublishEnabled reports whether site averages should be written to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
