package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/knapsack/internal/itemsource"
)

const (
	defaultPort              = "8080"
	defaultItemsFile         = "knapsack.txt"
	defaultCapacity          = 50
	defaultMaxBacktrackItems = 24
	defaultMaxCapacity       = 1_000_000
	defaultMaxTableCells     = 50_000_000
	defaultLogLevel          = "info"
	defaultRateLimitRPS      = 25.0
	defaultRateLimitBurst    = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string        `yaml:"port"`
	ItemsFile            string        `yaml:"items_file"`
	ItemCount            int           `yaml:"item_count"`
	Capacity             int           `yaml:"capacity"`
	MaxBacktrackItems    int           `yaml:"max_backtrack_items"`
	MaxCapacity          int           `yaml:"max_capacity"`
	MaxTableCells        int           `yaml:"max_table_cells"`
	LogLevel             string        `yaml:"log_level"`
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    time.Duration `yaml:"read_header_timeout"`
	WriteTimeout         time.Duration `yaml:"write_timeout"`
	IdleTimeout          time.Duration `yaml:"idle_timeout"`
	EnableRequestLogging bool          `yaml:"enable_request_logging"`
	RateLimitRPS         float64       `yaml:"-"`
	RateLimitBurst       int           `yaml:"-"`
}

// yamlConfig represents the YAML configuration file structure. Pointers
// distinguish absent keys from explicit zero values.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	ItemsFile            string        `yaml:"items_file"`
	ItemCount            *int          `yaml:"item_count"`
	Capacity             *int          `yaml:"capacity"`
	MaxBacktrackItems    *int          `yaml:"max_backtrack_items"`
	MaxCapacity          *int          `yaml:"max_capacity"`
	MaxTableCells        *int          `yaml:"max_table_cells"`
	LogLevel             string        `yaml:"log_level"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile        string
	Port              *string
	ItemsFile         *string
	ItemCount         *int
	Capacity          *int
	MaxBacktrackItems *int
	LogLevel          *string
	RateLimitRPS      *float64
	RateLimitBurst    *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Environment variables override defaults
	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	// YAML file overrides environment
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	// CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		ItemsFile:            defaultItemsFile,
		ItemCount:            itemsource.AllItems,
		Capacity:             defaultCapacity,
		MaxBacktrackItems:    defaultMaxBacktrackItems,
		MaxCapacity:          defaultMaxCapacity,
		MaxTableCells:        defaultMaxTableCells,
		LogLevel:             defaultLogLevel,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}
	if yamlCfg.ItemsFile != "" {
		cfg.ItemsFile = yamlCfg.ItemsFile
	}
	if yamlCfg.ItemCount != nil {
		cfg.ItemCount = *yamlCfg.ItemCount
	}
	if yamlCfg.Capacity != nil {
		cfg.Capacity = *yamlCfg.Capacity
	}
	if yamlCfg.MaxBacktrackItems != nil {
		cfg.MaxBacktrackItems = *yamlCfg.MaxBacktrackItems
	}
	if yamlCfg.MaxCapacity != nil {
		cfg.MaxCapacity = *yamlCfg.MaxCapacity
	}
	if yamlCfg.MaxTableCells != nil {
		cfg.MaxTableCells = *yamlCfg.MaxTableCells
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	durations := []struct {
		raw    string
		target *time.Duration
		key    string
	}{
		{yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod, "shutdown_grace_period"},
		{yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout, "read_header_timeout"},
		{yamlCfg.WriteTimeout, &cfg.WriteTimeout, "write_timeout"},
		{yamlCfg.IdleTimeout, &cfg.IdleTimeout, "idle_timeout"},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.target = parsed
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}
	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}
	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}
	if path := strings.TrimSpace(os.Getenv("ITEMS_FILE")); path != "" {
		cfg.ItemsFile = path
	}
	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	ints := []struct {
		name   string
		target *int
	}{
		{"ITEM_COUNT", &cfg.ItemCount},
		{"CAPACITY", &cfg.Capacity},
		{"MAX_BACKTRACK_ITEMS", &cfg.MaxBacktrackItems},
		{"MAX_CAPACITY", &cfg.MaxCapacity},
		{"MAX_TABLE_CELLS", &cfg.MaxTableCells},
		{"RATE_LIMIT_BURST", &cfg.RateLimitBurst},
	}
	for _, env := range ints {
		raw := strings.TrimSpace(os.Getenv(env.name))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", env.name, raw)
		}
		*env.target = value
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		value, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS must be a number, got %q", rps)
		}
		cfg.RateLimitRPS = value
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}
	if overrides.ItemsFile != nil && *overrides.ItemsFile != "" {
		cfg.ItemsFile = *overrides.ItemsFile
	}
	if overrides.ItemCount != nil {
		cfg.ItemCount = *overrides.ItemCount
	}
	if overrides.Capacity != nil {
		cfg.Capacity = *overrides.Capacity
	}
	if overrides.MaxBacktrackItems != nil {
		cfg.MaxBacktrackItems = *overrides.MaxBacktrackItems
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.RateLimitRPS != nil {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}
	if overrides.RateLimitBurst != nil {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.Capacity < 0 {
		return fmt.Errorf("capacity must be >= 0, got %d", cfg.Capacity)
	}
	if cfg.ItemCount < itemsource.AllItems {
		return fmt.Errorf("item count must be >= 0 (or %d for all), got %d", itemsource.AllItems, cfg.ItemCount)
	}
	if cfg.MaxBacktrackItems < 0 {
		return fmt.Errorf("max backtrack items must be >= 0, got %d", cfg.MaxBacktrackItems)
	}
	if cfg.MaxCapacity < 0 {
		return fmt.Errorf("max capacity must be >= 0, got %d", cfg.MaxCapacity)
	}
	if cfg.MaxTableCells < 0 {
		return fmt.Errorf("max table cells must be >= 0, got %d", cfg.MaxTableCells)
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}
