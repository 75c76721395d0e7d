package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Index is the search backend configuration
	Index IndexConfig `mapstructure:"index"`

	// Expansion configuration
	Expansion ExpansionConfig `mapstructure:"expansion"`

	// Cache configuration
	Cache CacheConfig `mapstructure:"cache"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	// Alert configuration
	Alert AlertConfig `mapstructure:"alert"`

	// CircuitBreaker configuration
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// IndexConfig holds the search backend settings: the host/index pair and
// the fixed result-size cap.
type IndexConfig struct {
	Addresses     []string `mapstructure:"addresses"`
	Index         string   `mapstructure:"index"`
	StateIndex    string   `mapstructure:"state_index"`
	Size          int      `mapstructure:"size"`
	Username      string   `mapstructure:"username"`
	Password      string   `mapstructure:"password"`
	APIKey        string   `mapstructure:"api_key"`
	Timeout       int      `mapstructure:"timeout"` // in seconds
	SkipTLSVerify bool     `mapstructure:"skip_tls_verify"`
}

// ExpansionConfig bounds graph expansion work.
type ExpansionConfig struct {
	// PoolSize is the worker pool size for per-entity fan-out.
	PoolSize int `mapstructure:"pool_size"`
	// FrontierDepth bounds how deep the flatten pass collecting the
	// expansion frontier descends.
	FrontierDepth int `mapstructure:"frontier_depth"`
}

// CacheConfig holds the query-result cache settings.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Path     string `mapstructure:"path"`
	InMemory bool   `mapstructure:"in_memory"`
	TTL      int    `mapstructure:"ttl"` // in seconds
}

// TelemetryConfig holds telemetry configuration
type TelemetryConfig struct {
	ParquetPath string `mapstructure:"parquet_path"`
}

// AlertConfig holds configuration for alerting
type AlertConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	SMTPHost string   `mapstructure:"smtp_host"`
	SMTPPort int      `mapstructure:"smtp_port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from"`
	To       []string `mapstructure:"to"`
}

// CircuitBreakerConfig holds configuration for circuit breaking
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// CacheTTL returns the cache TTL as a duration.
func (c CacheConfig) CacheTTL() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// RequestTimeout returns the backend timeout as a duration.
func (c IndexConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Index defaults
	viper.SetDefault("index.addresses", []string{"http://localhost:9200"})
	viper.SetDefault("index.index", "factors")
	viper.SetDefault("index.state_index", "factor_state")
	viper.SetDefault("index.size", 500)
	viper.SetDefault("index.timeout", 160)

	// Expansion defaults
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	viper.SetDefault("expansion.pool_size", poolSize)
	viper.SetDefault("expansion.frontier_depth", 10)

	// Cache defaults
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.ttl", 300)
	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("cache.path", fmt.Sprintf("%s/.factorlink/cache", home))
		viper.SetDefault("telemetry.parquet_path", fmt.Sprintf("%s/.factorlink/telemetry", home))
	}

	// Circuit breaker defaults
	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.max_requests", 1)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if hosts := os.Getenv("FACTORLINK_INDEX_ADDRESSES"); hosts != "" {
		config.Index.Addresses = strings.Split(hosts, ",")
	}
	if idx := os.Getenv("FACTORLINK_INDEX"); idx != "" {
		config.Index.Index = idx
	}
	if idx := os.Getenv("FACTORLINK_STATE_INDEX"); idx != "" {
		config.Index.StateIndex = idx
	}
	if key := os.Getenv("ELASTIC_API_KEY"); key != "" {
		config.Index.APIKey = key
	}
	if user := os.Getenv("ELASTIC_USERNAME"); user != "" {
		config.Index.Username = user
	}
	if pass := os.Getenv("ELASTIC_PASSWORD"); pass != "" {
		config.Index.Password = pass
	}

	// Server settings
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		viper.Set("server.port", port)
	}

	// Cache settings
	if path := os.Getenv("FACTORLINK_CACHE_PATH"); path != "" {
		config.Cache.Path = path
	}

	// Telemetry settings
	if path := os.Getenv("TELEMETRY_PARQUET_PATH"); path != "" {
		config.Telemetry.ParquetPath = path
	}
}
