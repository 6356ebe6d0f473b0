package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported text-generation provider types
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all application configuration
type Config struct {
	Env         string
	LogLevel    string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	AI          AIConfig
	Search      SearchConfig
	Impressions ImpressionConfig
	Aspects     AspectConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// ProviderConfig describes one text-generation backend
type ProviderConfig struct {
	Type    string
	APIKey  string
	Model   string
	BaseURL string
}

// Enabled reports whether the provider has enough configuration to be used
func (p ProviderConfig) Enabled() bool {
	return p.Type != "" && p.APIKey != ""
}

// AIConfig holds the primary/fallback provider chain configuration
type AIConfig struct {
	Primary           ProviderConfig
	Fallback          ProviderConfig
	Timeout           time.Duration
	MaxOutputTokens   int
	RequestsPerMinute float64
	Burst             int
	CacheEnabled      bool
	CacheTTLSeconds   int
}

// SearchConfig holds query understanding settings
type SearchConfig struct {
	// SynonymsPath optionally points at a JSON file of extra lay-term synonyms
	SynonymsPath string
}

// ImpressionConfig holds the background impression writer settings
type ImpressionConfig struct {
	Workers      int
	QueueSize    int
	WriteTimeout time.Duration
}

// AspectConfig holds review aspect extraction settings
type AspectConfig struct {
	MinTextLength   int
	BackfillWorkers int
	BackfillBatch   int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:    time.Duration(getEnvAsInt("SERVER_READ_TIMEOUT", 15)) * time.Second,
			WriteTimeout:   time.Duration(getEnvAsInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "review_platform"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvAsInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			PoolSize: getEnvAsInt("REDIS_POOL_SIZE", 10),
		},
		AI: AIConfig{
			Primary: ProviderConfig{
				Type:    strings.ToLower(getEnv("AI_PRIMARY_PROVIDER", ProviderOpenAI)),
				APIKey:  getEnv("AI_PRIMARY_API_KEY", ""),
				Model:   getEnv("AI_PRIMARY_MODEL", "gpt-4o-mini"),
				BaseURL: getEnv("AI_PRIMARY_BASE_URL", ""),
			},
			Fallback: ProviderConfig{
				Type:    strings.ToLower(getEnv("AI_FALLBACK_PROVIDER", ProviderAnthropic)),
				APIKey:  getEnv("AI_FALLBACK_API_KEY", ""),
				Model:   getEnv("AI_FALLBACK_MODEL", "claude-haiku-4-5-20251001"),
				BaseURL: getEnv("AI_FALLBACK_BASE_URL", ""),
			},
			Timeout:           time.Duration(getEnvAsInt("AI_TIMEOUT_SECONDS", 15)) * time.Second,
			MaxOutputTokens:   getEnvAsInt("AI_MAX_OUTPUT_TOKENS", 600),
			RequestsPerMinute: getEnvAsFloat("AI_REQUESTS_PER_MINUTE", 120),
			Burst:             getEnvAsInt("AI_BURST", 5),
			CacheEnabled:      getEnvAsBool("AI_CACHE_ENABLED", true),
			CacheTTLSeconds:   getEnvAsInt("AI_CACHE_TTL_SECONDS", 3600),
		},
		Search: SearchConfig{
			SynonymsPath: getEnv("SEARCH_SYNONYMS_PATH", ""),
		},
		Impressions: ImpressionConfig{
			Workers:      getEnvAsInt("IMPRESSION_WORKERS", 4),
			QueueSize:    getEnvAsInt("IMPRESSION_QUEUE_SIZE", 256),
			WriteTimeout: time.Duration(getEnvAsInt("IMPRESSION_WRITE_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Aspects: AspectConfig{
			MinTextLength:   getEnvAsInt("ASPECT_MIN_TEXT_LENGTH", 20),
			BackfillWorkers: getEnvAsInt("ASPECT_BACKFILL_WORKERS", 4),
			BackfillBatch:   getEnvAsInt("ASPECT_BACKFILL_BATCH_SIZE", 100),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "review-platform"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks provider settings that would otherwise fail at first request
func (c *Config) Validate() error {
	for name, p := range map[string]ProviderConfig{"AI_PRIMARY": c.AI.Primary, "AI_FALLBACK": c.AI.Fallback} {
		if p.Type == "" {
			continue
		}
		if p.Type != ProviderOpenAI && p.Type != ProviderAnthropic {
			return fmt.Errorf("%s_PROVIDER: unsupported provider type %q", name, p.Type)
		}
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT_SECONDS must be positive")
	}
	if c.Impressions.Workers <= 0 || c.Impressions.QueueSize <= 0 {
		return fmt.Errorf("IMPRESSION_WORKERS and IMPRESSION_QUEUE_SIZE must be positive")
	}
	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
