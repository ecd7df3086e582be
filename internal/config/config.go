package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Бэкенды хранилища состояния
const (
	StateBackendMemory   = "memory"
	StateBackendSQLite   = "sqlite"
	StateBackendPostgres = "postgres"
	StateBackendRedis    = "redis"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort  string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	ClientURL string `env:"CLIENT_URL" envDefault:"http://localhost:5173"`

	// State store Config
	StateBackend    string `env:"STATE_BACKEND" envDefault:"sqlite"`
	StateSQLitePath string `env:"STATE_SQLITE_PATH" envDefault:"data/state.db"`
	DatabaseURL     string `env:"DATABASE_URL"`

	// Redis Config
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass     string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// AI Config
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	AIPlanModel  string        `env:"AI_PLAN_MODEL" envDefault:"gemini-2.5-pro"`
	AIFastModel  string        `env:"AI_FAST_MODEL" envDefault:"gemini-2.5-flash"`
	AITimeout    time.Duration `env:"AI_TIMEOUT" envDefault:"60s"`

	// Crisis data Config
	USGSBaseURL          string `env:"USGS_BASE_URL" envDefault:"https://earthquake.usgs.gov/fdsnws/event/1/query"`
	WeatherAlertsEnabled bool   `env:"WEATHER_ALERTS_ENABLED" envDefault:"false"`

	// Simulation Config
	SimulationInterval time.Duration `env:"SIMULATION_INTERVAL" envDefault:"5s"`
	SimulationSeed     int64         `env:"SIMULATION_SEED" envDefault:"0"`

	// Dashboard Config
	NotificationTTL    time.Duration `env:"NOTIFICATION_TTL" envDefault:"7s"`
	GeolocationTimeout time.Duration `env:"GEOLOCATION_TIMEOUT" envDefault:"10s"`
	MapsAPIKey         string        `env:"MAPS_API_KEY"`

	// Connectivity Config
	ConnectivityProbeAddr    string `env:"CONNECTIVITY_PROBE_ADDR" envDefault:"earthquake.usgs.gov:443"`
	ConnectivityAssumeOnline bool   `env:"CONNECTIVITY_ASSUME_ONLINE" envDefault:"false"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:                 getEnv("HTTP_PORT", "8080"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		LogFormat:                getEnv("LOG_FORMAT", "json"),
		ClientURL:                getEnv("CLIENT_URL", "http://localhost:5173"),
		StateBackend:             strings.ToLower(getEnv("STATE_BACKEND", StateBackendSQLite)),
		StateSQLitePath:          getEnv("STATE_SQLITE_PATH", "data/state.db"),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		RedisAddr:                getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:                os.Getenv("REDIS_PASSWORD"),
		RedisDB:                  getEnvAsInt("REDIS_DB", 0),
		RedisPoolSize:            getEnvAsInt("REDIS_POOL_SIZE", 10),
		GeminiAPIKey:             os.Getenv("GEMINI_API_KEY"),
		AIPlanModel:              getEnv("AI_PLAN_MODEL", "gemini-2.5-pro"),
		AIFastModel:              getEnv("AI_FAST_MODEL", "gemini-2.5-flash"),
		AITimeout:                getEnvAsDuration("AI_TIMEOUT", 60*time.Second),
		USGSBaseURL:              getEnv("USGS_BASE_URL", "https://earthquake.usgs.gov/fdsnws/event/1/query"),
		WeatherAlertsEnabled:     getEnvAsBool("WEATHER_ALERTS_ENABLED", false),
		SimulationInterval:       getEnvAsDuration("SIMULATION_INTERVAL", 5*time.Second),
		SimulationSeed:           int64(getEnvAsInt("SIMULATION_SEED", 0)),
		NotificationTTL:          getEnvAsDuration("NOTIFICATION_TTL", 7*time.Second),
		GeolocationTimeout:       getEnvAsDuration("GEOLOCATION_TIMEOUT", 10*time.Second),
		MapsAPIKey:               os.Getenv("MAPS_API_KEY"),
		ConnectivityProbeAddr:    getEnv("CONNECTIVITY_PROBE_ADDR", "earthquake.usgs.gov:443"),
		ConnectivityAssumeOnline: getEnvAsBool("CONNECTIVITY_ASSUME_ONLINE", false),
		WebhookURL:               os.Getenv("WEBHOOK_URL"),
		WebhookSecret:            os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:           getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:        getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:         getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StateBackend {
	case StateBackendMemory, StateBackendSQLite, StateBackendRedis:
	case StateBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for postgres state backend")
		}
	default:
		return fmt.Errorf("unknown STATE_BACKEND %q", c.StateBackend)
	}
	if c.RedisPoolSize <= 0 {
		return fmt.Errorf("REDIS_POOL_SIZE must be positive")
	}
	if c.SimulationInterval <= 0 {
		return fmt.Errorf("SIMULATION_INTERVAL must be positive")
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool возвращает значение переменной окружения как bool или значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
