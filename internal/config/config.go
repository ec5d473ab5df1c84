package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass        string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	IncidentCacheTTL time.Duration `env:"INCIDENT_CACHE_TTL" envDefault:"5m"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Geocode Config (обратное геокодирование)
	GeocodeURL       string        `env:"GEOCODE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocodeUserAgent string        `env:"GEOCODE_USER_AGENT" envDefault:"event-dispatch/1.0"`
	GeocodeTimeout   time.Duration `env:"GEOCODE_TIMEOUT" envDefault:"5s"`
	GeocodeCacheTTL  time.Duration `env:"GEOCODE_CACHE_TTL" envDefault:"24h"`

	// Hub Config
	HubSendBuffer    int           `env:"HUB_SEND_BUFFER" envDefault:"256"`
	HubWriteTimeout  time.Duration `env:"HUB_WRITE_TIMEOUT" envDefault:"10s"`
	WSAllowedOrigins []string      `env:"WS_ALLOWED_ORIGINS"`

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
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		IncidentCacheTTL:  getEnvAsDuration("INCIDENT_CACHE_TTL", 5*time.Minute),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		GeocodeURL:        getEnv("GEOCODE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeUserAgent:  getEnv("GEOCODE_USER_AGENT", "event-dispatch/1.0"),
		GeocodeTimeout:    getEnvAsDuration("GEOCODE_TIMEOUT", 5*time.Second),
		GeocodeCacheTTL:   getEnvAsDuration("GEOCODE_CACHE_TTL", 24*time.Hour),
		HubSendBuffer:     getEnvAsInt("HUB_SEND_BUFFER", 256),
		HubWriteTimeout:   getEnvAsDuration("HUB_WRITE_TIMEOUT", 10*time.Second),
		WSAllowedOrigins:  getEnvAsList("WS_ALLOWED_ORIGINS"),
		APIKeys:           getEnvAsList("API_KEYS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.HubSendBuffer < 1 {
		return nil, fmt.Errorf("HUB_SEND_BUFFER must be positive, got %d", cfg.HubSendBuffer)
	}

	return cfg, nil
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

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
