package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingCredentials = errors.New("naver api credentials are not set")
	ErrMissingToken       = errors.New("TELEGRAM_BOT_TOKEN is required")
	ErrInvalidAddr        = errors.New("HTTP_ADDR is required")
)

type Config struct {
	Naver    NaverConfig
	Proxy    ProxyConfig
	HTTP     HTTPConfig
	Telegram TelegramConfig
	Log      LogConfig
	Session  SessionConfig
	Search   SearchConfig
}

type NaverConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
}

type ProxyConfig struct {
	BaseURL string
	Timeout time.Duration
}

type HTTPConfig struct {
	Addr string
}

type TelegramConfig struct {
	Token string
	Debug bool
}

type LogConfig struct {
	Level  string
	Format string
	App    string
	Output string
}

type SessionConfig struct {
	TTL time.Duration
}

type SearchConfig struct {
	Timeout time.Duration
}

// LoadEnvFile подгружает .env, если он есть. Уже выставленные переменные не перетираются.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load читает окружение. Отсутствие ключей Naver здесь не ошибка:
// прокси должен подняться и отвечать 500, см. NaverConfig.Validate.
func Load() (*Config, error) {
	cfg := &Config{
		Naver: NaverConfig{
			ClientID:     os.Getenv("NAVER_CLIENT_ID"),
			ClientSecret: os.Getenv("NAVER_CLIENT_SECRET"),
			BaseURL:      getEnvOrDefault("NAVER_BASE_URL", "https://openapi.naver.com"),
			Timeout:      time.Duration(getEnvIntOrDefault("NAVER_TIMEOUT_SEC", 10)) * time.Second,
		},
		Proxy: ProxyConfig{
			BaseURL: getEnvOrDefault("PROXY_BASE_URL", "http://localhost:8080"),
			Timeout: time.Duration(getEnvIntOrDefault("PROXY_TIMEOUT_SEC", 30)) * time.Second,
		},
		HTTP: HTTPConfig{
			Addr: getEnvOrDefault("HTTP_ADDR", ":8080"),
		},
		Telegram: TelegramConfig{
			Token: os.Getenv("TELEGRAM_BOT_TOKEN"),
			Debug: getEnvBoolOrDefault("TELEGRAM_DEBUG", false),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", ""),
			App:    getEnvOrDefault("LOG_APP", "naver-search"),
			Output: getEnvOrDefault("LOG_OUTPUT", "stderr"),
		},
		Session: SessionConfig{
			TTL: time.Duration(getEnvIntOrDefault("SESSION_TTL_SEC", 3600)) * time.Second,
		},
		Search: SearchConfig{
			Timeout: time.Duration(getEnvIntOrDefault("SEARCH_TIMEOUT_SEC", 60)) * time.Second,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return ErrInvalidAddr
	}
	return nil
}

// Validate - ключи проверяются один раз при старте
func (n NaverConfig) Validate() error {
	if n.ClientID == "" || n.ClientSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}

func (t TelegramConfig) Validate() error {
	if t.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// MaskSecret - для логов: только последние 4 символа
func MaskSecret(s string) string {
	if s == "" {
		return "<unset>"
	}
	if len(s) <= 4 {
		return "..." + s
	}
	return "..." + s[len(s)-4:]
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
