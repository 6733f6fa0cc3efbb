package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		envVars   map[string]string
		wantErr   error
		wantCreds error
	}{
		{
			name: "valid config",
			envVars: map[string]string{
				"NAVER_CLIENT_ID":     "id",
				"NAVER_CLIENT_SECRET": "secret",
			},
		},
		{
			name:      "missing credentials still loads",
			envVars:   map[string]string{},
			wantCreds: ErrMissingCredentials,
		},
		{
			name: "missing secret",
			envVars: map[string]string{
				"NAVER_CLIENT_ID": "id",
			},
			wantCreds: ErrMissingCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			defer clearEnvVars()

			cfg, err := Load()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Load() unexpected error = %v", err)
			}

			if got := cfg.Naver.Validate(); !errors.Is(got, tt.wantCreds) {
				t.Errorf("Naver.Validate() = %v, want %v", got, tt.wantCreds)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %v, want info", cfg.Log.Level)
	}
	if cfg.Log.App != "naver-search" || cfg.Log.Output != "stderr" {
		t.Errorf("Log = %+v, want app naver-search to stderr", cfg.Log)
	}
	if cfg.Naver.BaseURL != "https://openapi.naver.com" {
		t.Errorf("Naver.BaseURL = %v", cfg.Naver.BaseURL)
	}
	if cfg.Naver.Timeout != 10*time.Second {
		t.Errorf("Naver.Timeout = %v, want 10s", cfg.Naver.Timeout)
	}
	if cfg.Proxy.Timeout != 30*time.Second {
		t.Errorf("Proxy.Timeout = %v, want 30s", cfg.Proxy.Timeout)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %v, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Session.TTL != time.Hour {
		t.Errorf("Session.TTL = %v, want 1h", cfg.Session.TTL)
	}
	if cfg.Telegram.Debug {
		t.Error("Telegram.Debug should default to false")
	}
}

func TestGetEnvIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal int
		want       int
	}{
		{"valid int", "42", 10, 42},
		{"empty string", "", 10, 10},
		{"invalid int", "abc", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_INT", tt.envValue)
			defer os.Unsetenv("TEST_INT")

			got := getEnvIntOrDefault("TEST_INT", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvIntOrDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBoolOrDefault(t *testing.T) {
	tests := []struct {
		envValue string
		want     bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"", false},
		{"nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.envValue, func(t *testing.T) {
			os.Setenv("TEST_BOOL", tt.envValue)
			defer os.Unsetenv("TEST_BOOL")

			if got := getEnvBoolOrDefault("TEST_BOOL", false); got != tt.want {
				t.Errorf("getEnvBoolOrDefault(%q) = %v, want %v", tt.envValue, got, tt.want)
			}
		})
	}
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidAddr) {
		t.Errorf("Validate() error = %v, want %v", err, ErrInvalidAddr)
	}
}

func TestTelegramValidate(t *testing.T) {
	if err := (TelegramConfig{}).Validate(); !errors.Is(err, ErrMissingToken) {
		t.Errorf("Validate() error = %v, want %v", err, ErrMissingToken)
	}
	if err := (TelegramConfig{Token: "t"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestMaskSecret(t *testing.T) {
	tests := map[string]string{
		"":             "<unset>",
		"abc":          "...abc",
		"supersecret1": "...ret1",
	}
	for in, want := range tests {
		if got := MaskSecret(in); got != want {
			t.Errorf("MaskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("NAVER_CLIENT_ID=from-file\nNAVER_CLIENT_SECRET=s3cret\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("NAVER_CLIENT_ID"); got != "from-file" {
		t.Errorf("NAVER_CLIENT_ID = %q, want from-file", got)
	}

	// несуществующий файл - не ошибка
	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("LoadEnvFile(missing) error = %v", err)
	}
}

func clearEnvVars() {
	envVars := []string{
		"NAVER_CLIENT_ID",
		"NAVER_CLIENT_SECRET",
		"NAVER_BASE_URL",
		"NAVER_TIMEOUT_SEC",
		"PROXY_BASE_URL",
		"PROXY_TIMEOUT_SEC",
		"HTTP_ADDR",
		"TELEGRAM_BOT_TOKEN",
		"TELEGRAM_DEBUG",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"LOG_APP",
		"LOG_OUTPUT",
		"SESSION_TTL_SEC",
		"SEARCH_TIMEOUT_SEC",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}
