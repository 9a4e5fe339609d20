package config

import (
	"log/slog"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Kafka.Topic != "scholarship-events" {
		t.Errorf("Kafka.Topic = %q", cfg.Kafka.Topic)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "broker-2:9092" {
		t.Errorf("Kafka.Brokers = %v", cfg.Kafka.Brokers)
	}
}

func TestLoadConfig_ProductionRequiresStripeKey(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("STRIPE_SECRET_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() expected error without stripe key in production")
	}

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	if _, err := LoadConfig(); err != nil {
		t.Errorf("LoadConfig() error = %v", err)
	}
}

func TestConfig_DSN(t *testing.T) {
	t.Run("database url wins", func(t *testing.T) {
		cfg := &Config{DatabaseURL: "postgres://u:p@h:5432/db"}
		if got := cfg.DSN(); got != "postgres://u:p@h:5432/db" {
			t.Errorf("DSN() = %q", got)
		}
	})

	t.Run("assembled from parts", func(t *testing.T) {
		cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "app", DBPassword: "pw", DBName: "scholar", DBSSLMode: "disable"}
		want := "host=db port=5432 user=app password=pw dbname=scholar sslmode=disable"
		if got := cfg.DSN(); got != want {
			t.Errorf("DSN() = %q, want %q", got, want)
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.raw); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
