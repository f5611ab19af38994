package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	NsqdTCPAddr        string
	NsqLookupdHTTP     string
	NsqChannel         string
	NsqMaxAttempts     uint16
	NsqMaxInFlight     int
	NsqDeadLetter      bool
	AuthServiceURL     string
	AuthKeyTimeout     time.Duration
	ProcessMinDelay    time.Duration
	ProcessMaxDelay    time.Duration
	ResumeStalled      bool
	ResumeSchedule     string
	ResumeStalledAfter time.Duration

	StartupRetryAttempts int
	StartupRetryDelay    time.Duration

	LogLevel     slog.Level
	OTLPEndpoint string
}

var defaults = map[string]any{
	"HTTP_PORT":                   "8080",
	"DB_HOST":                     "localhost",
	"DB_PORT":                     "5432",
	"DB_USER":                     "postgres",
	"DB_PASSWORD":                 "postgres",
	"DB_NAME":                     "delivery",
	"DB_SSLMODE":                  "disable",
	"NSQD_TCP_ADDR":               "localhost:4150",
	"NSQ_LOOKUPD_HTTP_ADDR":       "",
	"NSQ_CHANNEL":                 "delivery",
	"NSQ_MAX_ATTEMPTS":            5,
	"NSQ_MAX_IN_FLIGHT":           16,
	"NSQ_DEAD_LETTER":             true,
	"AUTH_SERVICE_URL":            "http://auth:8000",
	"AUTH_KEY_TIMEOUT":            "5s",
	"PROCESS_MIN_DELAY":           "5s",
	"PROCESS_MAX_DELAY":           "10s",
	"RESUME_STALLED_DELIVERIES":   false,
	"RESUME_SCHEDULE":             "@every 1m",
	"RESUME_STALLED_AFTER":        "2m",
	"STARTUP_RETRY_ATTEMPTS":      10,
	"STARTUP_RETRY_DELAY":         "2s",
	"LOG_LEVEL":                   "info",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
}

// LoadConfig reads an optional .env file, an optional config file and the
// process environment, in increasing order of precedence.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(v.GetString("LOG_LEVEL")))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	attempts := v.GetInt("NSQ_MAX_ATTEMPTS")
	if attempts < 1 || attempts > 65535 {
		return Config{}, fmt.Errorf("NSQ_MAX_ATTEMPTS: %d is out of range", attempts)
	}

	cfg := Config{
		HTTPPort: v.GetString("HTTP_PORT"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSslMode:  v.GetString("DB_SSLMODE"),

		NsqdTCPAddr:        v.GetString("NSQD_TCP_ADDR"),
		NsqLookupdHTTP:     v.GetString("NSQ_LOOKUPD_HTTP_ADDR"),
		NsqChannel:         v.GetString("NSQ_CHANNEL"),
		NsqMaxAttempts:     uint16(attempts),
		NsqMaxInFlight:     v.GetInt("NSQ_MAX_IN_FLIGHT"),
		NsqDeadLetter:      v.GetBool("NSQ_DEAD_LETTER"),
		AuthServiceURL:     v.GetString("AUTH_SERVICE_URL"),
		AuthKeyTimeout:     v.GetDuration("AUTH_KEY_TIMEOUT"),
		ProcessMinDelay:    v.GetDuration("PROCESS_MIN_DELAY"),
		ProcessMaxDelay:    v.GetDuration("PROCESS_MAX_DELAY"),
		ResumeStalled:      v.GetBool("RESUME_STALLED_DELIVERIES"),
		ResumeSchedule:     v.GetString("RESUME_SCHEDULE"),
		ResumeStalledAfter: v.GetDuration("RESUME_STALLED_AFTER"),

		StartupRetryAttempts: v.GetInt("STARTUP_RETRY_ATTEMPTS"),
		StartupRetryDelay:    v.GetDuration("STARTUP_RETRY_DELAY"),

		LogLevel:     level,
		OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if cfg.NsqdTCPAddr == "" {
		return Config{}, errors.New("NSQD_TCP_ADDR is required")
	}
	if cfg.AuthServiceURL == "" {
		return Config{}, errors.New("AUTH_SERVICE_URL is required")
	}

	return cfg, nil
}
