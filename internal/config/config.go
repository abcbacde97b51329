package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bassista/go_observe/internal/logger"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GO_OBSERVE_SERVER_PORT.
const EnvPrefix = "GO_OBSERVE"

type Config struct {
	Server ServerConfig
	Data   DataConfig
	Client ClientConfig
	Misc   MiscConfig
}

type ServerConfig struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutDownTimeout    time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins string
}

type DataConfig struct {
	FilePath        string
	PersistInterval time.Duration
}

// ClientConfig locates the remote API consumed by the data services.
type ClientConfig struct {
	BaseURL         string
	NotePath        string
	UserPath        string
	Timeout         time.Duration
	RefreshSchedule string // cron spec; empty disables scheduled user refresh
}

type MiscConfig struct {
	LogLevel          string
	GinMode           string
	HoneybadgerAPIKey string
	Environment       string
}

// NoteURL is the absolute note collection endpoint.
func (c ClientConfig) NoteURL() string {
	return joinURL(c.BaseURL, c.NotePath)
}

// UserURL is the absolute user endpoint.
func (c ClientConfig) UserURL() string {
	return joinURL(c.BaseURL, c.UserPath)
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.request_timeout", "1s")
	v.SetDefault("server.cors_allowed_origins", "*")

	v.SetDefault("data.file_path", "./config/data/data.json")
	v.SetDefault("data.persist_interval", "5s")

	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.note_path", "/api/v1/note/")
	v.SetDefault("client.user_path", "/api/v1/user/")
	v.SetDefault("client.timeout", "10s")
	v.SetDefault("client.refresh_schedule", "")

	v.SetDefault("misc.log_level", "info")
	v.SetDefault("misc.gin_mode", "release")
	v.SetDefault("misc.honeybadger_api_key", "")
	v.SetDefault("misc.environment", "")
}

// LoadConfig reads config.yaml from the first of confPaths that has one
// (default ./config), then applies .env and GO_OBSERVE_* environment overrides.
func LoadConfig(confPaths ...string) (*Config, error) {
	log := logger.WithComponent("config")

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(confPaths) == 0 {
		confPaths = []string{"./config"}
	}
	for _, p := range confPaths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	// Environment variables like GO_OBSERVE_SERVER_PORT override server.port.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Error reporting keeps its conventional unprefixed variables.
	_ = v.BindEnv("misc.honeybadger_api_key", "HONEYBADGER_API_KEY")
	_ = v.BindEnv("misc.environment", "GO_ENV")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		log.Info("No config file found, using defaults and env vars")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetInt("server.port"),
			ReadTimeout:        v.GetDuration("server.read_timeout"),
			WriteTimeout:       v.GetDuration("server.write_timeout"),
			IdleTimeout:        v.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    v.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     v.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: v.GetString("server.cors_allowed_origins"),
		},
		Data: DataConfig{
			FilePath:        v.GetString("data.file_path"),
			PersistInterval: v.GetDuration("data.persist_interval"),
		},
		Client: ClientConfig{
			BaseURL:         v.GetString("client.base_url"),
			NotePath:        v.GetString("client.note_path"),
			UserPath:        v.GetString("client.user_path"),
			Timeout:         v.GetDuration("client.timeout"),
			RefreshSchedule: strings.TrimSpace(v.GetString("client.refresh_schedule")),
		},
		Misc: MiscConfig{
			LogLevel:          v.GetString("misc.log_level"),
			GinMode:           v.GetString("misc.gin_mode"),
			HoneybadgerAPIKey: v.GetString("misc.honeybadger_api_key"),
			Environment:       v.GetString("misc.environment"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	timeouts := map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.shutdown_timeout": c.Server.ShutDownTimeout,
		"server.request_timeout":  c.Server.RequestTimeout,
		"data.persist_interval":   c.Data.PersistInterval,
	}
	for name, d := range timeouts {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}
	if c.Data.FilePath == "" {
		return errors.New("data.file_path is required")
	}

	u, err := url.Parse(c.Client.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("client.base_url must be an absolute http(s) URL, got %q", c.Client.BaseURL)
	}
	if c.Client.NotePath == "" || c.Client.UserPath == "" {
		return errors.New("client.note_path and client.user_path are required")
	}
	if c.Client.Timeout < 0 {
		return fmt.Errorf("client.timeout must not be negative, got %v", c.Client.Timeout)
	}
	if c.Client.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.Client.RefreshSchedule); err != nil {
			return fmt.Errorf("client.refresh_schedule: %w", err)
		}
	}

	if _, err := logrus.ParseLevel(c.Misc.LogLevel); err != nil {
		return fmt.Errorf("misc.log_level: %w", err)
	}
	switch c.Misc.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("misc.gin_mode must be debug, release or test, got %q", c.Misc.GinMode)
	}
	return nil
}
