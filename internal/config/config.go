// Package config loads client and server settings with viper.
// Precedence: flags, FOCUSKEEPER_* environment, config file, defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iudanet/focuskeeper/internal/breaker"
	"github.com/iudanet/focuskeeper/internal/logging"
	"github.com/iudanet/focuskeeper/internal/retry"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "FOCUSKEEPER"

// ClientConfig настройки клиента
type ClientConfig struct {
	Log           logging.Config `mapstructure:"log"`
	ServerURL     string         `mapstructure:"server_url"` // ServerURL базовый адрес удаленного API
	APIKey        string         `mapstructure:"api_key"`    // APIKey передается в X-API-Key
	UserID        string         `mapstructure:"user_id"`    // UserID владелец локальных данных
	DBPath        string         `mapstructure:"db_path"`    // DBPath путь к файлу bbolt
	DebugAddr     string         `mapstructure:"debug_addr"` // DebugAddr адрес debug сервера, пусто - выключен
	Retry         retry.Config   `mapstructure:"retry"`
	Breaker       breaker.Config `mapstructure:"breaker"`
	SyncInterval  time.Duration  `mapstructure:"sync_interval"`  // SyncInterval период автоматической отправки
	PullInterval  time.Duration  `mapstructure:"pull_interval"`  // PullInterval период загрузки с сервера
	ProbeInterval time.Duration  `mapstructure:"probe_interval"` // ProbeInterval период проверки сети
	AutoSync      bool           `mapstructure:"auto_sync"`
}

// ServerConfig настройки сервера
type ServerConfig struct {
	Log             logging.Config `mapstructure:"log"`
	Addr            string         `mapstructure:"addr"`
	DBPath          string         `mapstructure:"db_path"`
	APIKeySecret    string         `mapstructure:"api_key_secret"` // APIKeySecret ключ подписи API ключей
	RateWindow      time.Duration  `mapstructure:"rate_window"`
	ShutdownTimeout time.Duration  `mapstructure:"shutdown_timeout"`
	RateLimit       int            `mapstructure:"rate_limit"` // RateLimit запросов на ключ за окно
}

func setClientDefaults(v *viper.Viper) {
	r := retry.DefaultConfig()
	b := breaker.DefaultConfig()

	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("api_key", "")
	v.SetDefault("user_id", "")
	v.SetDefault("db_path", "focuskeeper.db")
	v.SetDefault("debug_addr", "")
	v.SetDefault("sync_interval", 30*time.Second)
	v.SetDefault("pull_interval", 5*time.Minute)
	v.SetDefault("probe_interval", 15*time.Second)
	v.SetDefault("auto_sync", true)

	v.SetDefault("retry.base_delay", r.BaseDelay)
	v.SetDefault("retry.max_delay", r.MaxDelay)
	v.SetDefault("retry.backoff_multiplier", r.BackoffMultiplier)
	v.SetDefault("retry.max_attempts", r.MaxAttempts)
	v.SetDefault("retry.jitter_enabled", r.JitterEnabled)

	v.SetDefault("breaker.reset_timeout", b.ResetTimeout)
	v.SetDefault("breaker.failure_threshold", b.FailureThreshold)
	v.SetDefault("breaker.half_open_requests", b.HalfOpenRequests)

	setLogDefaults(v)
}

func setServerDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "focuskeeper-server.db")
	v.SetDefault("api_key_secret", "")
	v.SetDefault("rate_limit", 100)
	v.SetDefault("rate_window", time.Minute)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	setLogDefaults(v)
}

func setLogDefaults(v *viper.Viper) {
	l := logging.DefaultConfig()

	v.SetDefault("log.level", l.Level)
	v.SetDefault("log.format", l.Format)
	v.SetDefault("log.file", l.File)
	v.SetDefault("log.max_size_mb", l.MaxSizeMB)
	v.SetDefault("log.max_backups", l.MaxBackups)
	v.SetDefault("log.max_age_days", l.MaxAgeDays)
}

// prepare wires env lookup and reads the optional config file.
func prepare(v *viper.Viper, path string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return nil
}

// LoadClient reads the client configuration. v may already carry bound flags.
func LoadClient(v *viper.Viper, path string) (*ClientConfig, error) {
	setClientDefaults(v)
	if err := prepare(v, path); err != nil {
		return nil, err
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode client config: %w", err)
	}
	return &cfg, nil
}

// LoadServer reads the server configuration. v may already carry bound flags.
func LoadServer(v *viper.Viper, path string) (*ServerConfig, error) {
	setServerDefaults(v)
	if err := prepare(v, path); err != nil {
		return nil, err
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode server config: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings the client cannot run without.
func (c *ClientConfig) Validate() error {
	var errs []error

	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if c.UserID == "" {
		errs = append(errs, errors.New("user_id is required"))
	}
	if c.ServerURL == "" {
		errs = append(errs, errors.New("server_url is required"))
	}
	if c.SyncInterval <= 0 || c.PullInterval <= 0 || c.ProbeInterval <= 0 {
		errs = append(errs, errors.New("sync, pull and probe intervals must be positive"))
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, errors.New("retry.max_attempts must be at least 1"))
	}
	if c.Retry.MaxDelay < c.Retry.BaseDelay {
		errs = append(errs, errors.New("retry.max_delay must not be less than retry.base_delay"))
	}

	return errors.Join(errs...)
}

// Validate checks settings the server cannot run without.
func (c *ServerConfig) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if c.APIKeySecret == "" {
		errs = append(errs, errors.New("api_key_secret is required"))
	}
	if c.RateLimit < 0 || (c.RateLimit > 0 && c.RateWindow <= 0) {
		errs = append(errs, errors.New("rate_limit requires a positive rate_window"))
	}

	return errors.Join(errs...)
}
