package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/pawcare/PC-BookingWizard/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	ScheduleService ScheduleServiceConfig `toml:"schedule_service"`
	Wizard          WizardConfig          `toml:"wizard"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к Postgres
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleServiceConfig настройки клиента ScheduleService
type ScheduleServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// WizardConfig настройки движка бронирования
type WizardConfig struct {
	ClinicID             int64  `toml:"clinic_id"`
	SessionTTLMinutes    int    `toml:"session_ttl_minutes"`
	FallbackSizeCategory string `toml:"fallback_size_category"`
}

// FallbackSize возвращает валидную категорию размера по умолчанию
func (c *WizardConfig) FallbackSize() domain.SizeCategory {
	size := domain.SizeCategory(c.FallbackSizeCategory)
	if !size.IsValid() {
		return domain.DefaultFallbackSizeCategory
	}
	return size
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.ScheduleService.URL == "" {
		return fmt.Errorf("config: schedule_service.url is required")
	}
	if c.Wizard.ClinicID <= 0 {
		return fmt.Errorf("config: wizard.clinic_id must be positive")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Wizard.SessionTTLMinutes <= 0 {
		c.Wizard.SessionTTLMinutes = domain.DefaultSessionTTLMinutes
	}
	if c.ScheduleService.Timeout <= 0 {
		c.ScheduleService.Timeout = 10
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}
