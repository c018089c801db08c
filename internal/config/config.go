package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Slots    SlotsConfig    `toml:"slots"`
	Redis    RedisConfig    `toml:"redis"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Alerts   AlertsConfig   `toml:"alerts"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SlotsConfig параметры расчёта слотов
type SlotsConfig struct {
	IntervalMinutes         int    `toml:"interval_minutes"`
	LeadTimeMinutes         int    `toml:"lead_time_minutes"`
	CacheTTLSeconds         int    `toml:"cache_ttl_seconds"`
	AdvanceBookingDays      int    `toml:"advance_booking_days"`
	TreatInvalidAsAvailable *bool  `toml:"treat_invalid_as_available"`
	Timezone                string `toml:"timezone"`
}

// LeadTime минимальный запас до начала слота
func (c SlotsConfig) LeadTime() time.Duration {
	return time.Duration(c.LeadTimeMinutes) * time.Minute
}

// CacheTTL время жизни кэша занятых интервалов
func (c SlotsConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// FailOpen политика для некорректных интервалов
func (c SlotsConfig) FailOpen() bool {
	if c.TreatInvalidAsAvailable == nil {
		return domain.DefaultTreatInvalidAsAvailable
	}
	return *c.TreatInvalidAsAvailable
}

// Location часовой пояс барбершопа
func (c SlotsConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// RedisConfig общий кэш; при выключенном используется in-memory кэш
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// KafkaConfig события об изменении записей; при выключенной - события внутри процесса
type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
	GroupID string   `toml:"group_id"`
}

// AlertsConfig webhook для уведомлений о сбоях загрузки расписания; пустой URL - только лог и метрики
type AlertsConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load читает конфигурацию из toml файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "barber-slots"
	}

	if c.Slots.IntervalMinutes == 0 {
		c.Slots.IntervalMinutes = domain.DefaultSlotIntervalMinutes
	}
	if c.Slots.LeadTimeMinutes == 0 {
		c.Slots.LeadTimeMinutes = domain.DefaultMinBookingLeadMinutes
	}
	if c.Slots.CacheTTLSeconds == 0 {
		c.Slots.CacheTTLSeconds = int(domain.DefaultUnavailableCacheTTL / time.Second)
	}
	if c.Slots.Timezone == "" {
		c.Slots.Timezone = "UTC"
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "appointments.changed"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "barber-slots"
	}

	if c.Alerts.Timeout == 0 {
		c.Alerts.Timeout = 3
	}
}

// Validate проверяет значения после применения дефолтов
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Slots.IntervalMinutes < 0 || c.Slots.IntervalMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: slots.interval_minutes out of range: %d", ErrInvalidConfig, c.Slots.IntervalMinutes)
	}
	if c.Slots.LeadTimeMinutes < 0 {
		return fmt.Errorf("%w: slots.lead_time_minutes must not be negative", ErrInvalidConfig)
	}
	if c.Slots.CacheTTLSeconds < 0 {
		return fmt.Errorf("%w: slots.cache_ttl_seconds must not be negative", ErrInvalidConfig)
	}
	if c.Slots.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: slots.advance_booking_days must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Slots.Location(); err != nil {
		return fmt.Errorf("%w: slots.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("%w: kafka.brokers is required when kafka is enabled", ErrInvalidConfig)
	}
	if c.Alerts.Timeout < 0 {
		return fmt.Errorf("%w: alerts.timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}
