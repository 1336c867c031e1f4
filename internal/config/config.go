package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// Драйверы хранилища
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// ConfigPathEnv переменная окружения с путём к файлу конфигурации
const ConfigPathEnv = "CONFIG_PATH"

// DefaultConfigPath путь к конфигурации по умолчанию
const DefaultConfigPath = "config.toml"

var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Storage    StorageConfig    `toml:"storage"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Auth       AuthConfig       `toml:"auth"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Events     EventsConfig     `toml:"events"`
	Rebooking  RebookingConfig  `toml:"rebooking"`
	Escalation EscalationConfig `toml:"escalation"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type StorageConfig struct {
	// postgres | memory
	Driver string `toml:"driver"`
	// Пространство имён блокировок: старшие 32 бита ключа pg_advisory_xact_lock
	LockNamespace int32 `toml:"lock_namespace"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	Enabled bool   `toml:"enabled"`
	Secret  string `toml:"secret"`
	Issuer  string `toml:"issuer"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type EventsConfig struct {
	Kafka KafkaConfig `toml:"kafka"`
}

type KafkaConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"` // секунды
}

type RebookingConfig struct {
	MaxSuggestions int `toml:"max_suggestions"`
}

type EscalationConfig struct {
	WindowDays int                  `toml:"window_days"`
	Rules      []EscalationRuleConf `toml:"rules"`
}

type EscalationRuleConf struct {
	Operator  string `toml:"operator"`
	Threshold int    `toml:"threshold"`
	Enabled   bool   `toml:"enabled"`
}

// DomainRules переводит правила эскалации в доменные
func (e EscalationConfig) DomainRules() []domain.EscalationRule {
	rules := make([]domain.EscalationRule, 0, len(e.Rules))
	for _, r := range e.Rules {
		rules = append(rules, domain.EscalationRule{
			Operator:  domain.ComparisonOperator(r.Operator),
			Threshold: r.Threshold,
			Enabled:   r.Enabled,
		})
	}
	return rules
}

// Load загружает конфигурацию из TOML файла
// Если path пустой - берётся CONFIG_PATH, затем config.toml
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse разбирает конфигурацию из строки (используется в тестах)
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
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

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
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

	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}
	if c.Storage.LockNamespace == 0 {
		c.Storage.LockNamespace = 4201
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc_staffingservice"
	}

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 50
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 100
	}

	if c.Events.Kafka.Topic == "" {
		c.Events.Kafka.Topic = "staffing.scheduling-events"
	}
	if c.Events.Kafka.WriteTimeout == 0 {
		c.Events.Kafka.WriteTimeout = 5
	}

	if c.Rebooking.MaxSuggestions == 0 {
		c.Rebooking.MaxSuggestions = domain.DefaultMaxSuggestions
	}

	if c.Escalation.WindowDays == 0 {
		c.Escalation.WindowDays = domain.DefaultEscalationWindowDays
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port out of range: %d", c.Server.HTTPPort))
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.DBName == "" {
			problems = append(problems, "database.dbname is required for postgres storage")
		}
	case StorageDriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("storage.driver unknown: %q", c.Storage.Driver))
	}

	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		problems = append(problems, "database pool sizes must not be negative")
	}

	if c.Auth.Enabled && c.Auth.Secret == "" {
		problems = append(problems, "auth.secret is required when auth is enabled")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 1) {
		problems = append(problems, "rate_limit values must be positive")
	}

	if c.Events.Kafka.Enabled && len(c.Events.Kafka.Brokers) == 0 {
		problems = append(problems, "events.kafka.brokers is required when kafka is enabled")
	}

	if c.Rebooking.MaxSuggestions < 1 || c.Rebooking.MaxSuggestions > domain.MaxSuggestionsLimit {
		problems = append(problems, fmt.Sprintf("rebooking.max_suggestions must be in [1, %d]", domain.MaxSuggestionsLimit))
	}

	if c.Escalation.WindowDays < 1 {
		problems = append(problems, "escalation.window_days must be positive")
	}
	for i, r := range c.Escalation.Rules {
		if !domain.ComparisonOperator(r.Operator).IsValid() {
			problems = append(problems, fmt.Sprintf("escalation.rules[%d].operator unknown: %q", i, r.Operator))
		}
		if r.Threshold < 0 {
			problems = append(problems, fmt.Sprintf("escalation.rules[%d].threshold must not be negative", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}
