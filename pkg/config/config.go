package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
		Locale          string        `yaml:"locale" default:"en" validate:"oneof=en th"`
		LoadsPerSecond  float64       `yaml:"loads_per_second" default:"2" validate:"gt=0"`
		LoadBurst       int           `yaml:"load_burst" default:"5" validate:"gte=1"`
		// Zero keeps idle sessions forever.
		SessionIdleTTL  time.Duration `yaml:"session_idle_ttl" default:"30m" validate:"gte=0"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Backend struct {
		BaseURL string `yaml:"base_url" default:"http://localhost:5000" validate:"required,url"`
		// Zero leaves the HTTP client without a timeout.
		Timeout time.Duration `yaml:"timeout" default:"0s" validate:"gte=0"`
	} `yaml:"backend"`
	Derive struct {
		DebtToEquityThreshold float64 `yaml:"debt_to_equity_threshold" default:"1.5" validate:"gt=0"`
		ProfitMarginFloor     float64 `yaml:"profit_margin_floor" default:"5"`
		PECeiling             float64 `yaml:"pe_ceiling" default:"30"`
		ROEFloor              float64 `yaml:"roe_floor" default:"10"`
		HealthFloor           float64 `yaml:"health_floor" default:"50"`
		GrowthAsFraction      bool    `yaml:"growth_as_fraction" default:"true"`
		MarginAsFraction      bool    `yaml:"margin_as_fraction" default:"false"`
		CashFlowInMillions    bool    `yaml:"cash_flow_in_millions" default:"false"`
		ChartDays             int     `yaml:"chart_days" default:"30" validate:"gte=2,lte=365"`
		NewsLimit             int     `yaml:"news_limit" default:"10" validate:"gte=1"`
	} `yaml:"derive"`
	Cache struct {
		Backend  string        `yaml:"backend" default:"memory" validate:"oneof=memory redis"`
		URL      string        `yaml:"url"`
		Addr     string        `yaml:"addr" default:"localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Prefix   string        `yaml:"prefix" default:"stocklens"`
		ThemeTTL time.Duration `yaml:"theme_ttl" default:"0s"`
	} `yaml:"cache"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"stocklens.snapshots"`
		RequiredAcks int           `yaml:"required_acks" default:"1" validate:"oneof=-1 0 1"`
		Compression  string        `yaml:"compression" default:"snappy" validate:"oneof=none gzip snappy lz4 zstd"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"5s"`
		BatchTimeout time.Duration `yaml:"batch_timeout" default:"50ms"`
		Async        bool          `yaml:"async" default:"true"`
	} `yaml:"kafka"`
}

var validate = validator.New()

// Default returns a config populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	return &c, nil
}

// Load reads a YAML file on top of the defaults. A missing file is not an
// error: the defaults alone describe a working local setup.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("HTTP_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Backend = "redis"
		c.Cache.Addr = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Cache.Backend = "redis"
		c.Cache.URL = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Cache.Backend == "redis" && c.Cache.Addr == "" && c.Cache.URL == "" {
		return fmt.Errorf("cache.addr or cache.url is required for the redis backend")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when brokers are set")
	}
	return nil
}

// KafkaEnabled reports whether committed snapshots should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}
