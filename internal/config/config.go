package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is persisted as JSON. Every field can be overridden from the
// environment; environment values win over the file.
type Config struct {
	DBDriver     string        `json:"db_driver" env:"TASKTRACK_DB_DRIVER" env-default:"sqlite"`
	DBPath       string        `json:"db_path" env:"TASKTRACK_DB_PATH"`
	DBURL        string        `json:"db_url,omitempty" env:"TASKTRACK_DB_URL"`
	WebEnabled   bool          `json:"web_enabled" env:"TASKTRACK_WEB_ENABLED"`
	WebPort      int           `json:"web_port" env:"TASKTRACK_WEB_PORT" env-default:"8080"`
	HTTPTimeout  time.Duration `json:"http_timeout" env:"TASKTRACK_HTTP_TIMEOUT" env-default:"10s"`
	LogLevel     string        `json:"log_level" env:"TASKTRACK_LOG_LEVEL" env-default:"INFO"`
	AMQPURL      string        `json:"amqp_url,omitempty" env:"TASKTRACK_AMQP_URL"`
	AMQPExchange string        `json:"amqp_exchange" env:"TASKTRACK_AMQP_EXCHANGE" env-default:"tasktrack.events"`
}

func Default() Config {
	return Config{
		DBDriver:     DriverSQLite,
		WebPort:      8080,
		HTTPTimeout:  10 * time.Second,
		LogLevel:     "INFO",
		AMQPExchange: "tasktrack.events",
	}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tasktrack", "config.json"), nil
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// Load reads path and applies environment overrides. A missing file is not
// an error; the environment and defaults are used instead.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read env: %w", err)
		}
		return cfg, cfg.Validate()
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return Config{}, fmt.Errorf("parse config %q: %w", path, err)
		}
		cfg = Config{}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read env: %w", err)
		}
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DBURL == "" {
			return errors.New("db_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown db_driver %q", c.DBDriver)
	}
	if c.WebPort < 0 || c.WebPort > 65535 {
		return fmt.Errorf("invalid web_port %d", c.WebPort)
	}
	return nil
}

func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
