package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config file path.
const EnvPath = "CHRONICLE_CONFIG"

// DefaultPath is used when EnvPath is not set.
const DefaultPath = "config/chronicle.yaml"

// Simulator holds all configuration for the simulator and its actions.
type Simulator struct {
	LogLevel string `yaml:"log_level"`

	// DataDir is a directory of content table YAML files.
	// Empty means the tables embedded in the binary.
	DataDir string `yaml:"data_dir"`

	// База данных для replay store
	Database DatabaseConfig `yaml:"database"`

	Battle      Battle      `yaml:"battle"`
	Enhancement Enhancement `yaml:"enhancement"`
	Avatar      Avatar      `yaml:"avatar"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Enabled turns on replay storage.
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns Simulator config with sensible defaults.
func Default() Simulator {
	return Simulator{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "chronicle",
			Password: "chronicle",
			DBName:   "chronicle",
			SSLMode:  "disable",
		},
		Battle:      DefaultBattle(),
		Enhancement: DefaultEnhancement(),
		Avatar:      DefaultAvatar(),
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Simulator, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config path from the environment or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Validate checks values yaml cannot.
func (c Simulator) Validate() error {
	if c.Battle.TurnLimit < 0 {
		return fmt.Errorf("battle.turn_limit must be >= 0, got %d", c.Battle.TurnLimit)
	}
	if c.Battle.Workers < 0 {
		return fmt.Errorf("battle.workers must be >= 0, got %d", c.Battle.Workers)
	}
	if _, err := c.Enhancement.BeneficiaryAddress(); err != nil {
		return err
	}
	if c.Enhancement.Currency.DecimalPlaces < 0 {
		return fmt.Errorf("enhancement.currency.decimal_places must be >= 0")
	}
	if _, err := c.Avatar.NameRegexp(); err != nil {
		return err
	}
	return nil
}
