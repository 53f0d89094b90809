package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logger   LoggerConfig   `yaml:"logger"`
	Alerts   AlertConfig    `yaml:"alerts"`
	Sweeps   SweepConfig    `yaml:"sweeps"`
	Security SecurityConfig `yaml:"security"`
	JWT      JWTConfig      `yaml:"jwt"`
}

type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	DBName          string        `yaml:"name"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	LockTimeout     time.Duration `yaml:"lock_timeout"`
}

type LoggerConfig struct {
	Level      string `yaml:"level"`
	TimeFormat string `yaml:"time_format"`
	Pretty     bool   `yaml:"pretty"`
}

// AlertConfig is the threshold ladder driving budget alerts. Warning tiers
// must be strictly ascending and below the auto-stop tier.
type AlertConfig struct {
	WarningThresholds []float64 `yaml:"warning_thresholds"`
	AutoStopThreshold float64   `yaml:"auto_stop_threshold"`
}

type SweepConfig struct {
	ThresholdSpec    string        `yaml:"threshold_spec"`
	ExpirySpec       string        `yaml:"expiry_spec"`
	AlertCleanupSpec string        `yaml:"alert_cleanup_spec"`
	AlertRetention   time.Duration `yaml:"alert_retention"`
	PendingBatchSize int           `yaml:"pending_batch_size"`
}

type SecurityConfig struct {
	APIKey string `yaml:"api_key"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

func Load() (*Config, error) {
	// .env is optional outside local development.
	_ = godotenv.Load()

	path := os.Getenv("CBS_CONFIG")
	if path == "" {
		path = "./config.yaml"
	}

	configData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(configData, &config); err != nil {
		return nil, err
	}
	config.applyDefaults()
	config.applyEnvOverrides()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Database.LockTimeout == 0 {
		c.Database.LockTimeout = 5 * time.Second
	}
	if len(c.Alerts.WarningThresholds) == 0 {
		c.Alerts.WarningThresholds = []float64{60, 80}
	}
	if c.Alerts.AutoStopThreshold == 0 {
		c.Alerts.AutoStopThreshold = 90
	}
	if c.Sweeps.ThresholdSpec == "" {
		c.Sweeps.ThresholdSpec = "@every 15m"
	}
	if c.Sweeps.ExpirySpec == "" {
		c.Sweeps.ExpirySpec = "@hourly"
	}
	if c.Sweeps.AlertCleanupSpec == "" {
		c.Sweeps.AlertCleanupSpec = "@daily"
	}
	if c.Sweeps.AlertRetention == 0 {
		c.Sweeps.AlertRetention = 90 * 24 * time.Hour
	}
	if c.Sweeps.PendingBatchSize == 0 {
		c.Sweeps.PendingBatchSize = 100
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CBS_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("CBS_JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
	if v := os.Getenv("CBS_API_KEY"); v != "" {
		c.Security.APIKey = v
	}
}

// Validate rejects threshold ladders the monitor cannot apply monotonically.
func (c *Config) Validate() error {
	prev := 0.0
	for _, t := range c.Alerts.WarningThresholds {
		if t <= 0 || t > 100 {
			return fmt.Errorf("warning threshold %.2f out of range (0, 100]", t)
		}
		if t <= prev {
			return fmt.Errorf("warning thresholds must be strictly ascending, got %.2f after %.2f", t, prev)
		}
		prev = t
	}
	if c.Alerts.AutoStopThreshold <= prev || c.Alerts.AutoStopThreshold > 100 {
		return fmt.Errorf("auto_stop_threshold %.2f must be above all warning thresholds and at most 100", c.Alerts.AutoStopThreshold)
	}
	return nil
}
