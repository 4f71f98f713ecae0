package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"stockdesk/internal/allocation"
)

const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Log        LogConfig
	Storage    StorageConfig
	Allocation AllocationConfig
	Order      OrderConfig
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type StorageConfig struct {
	Driver   string
	SeedFile string
}

type AllocationConfig struct {
	ZeroRequested allocation.ZeroRequestedPolicy
	EditPolicy    allocation.EditPolicy
}

type OrderConfig struct {
	MaxRetryAttempts int
}

// Load reads configuration from the environment, optionally layered over
// the YAML file named by CONFIG_FILE. Keys in the file use the same names
// as the environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "stockdesk")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "stockdesk")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE_DAYS", 7)
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("ALLOCATION_ZERO_REQUESTED", string(allocation.ZeroRequestedFulfilled))
	v.SetDefault("ALLOCATION_EDIT_POLICY", string(allocation.EditPolicyReject))
	v.SetDefault("ORDER_MAX_RETRY_ATTEMPTS", 3)

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}

	shutdownTimeout, err := time.ParseDuration(v.GetString("SERVER_SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing SERVER_SHUTDOWN_TIMEOUT: %w", err)
	}

	zeroRequested, err := allocation.ParseZeroRequestedPolicy(strings.ToLower(v.GetString("ALLOCATION_ZERO_REQUESTED")))
	if err != nil {
		return nil, fmt.Errorf("parsing ALLOCATION_ZERO_REQUESTED: %w", err)
	}

	editPolicy, err := allocation.ParseEditPolicy(strings.ToLower(v.GetString("ALLOCATION_EDIT_POLICY")))
	if err != nil {
		return nil, fmt.Errorf("parsing ALLOCATION_EDIT_POLICY: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: shutdownTimeout,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			File:       v.GetString("LOG_FILE"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(v.GetString("STORAGE_DRIVER")),
			SeedFile: v.GetString("SEED_FILE"),
		},
		Allocation: AllocationConfig{
			ZeroRequested: zeroRequested,
			EditPolicy:    editPolicy,
		},
		Order: OrderConfig{
			MaxRetryAttempts: v.GetInt("ORDER_MAX_RETRY_ATTEMPTS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Storage.Driver {
	case StorageMemory, StorageMySQL:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMemory, StorageMySQL, c.Storage.Driver)
	}

	if _, err := allocation.ParseZeroRequestedPolicy(string(c.Allocation.ZeroRequested)); err != nil {
		return fmt.Errorf("ALLOCATION_ZERO_REQUESTED: %w", err)
	}

	if _, err := allocation.ParseEditPolicy(string(c.Allocation.EditPolicy)); err != nil {
		return fmt.Errorf("ALLOCATION_EDIT_POLICY: %w", err)
	}

	if c.Order.MaxRetryAttempts < 1 {
		return fmt.Errorf("ORDER_MAX_RETRY_ATTEMPTS must be at least 1, got %d", c.Order.MaxRetryAttempts)
	}

	return nil
}
