// Package config loads and validates the JSON configuration document.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Server struct {
	Address string `json:"address"`
	Port    int    `json:"port"`
	Threads int    `json:"threads"`
}

type SSL struct {
	CertificateFile string `json:"certificate_file"`
	PrivateKeyFile  string `json:"private_key_file"`
	DHParamsFile    string `json:"dh_params_file"`
}

type Database struct {
	Address           string `json:"address"`
	Port              int    `json:"port"`
	Username          string `json:"username"`
	Password          string `json:"password"`
	DBName            string `json:"db_name"`
	MaxConnections    int    `json:"max_connections"`
	ConnectionTimeout int    `json:"connection_timeout"` // seconds
}

type JWT struct {
	SecretKey                string `json:"secret_key"`
	AccessTokenExpiryMinutes int    `json:"access_token_expiry_minutes"`
	RefreshTokenExpiryDays   int    `json:"refresh_token_expiry_days"`
}

type Logging struct {
	Level         string `json:"level"`
	AccessLog     string `json:"access_log"`
	ErrorLog      string `json:"error_log"`
	ConsoleOutput bool   `json:"console_output"`
	LogAccess     bool   `json:"log_access"`
}

type Config struct {
	Server   Server   `json:"server"`
	SSL      SSL      `json:"ssl"`
	Database Database `json:"database"`
	JWT      JWT      `json:"jwt"`
	Logging  Logging  `json:"logging"`
}

const (
	MinThreads = 1
	MaxThreads = 1024
)

// Load reads, parses and validates the config file. Defaults are applied
// before validation so a minimal document stays usable.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := defaults()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: Server{Address: "0.0.0.0", Port: 8443, Threads: 4},
		Database: Database{
			Address:           "localhost",
			Port:              5432,
			MaxConnections:    10,
			ConnectionTimeout: 30,
		},
		JWT: JWT{
			AccessTokenExpiryMinutes: 15,
			RefreshTokenExpiryDays:   7,
		},
		Logging: Logging{
			Level:         "info",
			AccessLog:     "access.log",
			ErrorLog:      "error.log",
			ConsoleOutput: true,
			LogAccess:     true,
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port >= 65535 {
		return fmt.Errorf("server.port %d out of range [1, 65535)", c.Server.Port)
	}
	if c.Server.Threads < MinThreads || c.Server.Threads > MaxThreads {
		return fmt.Errorf("server.threads %d out of range [%d, %d]", c.Server.Threads, MinThreads, MaxThreads)
	}

	for _, f := range []struct{ key, path string }{
		{"ssl.certificate_file", c.SSL.CertificateFile},
		{"ssl.private_key_file", c.SSL.PrivateKeyFile},
	} {
		if f.path == "" {
			return fmt.Errorf("missing required config key: %s", f.key)
		}
		if _, err := os.Stat(f.path); err != nil {
			return fmt.Errorf("%s: cannot open %s: %w", f.key, f.path, err)
		}
	}
	// dh_params_file is optional; when set it must exist
	if c.SSL.DHParamsFile != "" {
		if _, err := os.Stat(c.SSL.DHParamsFile); err != nil {
			return fmt.Errorf("ssl.dh_params_file: cannot open %s: %w", c.SSL.DHParamsFile, err)
		}
	}

	if c.Database.Username == "" {
		return fmt.Errorf("missing required config key: database.username")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("missing required config key: database.db_name")
	}
	if c.Database.Port < 1 || c.Database.Port >= 65535 {
		return fmt.Errorf("database.port %d out of range [1, 65535)", c.Database.Port)
	}
	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database.max_connections must be at least 1, got %d", c.Database.MaxConnections)
	}

	if c.JWT.SecretKey == "" {
		return fmt.Errorf("missing required config key: jwt.secret_key")
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warning", "error", "fatal":
	default:
		return fmt.Errorf("logging.level %q not one of trace/debug/info/warning/error/fatal", c.Logging.Level)
	}

	return nil
}

// ListenAddr returns the bind endpoint in host:port form.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// DSN builds the Postgres connection string from the database section.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable&connect_timeout=%d",
		c.Database.Username, c.Database.Password,
		c.Database.Address, c.Database.Port, c.Database.DBName,
		c.Database.ConnectionTimeout,
	)
}
