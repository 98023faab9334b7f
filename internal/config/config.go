package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. COMMITTEE_SERVER_PORT.
const EnvPrefix = "committee"

// Transport modes.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Meeting   MeetingConfig   `yaml:"meeting"`
	Transport TransportConfig `yaml:"transport"`
	MCP       MCPConfig       `yaml:"mcp"       envconfig:"mcp"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// LogConfig sets the log level. A non-empty Path logs to a size-capped file
// instead of the console.
type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl" split_words:"true"`
}

type MeetingConfig struct {
	OperationTimeout time.Duration `yaml:"operation_timeout" split_words:"true"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// MCPConfig controls the tool server. User is the acting user's email in
// stdio mode, where no bearer token is available.
type MCPConfig struct {
	Enabled bool   `yaml:"enabled"`
	User    string `yaml:"user"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "committee.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Meeting: MeetingConfig{
			OperationTimeout: 5 * time.Second,
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file named by
// COMMITTEE_CONFIG_PATH and COMMITTEE_* environment variables, in that order.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("COMMITTEE_CONFIG_PATH"))
}

// LoadFrom is Load with an explicit YAML path. An empty path skips the file.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.DB.Path == "" {
		errs = append(errs, errors.New("db.path is required"))
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Meeting.OperationTimeout <= 0 {
		errs = append(errs, errors.New("meeting.operation_timeout must be positive"))
	}
	switch c.Transport.Mode {
	case TransportHTTP:
	case TransportStdio:
		if !c.MCP.Enabled {
			errs = append(errs, errors.New("transport.mode stdio requires mcp.enabled"))
		}
		if c.MCP.User == "" {
			errs = append(errs, errors.New("transport.mode stdio requires mcp.user"))
		}
	default:
		errs = append(errs, fmt.Errorf("transport.mode %q must be http or stdio", c.Transport.Mode))
	}
	return errors.Join(errs...)
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level %q must be debug, info, warn or error", level)
}
