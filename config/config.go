package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the storefront
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig holds listener configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port" validate:"min=0,max=65535"`
	PortAttempts int           `mapstructure:"port_attempts" validate:"min=1"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// StorageConfig holds the on-disk locations
type StorageConfig struct {
	PublicDir string `mapstructure:"public_dir" validate:"required"`
	DataFile  string `mapstructure:"data_file" validate:"required"`
	UploadDir string `mapstructure:"upload_dir" validate:"required"`
}

// AuthConfig holds the admin console credentials.
// An empty PasswordHash leaves the console unable to log anyone in.
type AuthConfig struct {
	PasswordHash string        `mapstructure:"password_hash"`
	SessionTTL   time.Duration `mapstructure:"session_ttl" validate:"min=0"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// CORSConfig holds cross-origin settings for the admin API
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MetricsConfig toggles the /metrics endpoint
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from the environment and an optional .env file
func Load() (*Config, error) {
	// Missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks struct constraints on cfg
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.port_attempts", 10)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")

	v.SetDefault("storage.public_dir", "public")
	v.SetDefault("storage.data_file", "data/dress.json")
	v.SetDefault("storage.upload_dir", "public/uploads")

	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.session_ttl", "0s")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("metrics.enabled", true)
}

func bindEnvVars(v *viper.Viper) error {
	bindings := map[string]string{
		"server.host":          "HOST",
		"server.port":          "PORT",
		"server.port_attempts": "PORT_ATTEMPTS",
		"server.read_timeout":  "SERVER_READ_TIMEOUT",
		"server.write_timeout": "SERVER_WRITE_TIMEOUT",

		"storage.public_dir": "PUBLIC_DIR",
		"storage.data_file":  "DATA_FILE",
		"storage.upload_dir": "UPLOAD_DIR",

		"auth.password_hash": "ADMIN_PASSWORD_HASH",
		"auth.session_ttl":   "SESSION_TTL",

		"logger.level":  "LOG_LEVEL",
		"logger.format": "LOG_FORMAT",

		"cors.allowed_origins": "CORS_ALLOWED_ORIGINS",

		"metrics.enabled": "METRICS_ENABLED",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

// Addr returns the listen address for the given port
func (c ServerConfig) Addr(port int) string {
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}
