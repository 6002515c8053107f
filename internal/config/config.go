package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration of the portal API.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	S3       S3Config       `yaml:"s3"`
	Auth     AuthConfig     `yaml:"auth"`
	Logger   LoggerConfig   `yaml:"logger"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"`
	BasePath        string        `yaml:"base_path"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	Path            string        `yaml:"path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// GetDSN builds the driver specific data source name.
func (d DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled reports whether a redis address has been configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type S3Config struct {
	Region           string `yaml:"region"`
	Endpoint         string `yaml:"endpoint"`
	AccessKey        string `yaml:"access_key"`
	SecretKey        string `yaml:"secret_key"`
	PublicBaseURL    string `yaml:"public_base_url"`
	FilesBucket      string `yaml:"files_bucket"`
	OnboardingBucket string `yaml:"onboarding_bucket"`
	MaxUploadBytes   int64  `yaml:"max_upload_bytes"`
}

type AuthConfig struct {
	SessionSecret     string        `yaml:"session_secret"`
	SessionTTL        time.Duration `yaml:"session_ttl"`
	AdminPasswordMode string        `yaml:"admin_password_mode"`
	PasscodeMode      string        `yaml:"passcode_mode"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

type JobsConfig struct {
	CleanupSchedule string        `yaml:"cleanup_schedule"`
	AssetRetention  time.Duration `yaml:"asset_retention"`
}

type MetricsConfig struct {
	StatsInterval time.Duration `yaml:"stats_interval"`
}

const (
	PasswordModePlaintext = "plaintext"
	PasswordModeBcrypt    = "bcrypt"

	PasscodeModeCaseInsensitive = "case-insensitive"
	PasscodeModeConstantTime    = "constant-time"
)

// Default returns the configuration used when no file or environment overrides are present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Mode:            "debug",
			BasePath:        "/api/portal",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			User:            "portal",
			Name:            "client_portal",
			SSLMode:         "disable",
			Path:            "client_portal.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		S3: S3Config{
			Region:           "us-east-1",
			FilesBucket:      "project-files",
			OnboardingBucket: "onboarding-assets",
			MaxUploadBytes:   10 << 20,
		},
		Auth: AuthConfig{
			SessionTTL:        12 * time.Hour,
			AdminPasswordMode: PasswordModePlaintext,
			PasscodeMode:      PasscodeModeCaseInsensitive,
		},
		Logger: LoggerConfig{Level: "info"},
		Jobs: JobsConfig{
			CleanupSchedule: "0 */30 * * * *",
			AssetRetention:  24 * time.Hour,
		},
		Metrics: MetricsConfig{StatsInterval: time.Minute},
	}
}

// Load reads .env (when present), then the YAML file at path, then environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.Mode, "GIN_MODE")
	setString(&cfg.Server.BasePath, "SERVER_BASE_PATH")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	setString(&cfg.Database.Path, "DB_PATH")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")

	setString(&cfg.S3.Region, "S3_REGION")
	setString(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.S3.PublicBaseURL, "S3_PUBLIC_BASE_URL")
	setString(&cfg.S3.FilesBucket, "S3_FILES_BUCKET")
	setString(&cfg.S3.OnboardingBucket, "S3_ONBOARDING_BUCKET")

	setString(&cfg.Auth.SessionSecret, "AUTH_SESSION_SECRET")
	setDuration(&cfg.Auth.SessionTTL, "AUTH_SESSION_TTL")
	setString(&cfg.Auth.AdminPasswordMode, "AUTH_ADMIN_PASSWORD_MODE")
	setString(&cfg.Auth.PasscodeMode, "AUTH_PASSCODE_MODE")

	setString(&cfg.Logger.Level, "LOG_LEVEL")
	setString(&cfg.Jobs.CleanupSchedule, "JOBS_CLEANUP_SCHEDULE")
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Auth.SessionSecret == "" {
		return errors.New("auth.session_secret is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("auth.session_ttl must be positive")
	}
	switch c.Auth.AdminPasswordMode {
	case PasswordModePlaintext, PasswordModeBcrypt:
	default:
		return fmt.Errorf("unknown auth.admin_password_mode %q", c.Auth.AdminPasswordMode)
	}
	switch c.Auth.PasscodeMode {
	case PasscodeModeCaseInsensitive, PasscodeModeConstantTime:
	default:
		return fmt.Errorf("unknown auth.passcode_mode %q", c.Auth.PasscodeMode)
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if c.S3.MaxUploadBytes <= 0 {
		return errors.New("s3.max_upload_bytes must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
