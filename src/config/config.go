package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// const dsn = "host=localhost user=postgres password=postgres dbname=ticketing port=5432 sslmode=disable TimeZone=UTC"

type Config struct {
	APIEnv          string
	Port            string
	AppHost         string
	LogDir          string
	AdminSecret     string
	MaintenanceMode bool

	Database DatabaseConfig
	Mail     MailConfig
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	TimeZone     string
	MaxIdleConns int
	MaxOpenConns int
}

type MailConfig struct {
	Provider string
	From     string
	FromName string
	Timeout  time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	AWSRegion string

	MailersendAPIKey string
}

const (
	MAIL_PROVIDER_LOG        = "log"
	MAIL_PROVIDER_SMTP       = "smtp"
	MAIL_PROVIDER_SES        = "ses"
	MAIL_PROVIDER_MAILERSEND = "mailersend"
)

// Load reads the configuration from the environment. On local environments a
// .env file in the working directory is loaded first.
func Load() (*Config, error) {
	if os.Getenv("API_ENV") == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env: %w", err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}
	cfg := &Config{
		APIEnv:      env("API_ENV", "local"),
		Port:        env("PORT", "9090"),
		AppHost:     getenv("APP_HOST"),
		LogDir:      env("LOG_DIR", "logs"),
		AdminSecret: getenv("ADMIN_SECRET"),
		Database: DatabaseConfig{
			Host:     env("DATABASE_HOST", "localhost"),
			Port:     env("DATABASE_PORT", "5432"),
			User:     env("DATABASE_USER", "postgres"),
			Password: getenv("DATABASE_PASSWORD"),
			Name:     env("DATABASE_NAME", "ticketing"),
			SSLMode:  env("DATABASE_SSLMODE", "disable"),
			TimeZone: env("DATABASE_TIMEZONE", "UTC"),
		},
		Mail: MailConfig{
			Provider:         env("MAIL_PROVIDER", MAIL_PROVIDER_LOG),
			From:             env("MAIL_FROM", "no-reply@localhost"),
			FromName:         env("MAIL_FROM_NAME", "Ticketing"),
			SMTPHost:         getenv("SMTP_HOST"),
			SMTPUsername:     getenv("SMTP_USERNAME"),
			SMTPPassword:     getenv("SMTP_PASSWORD"),
			AWSRegion:        getenv("AWS_REGION"),
			MailersendAPIKey: getenv("MAILERSEND_API_KEY"),
		},
	}

	var err error
	if cfg.MaintenanceMode, err = parseBool(getenv("MAINTENANCE_MODE")); err != nil {
		return nil, fmt.Errorf("MAINTENANCE_MODE: %w", err)
	}
	if cfg.Database.MaxIdleConns, err = strconv.Atoi(env("DATABASE_MAX_IDLE_CONNS", "10")); err != nil {
		return nil, fmt.Errorf("DATABASE_MAX_IDLE_CONNS: %w", err)
	}
	if cfg.Database.MaxOpenConns, err = strconv.Atoi(env("DATABASE_MAX_OPEN_CONNS", "100")); err != nil {
		return nil, fmt.Errorf("DATABASE_MAX_OPEN_CONNS: %w", err)
	}
	if cfg.Mail.SMTPPort, err = strconv.Atoi(env("SMTP_PORT", "587")); err != nil {
		return nil, fmt.Errorf("SMTP_PORT: %w", err)
	}
	if cfg.Mail.Timeout, err = time.ParseDuration(env("MAIL_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("MAIL_TIMEOUT: %w", err)
	}

	switch cfg.Mail.Provider {
	case MAIL_PROVIDER_LOG, MAIL_PROVIDER_SMTP, MAIL_PROVIDER_SES, MAIL_PROVIDER_MAILERSEND:
	default:
		return nil, fmt.Errorf("unknown MAIL_PROVIDER %q", cfg.Mail.Provider)
	}
	if cfg.IsProd() && cfg.AdminSecret == "" {
		return nil, fmt.Errorf("ADMIN_SECRET must be set in production")
	}
	return cfg, nil
}

func (c *Config) GetDSN() string {
	d := c.Database
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone)
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) IsProd() bool {
	return c.APIEnv == "production" || c.APIEnv == "prod"
}

func parseBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
