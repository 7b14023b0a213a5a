package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Payroll  PayrollConfig
	Ingest   IngestConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// PayrollConfig holds company-wide payroll defaults used when an employee
// has no value of their own configured.
type PayrollConfig struct {
	// DefaultWorkdays is the fallback workday set, e.g. "Mon,Tue,Wed,Thu,Fri".
	DefaultWorkdays []time.Weekday
	// OvertimeMultiplierFallback applies when an employee's multiplier is zero.
	OvertimeMultiplierFallback float64
}

// IngestConfig controls the background punch pull-sync job.
type IngestConfig struct {
	PullEnabled  bool
	PullInterval time.Duration
	// PullURLs lists gateway endpoints polled for punches, comma-separated.
	PullURLs []string
}

func Load() (*Config, error) {
	// Missing .env is fine in production; env vars may come from the host.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "paytrack"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	var origins []string
	for _, origin := range strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: origins,
	}

	// Payroll defaults
	workdays, err := ParseWorkdays(getEnv("DEFAULT_WORKDAYS", "Mon,Tue,Wed,Thu,Fri"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_WORKDAYS: %w", err)
	}

	overtimeMultiplier, err := strconv.ParseFloat(getEnv("OVERTIME_MULTIPLIER_FALLBACK", "1.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OVERTIME_MULTIPLIER_FALLBACK: %w", err)
	}

	config.Payroll = PayrollConfig{
		DefaultWorkdays:            workdays,
		OvertimeMultiplierFallback: overtimeMultiplier,
	}

	// Punch pull-sync configuration
	pullInterval, err := time.ParseDuration(getEnv("PUNCH_PULL_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUNCH_PULL_INTERVAL: %w", err)
	}

	var pullURLs []string
	for _, url := range strings.Split(getEnv("PUNCH_PULL_URLS", ""), ",") {
		if url = strings.TrimSpace(url); url != "" {
			pullURLs = append(pullURLs, url)
		}
	}

	config.Ingest = IngestConfig{
		PullEnabled:  getEnv("PUNCH_PULL_ENABLED", "false") == "true",
		PullInterval: pullInterval,
		PullURLs:     pullURLs,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if len(c.Payroll.DefaultWorkdays) == 0 {
		return fmt.Errorf("DEFAULT_WORKDAYS must name at least one weekday")
	}
	if c.Ingest.PullEnabled && c.Ingest.PullInterval < time.Second {
		return fmt.Errorf("PUNCH_PULL_INTERVAL must be at least 1s")
	}
	if c.Ingest.PullEnabled && len(c.Ingest.PullURLs) == 0 {
		return fmt.Errorf("PUNCH_PULL_URLS is required when pull sync is enabled")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWorkdays parses a comma-separated weekday list ("Mon,Tue,...").
// Names are matched on their first three letters, case-insensitive.
func ParseWorkdays(value string) ([]time.Weekday, error) {
	var result []time.Weekday
	seen := make(map[time.Weekday]bool)
	for _, part := range strings.Split(value, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if len(name) > 3 {
			name = name[:3]
		}
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		if !seen[day] {
			seen[day] = true
			result = append(result, day)
		}
	}
	return result, nil
}
