package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Attendance AttendanceConfig
	Leave      LeaveConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

// RedisConfig is optional. An empty Addr disables Redis and keeps the token
// blocklist in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
}

// AttendanceConfig holds the default attendance policy applied to companies
// that have not saved their own.
type AttendanceConfig struct {
	LateGraceMinutes int
	FullDayHours     float64
	HalfDayHours     float64
	AutoCloseEvery   time.Duration
}

// LeaveConfig holds the annual paid leave allowance per leave type.
type LeaveConfig struct {
	CasualDays float64
	SickDays   float64
	EarnedDays float64
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

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
		Name:     getEnv("DB_NAME", "hris_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Kolkata"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	// Attendance policy defaults
	attendance, err := loadAttendanceConfig()
	if err != nil {
		return nil, err
	}
	config.Attendance = attendance

	leave, err := loadLeaveConfig()
	if err != nil {
		return nil, err
	}
	config.Leave = leave

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadAttendanceConfig() (AttendanceConfig, error) {
	grace, err := strconv.Atoi(getEnv("ATTENDANCE_LATE_GRACE_MINUTES", "10"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_LATE_GRACE_MINUTES: %w", err)
	}
	fullDay, err := strconv.ParseFloat(getEnv("ATTENDANCE_FULL_DAY_HOURS", "8"), 64)
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_FULL_DAY_HOURS: %w", err)
	}
	halfDay, err := strconv.ParseFloat(getEnv("ATTENDANCE_HALF_DAY_HOURS", "4"), 64)
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_HALF_DAY_HOURS: %w", err)
	}
	every, err := time.ParseDuration(getEnv("ATTENDANCE_AUTO_CLOSE_INTERVAL", "1h"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_AUTO_CLOSE_INTERVAL: %w", err)
	}
	return AttendanceConfig{
		LateGraceMinutes: grace,
		FullDayHours:     fullDay,
		HalfDayHours:     halfDay,
		AutoCloseEvery:   every,
	}, nil
}

func loadLeaveConfig() (LeaveConfig, error) {
	var cfg LeaveConfig
	for _, f := range []struct {
		key, fallback string
		dst           *float64
	}{
		{"LEAVE_CASUAL_DAYS", "12", &cfg.CasualDays},
		{"LEAVE_SICK_DAYS", "12", &cfg.SickDays},
		{"LEAVE_EARNED_DAYS", "15", &cfg.EarnedDays},
	} {
		v, err := strconv.ParseFloat(getEnv(f.key, f.fallback), 64)
		if err != nil {
			return LeaveConfig{}, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		if v < 0 || v > 366 {
			return LeaveConfig{}, fmt.Errorf("%s must be between 0 and 366", f.key)
		}
		*f.dst = v
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.ParseDuration(c.JWT.RefreshExpiration); err != nil {
		return fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Attendance.LateGraceMinutes < 0 {
		return fmt.Errorf("ATTENDANCE_LATE_GRACE_MINUTES must not be negative")
	}
	if c.Attendance.HalfDayHours <= 0 || c.Attendance.HalfDayHours > c.Attendance.FullDayHours {
		return fmt.Errorf("ATTENDANCE_HALF_DAY_HOURS must be positive and not exceed ATTENDANCE_FULL_DAY_HOURS")
	}
	if c.Attendance.FullDayHours > 24 {
		return fmt.Errorf("ATTENDANCE_FULL_DAY_HOURS must not exceed 24")
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

// Location returns the configured default timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		slog.Warn("falling back to UTC", "timezone", c.App.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
