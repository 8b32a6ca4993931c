package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string `mapstructure:"DB_DSN"`
	Environment    string `mapstructure:"ENV"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	Timezone       string `mapstructure:"TIMEZONE"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	AttendanceGracePeriod time.Duration `mapstructure:"ATTENDANCE_GRACE_PERIOD"`
	EditWindowGracePeriod time.Duration `mapstructure:"EDIT_WINDOW_GRACE_PERIOD"`

	FacilityHoursCacheTTL    time.Duration `mapstructure:"FACILITY_HOURS_CACHE_TTL"`
	ConflictCheckConcurrency int           `mapstructure:"CONFLICT_CHECK_CONCURRENCY"`
	RespectOffSchedule       bool          `mapstructure:"RESPECT_OFF_SCHEDULE"`

	// Сообщений в секунду на один чат
	BotRateLimit float64 `mapstructure:"BOT_RATE_LIMIT"`
	BotRateBurst int     `mapstructure:"BOT_RATE_BURST"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфиг из переменных окружения без загрузки .env
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Environment:    getString("ENV", "development"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		Timezone:       getString("TIMEZONE", "Asia/Seoul"),
		MigrationsPath: getString("MIGRATIONS_PATH", "migrations"),
	}

	var err error
	if cfg.AttendanceGracePeriod, err = getDuration("ATTENDANCE_GRACE_PERIOD", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.EditWindowGracePeriod, err = getDuration("EDIT_WINDOW_GRACE_PERIOD", 60*time.Minute); err != nil {
		return nil, err
	}
	if cfg.FacilityHoursCacheTTL, err = getDuration("FACILITY_HOURS_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ConflictCheckConcurrency, err = getInt("CONFLICT_CHECK_CONCURRENCY", 8); err != nil {
		return nil, err
	}
	if cfg.BotRateBurst, err = getInt("BOT_RATE_BURST", 3); err != nil {
		return nil, err
	}
	if cfg.BotRateLimit, err = getFloat("BOT_RATE_LIMIT", 1); err != nil {
		return nil, err
	}
	if cfg.RespectOffSchedule, err = getBool("RESPECT_OFF_SCHEDULE", false); err != nil {
		return nil, err
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.ConflictCheckConcurrency <= 0 {
		return nil, fmt.Errorf("CONFLICT_CHECK_CONCURRENCY must be positive, got %d", cfg.ConflictCheckConcurrency)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location часовой пояс площадки
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return f, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}
