package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config holds every setting of the bot process
type Config struct {
	// Telegram bot token
	TelegramToken string
	// Base URL of the murojaah backend, without trailing slash
	APIURL string
	// Timeout for a single backend request
	APITimeout time.Duration
	// sqlite3 or postgres
	DBDriver string
	// File path for sqlite3, connection string for postgres
	DatabaseURL string
	// Listen address of the preview/health HTTP server, empty disables it
	HTTPAddr string
	// Whether hourly reminders run
	SchedulerEnabled bool
	// Reminder hour for newly linked chats
	DefaultReminderHour int
	// Time zone used for "today" and reminder hours
	Location *time.Location
	// Telegram user IDs allowed to run admin commands
	AdminUserIDs map[int64]bool
}

// DefaultConfig returns the configuration used when no variable is set
func DefaultConfig() *Config {
	return &Config{
		APIURL:              "http://localhost:8000/api",
		APITimeout:          15 * time.Second,
		DBDriver:            "sqlite3",
		DatabaseURL:         "data/murojaah.db",
		HTTPAddr:            ":8080",
		SchedulerEnabled:    true,
		DefaultReminderHour: 20,
		Location:            time.UTC,
		AdminUserIDs:        make(map[int64]bool),
	}
}

// Load reads an optional .env file and then the process environment
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %v", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a variable lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()

	cfg.TelegramToken = getenv("TELEGRAM_BOT_TOKEN")
	if v := getenv("MUROJAAH_API_URL"); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if v := getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid API_TIMEOUT: %v", err)
		}
		cfg.APITimeout = d
	}
	if v := getenv("DB_DRIVER"); v != "" {
		switch v {
		case "sqlite3", "sqlite":
			cfg.DBDriver = "sqlite3"
		case "postgres", "postgresql":
			cfg.DBDriver = "postgres"
		default:
			return nil, fmt.Errorf("unsupported DB_DRIVER %q", v)
		}
	}
	if v := getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v, ok := lookup(getenv, "HTTP_ADDR"); ok {
		cfg.HTTPAddr = v
	}
	cfg.SchedulerEnabled = getenv("ENABLE_SCHEDULER") != "false"
	if v := getenv("REMINDER_HOUR"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil || h < 0 || h > 23 {
			return nil, fmt.Errorf("invalid REMINDER_HOUR %q: expected 0-23", v)
		}
		cfg.DefaultReminderHour = h
	}
	if v := getenv("TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE: %v", err)
		}
		cfg.Location = loc
	}
	if v := getenv("ADMIN_USER_IDS"); v != "" {
		for _, idStr := range strings.Split(v, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				log.Printf("Warning: Invalid admin user ID: %s", idStr)
				continue
			}
			cfg.AdminUserIDs[id] = true
		}
	}

	return cfg, nil
}

// lookup treats the literal value "-" as an explicit empty setting
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	if v == "" {
		return "", false
	}
	if v == "-" {
		return "", true
	}
	return v, true
}

// Validate checks the settings needed to run the bot
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	if c.APIURL == "" {
		return fmt.Errorf("MUROJAAH_API_URL environment variable is not set")
	}
	return nil
}
