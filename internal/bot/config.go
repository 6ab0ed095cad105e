package bot

import (
	"time"
)

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Time zone used for "today" in /log, /add and reminders
	Location *time.Location
	// Reminder hour stored for a chat on its first login
	DefaultReminderHour int
	// Number of entries /riwayat shows
	HistoryLimit int
	// Longest date range /export accepts, in days
	ExportMaxDays int
	// Timeout for handling a single update
	RequestTimeout time.Duration
	// Telegram user IDs allowed to run /admin_stats
	AdminUserIDs map[int64]bool
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		Location:            time.UTC,
		DefaultReminderHour: 20,
		HistoryLimit:        5,
		ExportMaxDays:       31,
		RequestTimeout:      time.Minute,
		AdminUserIDs:        make(map[int64]bool),
	}
}
