package models

import "time"

// Account links a Telegram chat to a backend login.
// Profile is the cached copy of the backend user.
type Account struct {
	ChatID          int64     `json:"chat_id" db:"chat_id"`
	Username        string    `json:"username" db:"username"`
	Token           string    `json:"-" db:"token"`
	UserID          int64     `json:"user_id" db:"user_id"`
	Profile         User      `json:"profile" db:"-"`
	ReminderEnabled bool      `json:"reminder_enabled" db:"reminder_enabled"`
	ReminderHour    int       `json:"reminder_hour" db:"reminder_hour"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// LoggedIn reports whether the account holds a bearer token
func (a *Account) LoggedIn() bool {
	return a != nil && a.Token != ""
}
