package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/murojaahbot/pkg/models"
)

// AccountRepository caches the backend login of each Telegram chat
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new repository instance
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// accountRow mirrors the accounts table; the profile is stored as JSON
type accountRow struct {
	ChatID          int64     `db:"chat_id"`
	Username        string    `db:"username"`
	Token           string    `db:"token"`
	UserID          int64     `db:"user_id"`
	Profile         string    `db:"profile"`
	ReminderEnabled bool      `db:"reminder_enabled"`
	ReminderHour    int       `db:"reminder_hour"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r accountRow) toModel() (*models.Account, error) {
	acc := &models.Account{
		ChatID:          r.ChatID,
		Username:        r.Username,
		Token:           r.Token,
		UserID:          r.UserID,
		ReminderEnabled: r.ReminderEnabled,
		ReminderHour:    r.ReminderHour,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Profile != "" {
		if err := json.Unmarshal([]byte(r.Profile), &acc.Profile); err != nil {
			return nil, fmt.Errorf("failed to parse profile: %w", err)
		}
	}
	return acc, nil
}

const accountColumns = `chat_id, username, token, user_id, profile, reminder_enabled, reminder_hour, created_at, updated_at`

// Get returns the account of a chat, ErrNotFound if the chat never logged in
func (r *AccountRepository) Get(ctx context.Context, chatID int64) (*models.Account, error) {
	var row accountRow
	query := r.db.Rebind(`SELECT ` + accountColumns + ` FROM accounts WHERE chat_id = ?`)
	err := r.db.GetContext(ctx, &row, query, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return row.toModel()
}

// SaveLogin stores a fresh token and profile for a chat, creating the
// account with the given default reminder hour on first login.
func (r *AccountRepository) SaveLogin(ctx context.Context, acc *models.Account) error {
	profile, err := json.Marshal(acc.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := r.db.Rebind(`
		INSERT INTO accounts (chat_id, username, token, user_id, profile, reminder_enabled, reminder_hour)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (chat_id) DO UPDATE SET
			username = excluded.username,
			token = excluded.token,
			user_id = excluded.user_id,
			profile = excluded.profile,
			updated_at = CURRENT_TIMESTAMP
	`)
	_, err = r.db.ExecContext(ctx, query,
		acc.ChatID,
		acc.Username,
		acc.Token,
		acc.Profile.ID,
		string(profile),
		acc.ReminderEnabled,
		acc.ReminderHour,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	acc.UserID = acc.Profile.ID
	return nil
}

// UpdateProfile replaces the cached profile of a chat
func (r *AccountRepository) UpdateProfile(ctx context.Context, chatID int64, user models.User) error {
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := r.db.Rebind(`UPDATE accounts SET profile = ?, user_id = ?, updated_at = CURRENT_TIMESTAMP WHERE chat_id = ?`)
	return r.execOne(ctx, "update profile", query, string(profile), user.ID, chatID)
}

// ClearToken logs the chat out while keeping its reminder settings
func (r *AccountRepository) ClearToken(ctx context.Context, chatID int64) error {
	query := r.db.Rebind(`UPDATE accounts SET token = '', updated_at = CURRENT_TIMESTAMP WHERE chat_id = ?`)
	return r.execOne(ctx, "clear token", query, chatID)
}

// SetReminder changes the daily reminder of a chat
func (r *AccountRepository) SetReminder(ctx context.Context, chatID int64, enabled bool, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("invalid reminder hour %d", hour)
	}
	query := r.db.Rebind(`UPDATE accounts SET reminder_enabled = ?, reminder_hour = ?, updated_at = CURRENT_TIMESTAMP WHERE chat_id = ?`)
	return r.execOne(ctx, "set reminder", query, enabled, hour, chatID)
}

// ListForReminder returns logged in accounts whose reminder is due at hour
func (r *AccountRepository) ListForReminder(ctx context.Context, hour int) ([]models.Account, error) {
	var rows []accountRow
	query := r.db.Rebind(`
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE reminder_enabled = ? AND reminder_hour = ? AND token <> ''
		ORDER BY chat_id
	`)
	if err := r.db.SelectContext(ctx, &rows, query, true, hour); err != nil {
		return nil, fmt.Errorf("failed to list accounts for reminder: %w", err)
	}

	accounts := make([]models.Account, 0, len(rows))
	for _, row := range rows {
		acc, err := row.toModel()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	return accounts, nil
}

// Count returns the number of linked chats and how many are logged in
func (r *AccountRepository) Count(ctx context.Context) (total, loggedIn int, err error) {
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(CASE WHEN token <> '' THEN 1 ELSE 0 END), 0) FROM accounts`).
		Scan(&total, &loggedIn)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return total, loggedIn, nil
}

func (r *AccountRepository) execOne(ctx context.Context, op, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
