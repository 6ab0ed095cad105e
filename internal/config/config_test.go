package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.True(t, cfg.SchedulerEnabled)
	assert.Equal(t, 20, cfg.DefaultReminderHour)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Error(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"TELEGRAM_BOT_TOKEN": "123:abc",
		"MUROJAAH_API_URL":   "https://murojaah.example/api/",
		"API_TIMEOUT":        "5s",
		"DB_DRIVER":          "postgresql",
		"DATABASE_URL":       "postgres://u:p@localhost/murojaah?sslmode=disable",
		"HTTP_ADDR":          "-",
		"ENABLE_SCHEDULER":   "false",
		"REMINDER_HOUR":      "5",
		"TIMEZONE":           "Asia/Jakarta",
		"ADMIN_USER_IDS":     "1, 2,x",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://murojaah.example/api", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "", cfg.HTTPAddr)
	assert.False(t, cfg.SchedulerEnabled)
	assert.Equal(t, 5, cfg.DefaultReminderHour)
	assert.Equal(t, "Asia/Jakarta", cfg.Location.String())
	assert.Equal(t, map[int64]bool{1: true, 2: true}, cfg.AdminUserIDs)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"bad timeout", map[string]string{"API_TIMEOUT": "soon"}},
		{"bad hour", map[string]string{"REMINDER_HOUR": "24"}},
		{"bad zone", map[string]string{"TIMEZONE": "Mars/Base"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envMap(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MUROJAAH_TEST_ONLY_VAR=loaded\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("MUROJAAH_TEST_ONLY_VAR") })

	_, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "loaded", os.Getenv("MUROJAAH_TEST_ONLY_VAR"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
