package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "DB_URL", "SQS_QUEUE_URL", "USER_EMAIL", "USER_PASSWORD", "JWT_LIFETIME"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "sqlite:///autocatalog.db", cfg.DBURL)
	assert.Equal(t, 10, cfg.SQSMaxMessages)
	assert.Equal(t, 5, cfg.SQSWaitSeconds)
	assert.Equal(t, time.Hour, cfg.JWTLifetime)
	assert.Empty(t, cfg.SQSQueueURL)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := Load("")
	assert.ErrorContains(t, err, "JWT_SECRET must be set")

	t.Setenv("JWT_SECRET", "change-me")
	_, err = Load("")
	assert.ErrorContains(t, err, "JWT_SECRET must not be")
}

func TestLoadFromEnvFile(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("USER_EMAIL")
	os.Unsetenv("USER_PASSWORD")
	os.Unsetenv("JWT_SECRET")
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("USER_EMAIL")
		os.Unsetenv("USER_PASSWORD")
		os.Unsetenv("JWT_SECRET")
	})

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\nUSER_EMAIL=test@api.com\nUSER_PASSWORD=123\nJWT_SECRET=from-file\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "test@api.com", cfg.UserEmail)
	assert.Equal(t, "123", cfg.UserPassword)
	assert.Equal(t, "from-file", cfg.JWTSecret)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{SQSMaxMessages: 10, SQSWaitSeconds: 5, JWTSecret: "s"}

	cfg := base
	require.NoError(t, cfg.Validate())

	cfg = base
	cfg.SQSMaxMessages = 11
	assert.Error(t, cfg.Validate())

	cfg = base
	cfg.UserEmail = "a@b.c"
	assert.Error(t, cfg.Validate(), "password is required with email")

	cfg = base
	cfg.JWTSecret = " "
	assert.Error(t, cfg.Validate())

	cfg = base
	cfg.JWTSecret = "change-me"
	assert.Error(t, cfg.Validate())
}

func TestSQLitePath(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "sqlite:///autocatalog.db", want: "autocatalog.db"},
		{url: "sqlite+aiosqlite:///adimen_test_db", want: "adimen_test_db"},
		{url: "sqlite:////var/lib/app.db", want: "/var/lib/app.db"},
		{url: "file.db", want: "file.db"},
		{url: ":memory:", want: ":memory:"},
		{url: "postgres://localhost/db", wantErr: true},
		{url: "sqlite://", wantErr: true},
	}
	for _, tt := range tests {
		cfg := Config{DBURL: tt.url}
		got, err := cfg.SQLitePath()
		if tt.wantErr {
			assert.Error(t, err, tt.url)
			continue
		}
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}
}
