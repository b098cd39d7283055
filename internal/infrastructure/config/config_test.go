package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"TAILOR_APP_NAME":                 os.Getenv("TAILOR_APP_NAME"),
		"TAILOR_APP_ENV":                  os.Getenv("TAILOR_APP_ENV"),
		"TAILOR_APP_PORT":                 os.Getenv("TAILOR_APP_PORT"),
		"TAILOR_DATABASE_HOST":            os.Getenv("TAILOR_DATABASE_HOST"),
		"TAILOR_DATABASE_PORT":            os.Getenv("TAILOR_DATABASE_PORT"),
		"TAILOR_DATABASE_USER":            os.Getenv("TAILOR_DATABASE_USER"),
		"TAILOR_DATABASE_PASSWORD":        os.Getenv("TAILOR_DATABASE_PASSWORD"),
		"TAILOR_DATABASE_DBNAME":          os.Getenv("TAILOR_DATABASE_DBNAME"),
		"TAILOR_DATABASE_SSLMODE":         os.Getenv("TAILOR_DATABASE_SSLMODE"),
		"TAILOR_DATABASE_MAX_OPEN_CONNS":  os.Getenv("TAILOR_DATABASE_MAX_OPEN_CONNS"),
		"TAILOR_DATABASE_MAX_IDLE_CONNS":  os.Getenv("TAILOR_DATABASE_MAX_IDLE_CONNS"),
		"TAILOR_MAIL_HOST":                os.Getenv("TAILOR_MAIL_HOST"),
		"TAILOR_MAIL_FROM_ADDRESS":        os.Getenv("TAILOR_MAIL_FROM_ADDRESS"),
		"TAILOR_UPSTREAM_BASE_URL":        os.Getenv("TAILOR_UPSTREAM_BASE_URL"),
		"TAILOR_UPSTREAM_ACCESS_TOKEN":    os.Getenv("TAILOR_UPSTREAM_ACCESS_TOKEN"),
		"TAILOR_FEEDBACK_FORM_BASE_URL":   os.Getenv("TAILOR_FEEDBACK_FORM_BASE_URL"),
		"TAILOR_TELEMETRY_SAMPLING_RATIO": os.Getenv("TAILOR_TELEMETRY_SAMPLING_RATIO"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "tailorbase-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "tailorbase", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 587, cfg.Mail.Port)
		assert.Equal(t, 50, cfg.Upstream.PageSize)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	})

	t.Run("loads values from environment variables with TAILOR prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("TAILOR_APP_NAME", "test-app")
		os.Setenv("TAILOR_APP_ENV", "testing")
		os.Setenv("TAILOR_APP_PORT", "9000")
		os.Setenv("TAILOR_DATABASE_HOST", "testdb.local")
		os.Setenv("TAILOR_DATABASE_PORT", "5433")
		os.Setenv("TAILOR_DATABASE_USER", "testuser")
		os.Setenv("TAILOR_DATABASE_PASSWORD", "testpass")
		os.Setenv("TAILOR_DATABASE_DBNAME", "testdb")
		os.Setenv("TAILOR_DATABASE_SSLMODE", "require")
		os.Setenv("TAILOR_UPSTREAM_BASE_URL", "https://shop.example.com")
		os.Setenv("TAILOR_FEEDBACK_FORM_BASE_URL", "https://fit.example.com")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, "https://shop.example.com", cfg.Upstream.BaseURL)
		assert.Equal(t, "https://fit.example.com", cfg.Feedback.FormBaseURL)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("TAILOR_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("TAILOR_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("TAILOR_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("production requires database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("TAILOR_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("production rejects sslmode disable", func(t *testing.T) {
		clearEnv()
		os.Setenv("TAILOR_APP_ENV", "production")
		os.Setenv("TAILOR_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("validates sampling ratio bounds", func(t *testing.T) {
		clearEnv()
		os.Setenv("TAILOR_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "tailor",
		Password: "p@ss/word",
		DBName:   "tailorbase",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfigAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.Addr())
}
