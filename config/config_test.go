package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(originalWD)
	})
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("uses defaults when nothing is set", func(t *testing.T) {
		chdirTemp(t)

		cfg := Load()

		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, DefaultPort, cfg.Port)
		assert.Equal(t, DefaultDatabaseURL, cfg.Database.URL)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "memory", cfg.Session.Store)
		assert.Equal(t, DefaultSessionTTL, cfg.Session.TTL)
		assert.Equal(t, DefaultSessionCookieName, cfg.Session.CookieName)
		assert.False(t, cfg.Session.CookieSecure)
		assert.Equal(t, DefaultRateLimitRequests, cfg.RateLimit.Requests)
		assert.Equal(t, "local", cfg.Storage.Type)
		assert.Equal(t, DefaultBcryptCost, cfg.BcryptCost)
		assert.False(t, cfg.UsesRedis())
		assert.Empty(t, cfg.TrustedProxies)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("environment variables are read", func(t *testing.T) {
		chdirTemp(t)

		t.Setenv("ENV", "production")
		t.Setenv("PORT", "9090")
		t.Setenv("DATABASE_URL", "postgres://env/db")
		t.Setenv("SESSION_STORE", "Redis")
		t.Setenv("SESSION_TTL", "2h")
		t.Setenv("SESSION_COOKIE_SECURE", "true")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("DB_MAX_CONNS", "25")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.1.0.0/16,")

		cfg := Load()

		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "postgres://env/db", cfg.Database.URL)
		assert.Equal(t, "redis", cfg.Session.Store)
		assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
		assert.True(t, cfg.Session.CookieSecure)
		assert.Equal(t, int32(25), cfg.Database.MaxConns)
		assert.Equal(t, []string{"10.0.0.1", "10.1.0.0/16"}, cfg.TrustedProxies)
		assert.True(t, cfg.UsesRedis())
		assert.NoError(t, cfg.Validate())
	})

	t.Run("loads values from .env file", func(t *testing.T) {
		dir := chdirTemp(t)
		content := "PORT=4000\nSTORAGE_LOCAL_PATH=/srv/assets\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0644))
		t.Cleanup(func() {
			_ = os.Unsetenv("PORT")
			_ = os.Unsetenv("STORAGE_LOCAL_PATH")
		})

		cfg := Load()

		assert.Equal(t, "4000", cfg.Port)
		assert.Equal(t, "/srv/assets", cfg.Storage.LocalPath)
	})

	t.Run("environment overrides .env file", func(t *testing.T) {
		dir := chdirTemp(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=4000\n"), 0644))
		t.Setenv("PORT", "5000")

		cfg := Load()

		assert.Equal(t, "5000", cfg.Port)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database:  DatabaseConfig{Driver: "postgres"},
			Session:   SessionConfig{Store: "memory", TTL: time.Hour},
			RateLimit: RateLimitConfig{Requests: 10, Window: time.Minute},
			Storage:   StorageConfig{Type: "local"},
		}
	}

	t.Run("unknown session store", func(t *testing.T) {
		cfg := base()
		cfg.Session.Store = "cookie"
		assert.Error(t, cfg.Validate())
	})

	t.Run("redis store without address", func(t *testing.T) {
		cfg := base()
		cfg.Session.Store = "redis"
		assert.Error(t, cfg.Validate())
	})

	t.Run("s3 storage without bucket", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Type = "s3"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown database driver", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "mysql"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown storage type", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Type = "ftp"
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive session ttl", func(t *testing.T) {
		cfg := base()
		cfg.Session.TTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive rate limit", func(t *testing.T) {
		cfg := base()
		cfg.RateLimit.Requests = 0
		assert.Error(t, cfg.Validate())

		cfg = base()
		cfg.RateLimit.Requests = -3
		assert.Error(t, cfg.Validate())

		cfg = base()
		cfg.RateLimit.Window = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("base is valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})
}

func Test_getEnvHelpers(t *testing.T) {
	t.Run("int falls back on garbage", func(t *testing.T) {
		t.Setenv("TEST_INT_KEY", "abc")
		assert.Equal(t, 7, getEnvAsInt("TEST_INT_KEY", 7))
	})

	t.Run("bool parses", func(t *testing.T) {
		t.Setenv("TEST_BOOL_KEY", "1")
		assert.True(t, getEnvAsBool("TEST_BOOL_KEY", false))
	})

	t.Run("duration falls back on garbage", func(t *testing.T) {
		t.Setenv("TEST_DURATION_KEY", "soon")
		assert.Equal(t, time.Minute, getEnvAsDuration("TEST_DURATION_KEY", time.Minute))
	})

	t.Run("empty string uses fallback", func(t *testing.T) {
		t.Setenv("TEST_GETENV_EMPTY_KEY", "")
		assert.Equal(t, "fallback", getEnv("TEST_GETENV_EMPTY_KEY", "fallback"))
	})
}
