package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olreader/internal/platform/openlibrary"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, openlibrary.DefaultBaseURL, cfg.OpenLibrary.BaseURL)
	assert.Equal(t, openlibrary.DefaultCoversURL, cfg.OpenLibrary.CoversURL)
	assert.Equal(t, openlibrary.DefaultTimeout, cfg.OpenLibrary.Timeout)
	assert.Zero(t, cfg.OpenLibrary.RPS)
	assert.Equal(t, 3*time.Second, cfg.DB.Timeout)
	assert.Equal(t, "db/migrations", cfg.MigrationsDir)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"APP_ENV":              "production",
		"OL_BASE_URL":          "https://ol.internal/",
		"OL_TIMEOUT":           "2",
		"OL_RPS":               "1.5",
		"DB_TIMEOUT":           "750ms",
		"RATE_LIMIT_BURST":     "5",
		"CORS_ALLOWED_ORIGINS": " https://app.example , ,https://admin.example",
		"ENABLE_HSTS":          "true",
		"MIGRATIONS_DIR":       "/custom/migrations",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "https://ol.internal", cfg.OpenLibrary.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.OpenLibrary.Timeout)
	assert.Equal(t, 1.5, cfg.OpenLibrary.RPS)
	assert.Equal(t, 750*time.Millisecond, cfg.DB.Timeout)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"https://app.example", "https://admin.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.EnableHSTS)
	assert.Equal(t, "/custom/migrations", cfg.MigrationsDir)

	opts := cfg.OpenLibrary.Options()
	assert.Equal(t, "https://ol.internal", opts.BaseURL)
	assert.Equal(t, 1.5, opts.RPS)
}

func TestFromEnv_ReportsEveryBadValue(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{
		"OL_TIMEOUT":       "soon",
		"RATE_LIMIT_BURST": "lots",
		"OL_BASE_URL":      "openlibrary.org",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OL_TIMEOUT")
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")
	assert.Contains(t, err.Error(), "OL_BASE_URL")
}

func TestFromEnv_RejectsNonPositiveTimeout(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{"OL_TIMEOUT": "0s"}))
	assert.ErrorContains(t, err, "OL_TIMEOUT must be positive")
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\nOL_USER_AGENT=from_file\n"), 0o644))

	t.Setenv("DB_DSN", "from_env")
	t.Setenv("OL_USER_AGENT", "")
	require.NoError(t, os.Unsetenv("OL_USER_AGENT"))
	t.Chdir(tmp)

	LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("DB_DSN"))
	assert.Equal(t, "from_file", os.Getenv("OL_USER_AGENT"))
}
