package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults_LocalDerivesSqlite(t *testing.T) {
	cfg := Config{BuildTarget: "local", DBDriver: "auto"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestResolveDefaults_CloudDerivesPostgres(t *testing.T) {
	for _, target := range []string{"cloud-dev", "cloud"} {
		cfg := Config{BuildTarget: target, DBDriver: "auto", PostgresDSN: "postgres://localhost/journal"}
		require.NoError(t, cfg.ResolveDefaults(), target)
		assert.Equal(t, "postgres", cfg.DBDriver, target)
	}
}

func TestResolveDefaults_PostgresRequiresDSN(t *testing.T) {
	cfg := Config{BuildTarget: "cloud", DBDriver: "auto"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaults_ExplicitDriverKept(t *testing.T) {
	cfg := Config{BuildTarget: "cloud", DBDriver: "sqlite"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestResolveDefaults_Unsupported(t *testing.T) {
	cfg := Config{BuildTarget: "staging"}
	assert.Error(t, cfg.ResolveDefaults())

	cfg = Config{BuildTarget: "local", DBDriver: "mongo"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("JOURNAL_BUILD_TARGET", "local")
	t.Setenv("JOURNAL_HTTP_PORT", "9090")
	t.Setenv("JOURNAL_JWT_SECRET", "super-secret")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.GetHTTPAddr())
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 24, cfg.TokenTTLHours)
}
