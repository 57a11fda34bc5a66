package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir()) // sin .env

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPServer.Addr)
	assert.Equal(t, "http://localhost:3001", cfg.UsersURL)
	assert.Equal(t, "https://python-microservice-production-33dc.up.railway.app", cfg.PlansURL)
	assert.Equal(t, "https://receitamicroservice.onrender.com", cfg.RecipesURL)
	assert.Equal(t, 10*time.Second, cfg.Upstreams.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Circuit.Cooldown)
	assert.Equal(t, HealthCacheMemory, cfg.Circuit.Backend)
	assert.Equal(t, 3, cfg.RecentActivityLimit)
	assert.Equal(t, int64(8<<20), cfg.Upstreams.MaxBodyBytes)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())
	t.Setenv("USUARIOS_API_URL", "http://users.internal")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")
	t.Setenv("HEALTH_CACHE", "redis")
	t.Setenv("RECENT_ACTIVITY_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://users.internal", cfg.UsersURL)
	assert.Equal(t, 2*time.Second, cfg.Upstreams.Timeout)
	assert.Equal(t, HealthCacheRedis, cfg.Circuit.Backend)
	assert.Equal(t, 5, cfg.RecentActivityLimit)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := `
env: test
http_server:
  addr: ":9090"
upstreams:
  plans_url: "http://plans.local"
circuit:
  cooldown: 30s
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTPServer.Addr)
	assert.Equal(t, "http://plans.local", cfg.PlansURL)
	assert.Equal(t, 30*time.Second, cfg.Circuit.Cooldown)
}

func TestValidate_RejectsUnknownHealthCache(t *testing.T) {
	cfg := Config{
		Upstreams:           Upstreams{UsersURL: "a", PlansURL: "b", RecipesURL: "c", MaxBodyBytes: 1},
		Circuit:             Circuit{Backend: "memcached"},
		RecentActivityLimit: 3,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate_RejectsNonPositiveActivityLimit(t *testing.T) {
	cfg := Config{
		Upstreams: Upstreams{UsersURL: "a", PlansURL: "b", RecipesURL: "c", MaxBodyBytes: 1},
		Circuit:   Circuit{Backend: HealthCacheMemory},
	}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidate_Timezone(t *testing.T) {
	cfg := Config{
		Upstreams:           Upstreams{UsersURL: "a", PlansURL: "b", RecipesURL: "c", MaxBodyBytes: 1},
		Circuit:             Circuit{Backend: HealthCacheMemory},
		RecentActivityLimit: 3,
		Timezone:            "Nowhere/Atlantis",
	}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Timezone = ""
	require.NoError(t, cfg.Validate())
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}
