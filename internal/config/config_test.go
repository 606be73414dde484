package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/infrastructure/storage"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pits.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdirTest(t, t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, domain.DefaultCellSize, cfg.Game.CellSize)
	assert.Equal(t, domain.DefaultVisibilityRadius, cfg.Game.VisibilityRadius)
	assert.Equal(t, time.Minute, cfg.Game.Autosave)
	assert.Equal(t, storage.BackendBolt, cfg.Storage.Backend)

	eng := cfg.EngineConfig()
	assert.Equal(t, domain.LatLng{Lat: domain.OriginLat, Lng: domain.OriginLng}, eng.Origin)
	assert.NoError(t, eng.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = "127.0.0.1:9000"
debug = true

[game]
visibility_radius = 3
spawn_probability = 0.25
autosave = "15s"

[storage]
backend = "memory"
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, 3, cfg.Game.VisibilityRadius)
	assert.Equal(t, 0.25, cfg.Game.SpawnProbability)
	assert.Equal(t, 15*time.Second, cfg.Game.Autosave)
	assert.Equal(t, domain.DefaultMaxInitialTokens, cfg.Game.MaxInitialTokens)
	assert.Equal(t, storage.Config{
		Backend:     "memory",
		Path:        "pits.db",
		RedisAddr:   "localhost:6379",
		RedisPrefix: "pits:",
	}, cfg.StorageConfig())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[game]\nvisibility_radius = 3\n")
	t.Setenv("PITS_GAME_VISIBILITY_RADIUS", "5")
	t.Setenv("PITS_STORAGE_BACKEND", "redis")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Game.VisibilityRadius)
	assert.Equal(t, "redis", cfg.Storage.Backend)
}

func TestLoad_ExplicitValueWins(t *testing.T) {
	chdirTest(t, t.TempDir())
	v := viper.New()
	v.Set(KeyAddr, ":7000")

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoad_InvalidGameConfig(t *testing.T) {
	path := writeConfig(t, "[game]\ncell_size = 0.0\n")

	_, err := Load(viper.New(), path)
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoad_BrokenFile(t *testing.T) {
	path := writeConfig(t, "[game\nnot toml")

	_, err := Load(viper.New(), path)
	require.Error(t, err)
}

// chdirTest changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdirTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
