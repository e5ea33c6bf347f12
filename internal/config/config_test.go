package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, FileName), []byte("content: data/content.json\nwatchlist:\n  backend: sqlite\n"), 0644)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "data/content.json", cfg.Content)
	assert.Equal(t, BackendSQLite, cfg.Watchlist.Backend)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Content)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, FileName), []byte("{{bad yaml"), 0644)

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir")
	cfg := &Config{Content: "https://example.com/content.json", Watchlist: WatchlistConfig{Backend: BackendRedis, RedisAddr: "localhost:6379"}}

	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadEnv_DotenvAndProcessEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LAUNCHPAD_CONTENT=from-file.json\nLAUNCHPAD_TIMEZONE=UTC\n"), 0644))
	t.Setenv("LAUNCHPAD_TIMEZONE", "Europe/Berlin")

	env, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file.json", env["LAUNCHPAD_CONTENT"])
	assert.Equal(t, "Europe/Berlin", env["LAUNCHPAD_TIMEZONE"])
}

func TestLoadEnv_MissingFile(t *testing.T) {
	_, err := LoadEnv(filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{Content: "file.json", Watchlist: WatchlistConfig{Backend: BackendFile}}
	require.NoError(t, cfg.ApplyEnv(map[string]string{
		"LAUNCHPAD_WATCHLIST_BACKEND": "redis",
		"LAUNCHPAD_REDIS_ADDR":        "cache:6379",
		"LAUNCHPAD_REDIS_DB":          "2",
		"LAUNCHPAD_CONTENT":           "",
	}))
	assert.Equal(t, "file.json", cfg.Content)
	assert.Equal(t, BackendRedis, cfg.Watchlist.Backend)
	assert.Equal(t, "cache:6379", cfg.Watchlist.RedisAddr)
	assert.Equal(t, 2, cfg.Watchlist.RedisDB)
	assert.NoError(t, cfg.Validate())

	assert.Error(t, cfg.ApplyEnv(map[string]string{"LAUNCHPAD_BGG_DELAY_MS": "soon"}))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
	assert.Error(t, (&Config{Watchlist: WatchlistConfig{Backend: "localStorage"}}).Validate())
	assert.Error(t, (&Config{Watchlist: WatchlistConfig{Backend: BackendRedis}}).Validate())
}

func TestLocation(t *testing.T) {
	loc, err := (&Config{}).Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = (&Config{Timezone: "UTC"}).Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = (&Config{Timezone: "Mars/Olympus"}).Location()
	assert.Error(t, err)
}
