package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFileKeepsDefaults(t *testing.T) {
	t.Cleanup(Reset)
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Equal(t, Defaults().ViewDistance, GetViewDistance())
}

func TestEmptyPathUsesEnvironment(t *testing.T) {
	t.Cleanup(Reset)
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 99\n"), 0o644))
	t.Setenv(EnvPath, path)

	_, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint32(99), GetSeed())
}

func TestPartialFileKeepsOtherDefaults(t *testing.T) {
	t.Cleanup(Reset)
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := "seed: 42\nview_distance: 100\natlas:\n  columns: 8\n  rows: 4\n  tile_size: 32\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), s.Seed)
	assert.Equal(t, MaxViewDistance, s.ViewDistance, "view distance is clamped")
	assert.Equal(t, AtlasLayout{Columns: 8, Rows: 4, TileSize: 32}, GetAtlas())
	assert.Equal(t, Defaults().WorldPath, GetWorldPath())
	assert.Equal(t, Defaults().WalkSpeed, GetWalkSpeed())
}

func TestMalformedFile(t *testing.T) {
	t.Cleanup(Reset)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: [1, 2\n"), 0o644))

	SetSeed(7)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
	assert.Equal(t, uint32(7), GetSeed(), "a failed load leaves settings untouched")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Cleanup(Reset)
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	SetSeed(2024)
	SetWorldPath("saves/a.bws")
	SetViewDistance(12)
	SetShowDebug(true)
	require.NoError(t, Save(path))
	want := Current()

	Reset()
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, s)
}

func TestSettersClamp(t *testing.T) {
	t.Cleanup(Reset)

	SetViewDistance(0)
	assert.Equal(t, MinViewDistance, GetViewDistance())
	SetViewDistance(64)
	assert.Equal(t, MaxViewDistance, GetViewDistance())

	SetWalkSpeed(-1)
	assert.Equal(t, Defaults().WalkSpeed, GetWalkSpeed())

	SetAtlas(AtlasLayout{Columns: 0, Rows: 1, TileSize: 1})
	assert.Equal(t, Defaults().Atlas, GetAtlas())

	SetWorldPath("")
	assert.Equal(t, Defaults().WorldPath, GetWorldPath())
	assert.Equal(t, GetViewDistance(), GetChunkLoadRadius())
}
