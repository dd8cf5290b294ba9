package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "behavior.json", `{"species": "caretta", "synthetic_seed": 7}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "caretta", cfg.Species)
	assert.Equal(t, uint64(7), cfg.SyntheticSeed)

	// Everything omitted stays at its default.
	def := Default()
	assert.Equal(t, def.DBPath, cfg.DBPath)
	assert.Equal(t, def.OutputDir, cfg.OutputDir)
	assert.Equal(t, def.Listen, cfg.Listen)
	assert.Equal(t, def.SyntheticSamples, cfg.SyntheticSamples)
	assert.Empty(t, cfg.DataPath)
}

func TestLoadFullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "behavior.json", `{
		"data_path": "tracking.csv",
		"db_path": "other.db",
		"output_dir": "out",
		"listen": ":9090",
		"species": "mydas",
		"synthetic_seed": 99,
		"synthetic_samples": 250
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tracking.csv", cfg.DataPath)
	assert.Equal(t, "other.db", cfg.DBPath)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "mydas", cfg.Species)
	assert.Equal(t, uint64(99), cfg.SyntheticSeed)
	assert.Equal(t, 250, cfg.SyntheticSamples)
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Parallel()

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "behavior.yaml", `{}`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "behavior.json", `{"species":`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("non-positive sample count", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "behavior.json", `{"synthetic_samples": 0}`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}
