package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateUpDown(t *testing.T) {
	db := openTestDB(t)

	// Fresh database: no migrations applied yet.
	version, dirty, err := db.MigrateVersion("../migrations")
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, db.MigrateUp("../migrations"))

	version, dirty, err = db.MigrateVersion("../migrations")
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	// Up again is a no-op.
	require.NoError(t, db.MigrateUp("../migrations"))

	require.NoError(t, db.MigrateDown("../migrations"))
	version, dirty, err = db.MigrateVersion("../migrations")
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)
}

func TestMigrateMissingDir(t *testing.T) {
	db := openTestDB(t)
	err := db.MigrateUp(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
