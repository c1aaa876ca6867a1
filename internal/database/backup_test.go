package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shareit/internal/config"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformBackup(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "shareit.db")
	backupDir := filepath.Join(dir, "backups")

	logger := zerolog.New(os.Stdout)
	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.CreateUser(context.Background(), &models.User{Name: "Alice", Email: "alice@example.com"}))

	svc := NewBackupService(dbPath, config.BackupConfig{
		Enabled:     true,
		StoragePath: backupDir,
	}, &logger)

	require.NoError(t, svc.PerformBackup())

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "backup_"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".db"))

	// The snapshot must be a readable database with the data in it
	restored, err := NewDB(filepath.Join(backupDir, entries[0].Name()), &logger)
	require.NoError(t, err)
	defer restored.Close()

	users, err := restored.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
