package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../migrations"

func TestMigrationFilesExist(t *testing.T) {
	for _, filename := range []string{
		"000001_mentorship_schema.up.sql",
		"000001_mentorship_schema.down.sql",
	} {
		_, err := os.Stat(filepath.Join(migrationsDir, filename))
		assert.NoError(t, err, "migration file %s must exist", filename)
	}
}

func TestMentorshipMigration_Contents(t *testing.T) {
	up, err := os.ReadFile(filepath.Join(migrationsDir, "000001_mentorship_schema.up.sql"))
	require.NoError(t, err)
	upSQL := string(up)

	for _, table := range []string{"mentorships", "mentorship_sessions", "mentorship_goals", "notifications"} {
		assert.Contains(t, upSQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
	// one open mentorship per (mentor, mentee) pair
	assert.Contains(t, upSQL, "CREATE UNIQUE INDEX IF NOT EXISTS mentorships_open_pair_idx")
	assert.Contains(t, upSQL, "WHERE status IN ('requested', 'active')")

	down, err := os.ReadFile(filepath.Join(migrationsDir, "000001_mentorship_schema.down.sql"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(down), "DROP TABLE IF EXISTS mentorships"))
}

func TestContainsSSLMode(t *testing.T) {
	assert.True(t, containsSSLMode("postgres://h/db?sslmode=verify-full"))
	assert.True(t, containsSSLMode("postgres://h/db?sslmode=require"))
	assert.False(t, containsSSLMode("postgres://localhost/db?sslmode=disable"))
	assert.False(t, containsSSLMode("postgres://localhost/db"))
}

func TestConfigureTLS(t *testing.T) {
	t.Run("no sslmode", func(t *testing.T) {
		cfg, err := configureTLS(PoolConfig{URL: "postgres://localhost/db", CACertPath: "missing.crt"})
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("sslmode without ca bundle", func(t *testing.T) {
		cfg, err := configureTLS(PoolConfig{URL: "postgres://h/db?sslmode=require"})
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("missing ca bundle file", func(t *testing.T) {
		_, err := configureTLS(PoolConfig{
			URL:        "postgres://h/db?sslmode=verify-full",
			CACertPath: filepath.Join(t.TempDir(), "absent.crt"),
		})
		assert.Error(t, err)
	})

	t.Run("garbage ca bundle", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ca.crt")
		require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0o600))

		_, err := configureTLS(PoolConfig{URL: "postgres://h/db?sslmode=verify-full", CACertPath: path})
		assert.ErrorContains(t, err, "failed to append CA certificate")
	})
}
