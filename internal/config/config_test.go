package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdesk/internal/allocation"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, allocation.ZeroRequestedFulfilled, cfg.Allocation.ZeroRequested)
	assert.Equal(t, allocation.EditPolicyReject, cfg.Allocation.EditPolicy)
	assert.Equal(t, 3, cfg.Order.MaxRetryAttempts)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")
	t.Setenv("STORAGE_DRIVER", "MySQL")
	t.Setenv("ALLOCATION_EDIT_POLICY", "clamp")
	t.Setenv("ALLOCATION_ZERO_REQUESTED", "unallocated")
	t.Setenv("ORDER_MAX_RETRY_ATTEMPTS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, StorageMySQL, cfg.Storage.Driver)
	assert.Equal(t, allocation.EditPolicyClamp, cfg.Allocation.EditPolicy)
	assert.Equal(t, allocation.ZeroRequestedUnallocated, cfg.Allocation.ZeroRequested)
	assert.Equal(t, 5, cfg.Order.MaxRetryAttempts)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stockdesk.yaml")
	content := []byte("SERVER_PORT: 7070\nLOG_LEVEL: debug\nSEED_FILE: fixtures/orders.yaml\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "fixtures/orders.yaml", cfg.Storage.SeedFile)
	// environment wins over the file
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad duration", key: "DB_CONN_MAX_LIFETIME", value: "forever"},
		{name: "bad shutdown timeout", key: "SERVER_SHUTDOWN_TIMEOUT", value: "soon"},
		{name: "bad storage driver", key: "STORAGE_DRIVER", value: "postgres"},
		{name: "bad edit policy", key: "ALLOCATION_EDIT_POLICY", value: "ignore"},
		{name: "bad zero requested policy", key: "ALLOCATION_ZERO_REQUESTED", value: "maybe"},
		{name: "port out of range", key: "SERVER_PORT", value: "70000"},
		{name: "no retry attempts", key: "ORDER_MAX_RETRY_ATTEMPTS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Nil(t, cfg)
			assert.Error(t, err)
		})
	}
}

func TestValidate_RejectsUnknownPolicies(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Allocation.EditPolicy = "ignore"
	assert.Error(t, cfg.Validate())

	cfg.Allocation.EditPolicy = allocation.EditPolicyClamp
	cfg.Allocation.ZeroRequested = "maybe"
	assert.Error(t, cfg.Validate())
}
