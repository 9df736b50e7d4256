package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── NewClientConfig ───────────────────────────────────────────────────────────

// TestNewClientConfig_Defaults verifies that unset driver, timeout and push
// attempts receive their defaults.
func TestNewClientConfig_Defaults(t *testing.T) {
	cfg, err := NewClientConfig(&StructuredConfig{
		Storage: Storage{DB: DB{DSN: "registry.db"}},
		Adapter: Adapter{HTTPAddress: "localhost:8080"},
	})

	require.NoError(t, err)
	assert.Equal(t, DefaultClientDriver, cfg.Storage.DB.DriverName)
	assert.Equal(t, DefaultAdapterRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultMaxPushAttempts, cfg.Sync.MaxPushAttempts)
	assert.Zero(t, cfg.Workers.SyncInterval)
}

// TestNewClientConfig_KeepsExplicitValues verifies the projection.
func TestNewClientConfig_KeepsExplicitValues(t *testing.T) {
	cfg, err := NewClientConfig(&StructuredConfig{
		App:     App{Version: "1.0.0", LogFile: "c.log"},
		Storage: Storage{DB: DB{DSN: "registry.db", Driver: "sqlite"}},
		Adapter: Adapter{HTTPAddress: "localhost:8080", RequestTimeout: time.Second},
		Sync:    Sync{MaxPushAttempts: 2},
		Workers: Workers{SyncInterval: time.Minute},
	})

	require.NoError(t, err)
	assert.Equal(t, ClientConfig{
		App:     ClientApp{Version: "1.0.0", LogFile: "c.log"},
		Adapter: ClientAdapter{HTTPAddress: "localhost:8080", RequestTimeout: time.Second},
		Storage: ClientStorage{DB: ClientDB{DSN: "registry.db", DriverName: "sqlite"}},
		Sync:    ClientSync{MaxPushAttempts: 2},
		Workers: ClientWorkers{SyncInterval: time.Minute},
	}, *cfg)
}

// TestNewClientConfig_Validation covers each rejected group.
func TestNewClientConfig_Validation(t *testing.T) {
	valid := func() *StructuredConfig {
		return &StructuredConfig{
			Storage: Storage{DB: DB{DSN: "registry.db"}},
			Adapter: Adapter{HTTPAddress: "localhost:8080"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *StructuredConfig)
		wantErr error
	}{
		{name: "empty dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "unknown driver", mutate: func(c *StructuredConfig) { c.Storage.DB.Driver = "postgres" }, wantErr: ErrInvalidStorageConfigs},
		{name: "empty address", mutate: func(c *StructuredConfig) { c.Adapter.HTTPAddress = "" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "negative timeout", mutate: func(c *StructuredConfig) { c.Adapter.RequestTimeout = -time.Second }, wantErr: ErrInvalidAdapterConfigs},
		{name: "negative attempts", mutate: func(c *StructuredConfig) { c.Sync.MaxPushAttempts = -1 }, wantErr: ErrInvalidSyncConfigs},
		{name: "negative interval", mutate: func(c *StructuredConfig) { c.Workers.SyncInterval = -time.Second }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			cfg, err := NewClientConfig(c)

			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── NewServerConfig ───────────────────────────────────────────────────────────

// TestNewServerConfig_Defaults verifies the listen address and timeout
// defaults.
func TestNewServerConfig_Defaults(t *testing.T) {
	cfg, err := NewServerConfig(&StructuredConfig{
		Storage: Storage{DB: DB{DSN: "postgres://localhost/registry"}},
	})

	require.NoError(t, err)
	assert.Equal(t, DefaultServerAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultServerRequestTimeout, cfg.Server.RequestTimeout)
}

// TestNewServerConfig_RequiresDSN verifies that the server refuses to start
// without a database.
func TestNewServerConfig_RequiresDSN(t *testing.T) {
	cfg, err := NewServerConfig(&StructuredConfig{})

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestNewServerConfig_NegativeTimeout verifies server group validation.
func TestNewServerConfig_NegativeTimeout(t *testing.T) {
	cfg, err := NewServerConfig(&StructuredConfig{
		Storage: Storage{DB: DB{DSN: "postgres://localhost/registry"}},
		Server:  Server{RequestTimeout: -time.Second},
	})

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
}
