package config

import (
	"fmt"
	"time"
)

// Client defaults applied when a source leaves the value unset.
const (
	DefaultClientDriver          = "sqlite3"
	DefaultAdapterRequestTimeout = 5 * time.Second
	DefaultMaxPushAttempts       = 5
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// Version is the client version string.
	Version string
	// LogFile is the client log file path.
	LogFile string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the registry server address.
	HTTPAddress string
	// RequestTimeout is the timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local replica connection settings.
type ClientDB struct {
	// DSN is the SQLite database path.
	DSN string
	// DriverName is the database/sql driver name ("sqlite3" or "sqlite").
	DriverName string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync holds reconciliation settings.
type ClientSync struct {
	// MaxPushAttempts is the rejected-push budget before a row is parked.
	MaxPushAttempts int
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the refresh worker runs. Zero disables it.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client view of the merged
// structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps the fields relevant to the client runtime, fills
// defaults and validates the result.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
			LogFile: cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN:        cfg.Storage.DB.DSN,
				DriverName: cfg.Storage.DB.Driver,
			},
		},
		Sync:    ClientSync{MaxPushAttempts: cfg.Sync.MaxPushAttempts},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}

	if clientCfg.Storage.DB.DriverName == "" {
		clientCfg.Storage.DB.DriverName = DefaultClientDriver
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultAdapterRequestTimeout
	}
	if clientCfg.Sync.MaxPushAttempts == 0 {
		clientCfg.Sync.MaxPushAttempts = DefaultMaxPushAttempts
	}

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}

	return clientCfg, nil
}
