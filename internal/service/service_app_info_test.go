package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-registry-keeper/internal/config"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/store"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr error
	}{
		{name: "release version", version: "1.0.0"},
		{name: "pre-release with build metadata", version: "v1.2.3-beta+build.42"},
		{name: "empty version", version: "", wantErr: ErrVersionIsNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: tt.version}, nil, logger.Nop())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, svc.GetAppVersion(context.Background()))
			assert.NoError(t, svc.CheckHealth(context.Background()))
		})
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestAppInfoService_CheckHealth(t *testing.T) {
	down := errors.New("connection refused")
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, pingFunc(func(context.Context) error { return down }), logger.Nop())
	require.NoError(t, err)

	err = svc.CheckHealth(context.Background())
	assert.ErrorIs(t, err, store.ErrTransient)
	assert.ErrorIs(t, err, down)

	svc, err = NewAppInfoService(config.App{Version: "1.0.0"}, pingFunc(func(context.Context) error { return nil }), logger.Nop())
	require.NoError(t, err)
	assert.NoError(t, svc.CheckHealth(context.Background()))
}
