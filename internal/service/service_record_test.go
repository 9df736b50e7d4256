// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/mock"
	"github.com/MKhiriev/go-registry-keeper/internal/store"
	"github.com/MKhiriev/go-registry-keeper/internal/validators"
	"github.com/MKhiriev/go-registry-keeper/models"
)

func newRecordServiceUnderTest(t *testing.T) (RecordService, *mock.MockRecordRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockRecordRepository(ctrl)

	return NewRecordValidationService().Wrap(NewRecordService(repo, logger.Nop())), repo
}

func TestRecordService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("id is assigned by the store", func(t *testing.T) {
		svc, repo := newRecordServiceUnderTest(t)

		repo.EXPECT().Create(gomock.Any(), models.Record{Name: "Bridge"}, "key-1").
			Return(models.Record{ID: 101, Name: "Bridge"}, true, nil)

		stored, created, err := svc.Create(ctx, models.Record{ID: 55, Name: "Bridge"}, "key-1")

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(101), stored.ID)
	})

	t.Run("a negative client id is accepted", func(t *testing.T) {
		svc, repo := newRecordServiceUnderTest(t)

		repo.EXPECT().Create(gomock.Any(), models.Record{Name: "Tunnel"}, "key-2").
			Return(models.Record{ID: 7, Name: "Tunnel"}, false, nil)

		stored, created, err := svc.Create(ctx, models.Record{ID: -3, Name: "Tunnel"}, "key-2")

		require.NoError(t, err)
		assert.False(t, created, "a repeated key returns the earlier record")
		assert.Equal(t, int64(7), stored.ID)
	})

	tests := []struct {
		name    string
		rec     models.Record
		wantErr error
	}{
		{name: "blank name", rec: models.Record{Name: "  "}, wantErr: validators.ErrEmptyName},
		{name: "year out of range", rec: models.Record{Name: "A", Year: 3000}, wantErr: validators.ErrInvalidYear},
		{name: "kind too long", rec: models.Record{Name: "A", Kind: string(make([]byte, validators.MaxTagLength+1))}, wantErr: validators.ErrKindTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newRecordServiceUnderTest(t)

			_, _, err := svc.Create(ctx, tt.rec, "")

			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("store error is passed through", func(t *testing.T) {
		svc, repo := newRecordServiceUnderTest(t)

		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Record{}, false, store.ErrTransient)

		_, _, err := svc.Create(ctx, models.Record{Name: "A"}, "")
		assert.ErrorIs(t, err, store.ErrTransient)
	})
}

func TestRecordService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		svc, repo := newRecordServiceUnderTest(t)
		rec := models.Record{ID: 4, Name: "Bridge", Year: 1932}

		repo.EXPECT().Update(gomock.Any(), rec).Return(rec, nil)

		got, err := svc.Update(ctx, rec)
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	})

	t.Run("negative id", func(t *testing.T) {
		svc, _ := newRecordServiceUnderTest(t)

		_, err := svc.Update(ctx, models.Record{ID: -1, Name: "Bridge"})
		assert.ErrorIs(t, err, validators.ErrInvalidID)
	})

	t.Run("missing record", func(t *testing.T) {
		svc, repo := newRecordServiceUnderTest(t)

		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(models.Record{}, store.ErrRecordNotFound)

		_, err := svc.Update(ctx, models.Record{ID: 4, Name: "Bridge"})
		assert.ErrorIs(t, err, store.ErrRecordNotFound)
	})
}

func TestRecordService_GetListDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newRecordServiceUnderTest(t)

	filter := models.RecordFilter{Kind: "bridge"}
	repo.EXPECT().List(gomock.Any(), filter).Return([]models.Record{{ID: 1}}, nil)
	repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(models.Record{ID: 1}, nil)
	repo.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

	list, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	rec, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)

	require.NoError(t, svc.Delete(ctx, 1))

	_, err = svc.Get(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, svc.Delete(ctx, -1), ErrInvalidDataProvided)
}

func TestComponentService(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockComponentRepository(ctrl)
	svc := NewComponentService(repo, logger.Nop())

	t.Run("add trims the name", func(t *testing.T) {
		repo.EXPECT().Add(gomock.Any(), int64(3), "deck").Return(nil)

		require.NoError(t, svc.Add(ctx, 3, "  deck "))
	})

	t.Run("add duplicate", func(t *testing.T) {
		repo.EXPECT().Add(gomock.Any(), int64(3), "deck").Return(store.ErrComponentExists)

		assert.ErrorIs(t, svc.Add(ctx, 3, "deck"), store.ErrComponentExists)
	})

	t.Run("add blank name", func(t *testing.T) {
		err := svc.Add(ctx, 3, "   ")

		assert.ErrorIs(t, err, ErrInvalidDataProvided)
		assert.ErrorIs(t, err, validators.ErrEmptyComponentName)
	})

	t.Run("list", func(t *testing.T) {
		repo.EXPECT().List(gomock.Any(), int64(3)).Return([]string{"deck", "pier"}, nil)

		names, err := svc.List(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"deck", "pier"}, names)
	})

	t.Run("list negative id", func(t *testing.T) {
		_, err := svc.List(ctx, -2)
		assert.ErrorIs(t, err, validators.ErrInvalidID)
	})

	t.Run("remove", func(t *testing.T) {
		repo.EXPECT().Remove(gomock.Any(), int64(3), "pier").Return(nil)

		require.NoError(t, svc.Remove(ctx, 3, "pier"))
	})
}
