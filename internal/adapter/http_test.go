// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-registry-keeper/internal/config"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/utils"
	"github.com/MKhiriev/go-registry-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) RegistryAdapter {
	t.Helper()
	a, err := NewHTTPRegistryAdapter(config.ClientAdapter{
		HTTPAddress:    serverURL,
		RequestTimeout: time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return a
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── construction ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "with scheme", raw: "https://registry.example.com/", want: "https://registry.example.com"},
		{name: "trimmed", raw: "  127.0.0.1:9000 ", want: "http://127.0.0.1:9000"},
		{name: "empty", raw: "", wantErr: true},
		{name: "scheme without host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPRegistryAdapter_InvalidAddress(t *testing.T) {
	a, err := NewHTTPRegistryAdapter(config.ClientAdapter{}, logger.Nop())

	assert.Nil(t, a)
	assert.Error(t, err)
}

// ── records ─────────────────────────────────────────────────────────────────

func TestList_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/records", r.URL.Path)
		assert.Equal(t, "bridge", r.URL.Query().Get("kind"))
		assert.False(t, r.URL.Query().Has("status"))

		writeJSON(t, w, http.StatusOK, []models.Record{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).List(context.Background(), models.RecordFilter{Kind: "bridge"})

	require.NoError(t, err)
	assert.Equal(t, []models.Record{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, got)
}

func TestList_NullBodyIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, nil)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).List(context.Background(), models.RecordFilter{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/records/42", r.URL.Path)
		http.Error(w, "record not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Get(context.Background(), 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, IsUnreachable(err))
	assert.Contains(t, err.Error(), "record not found")
}

func TestCreate_SendsIdempotencyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/records", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get(IdempotencyKeyHeader))

		var in models.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Zero(t, in.ID, "staged id must not leak to the server")
		assert.Equal(t, "A", in.Name)

		in.ID = 101
		writeJSON(t, w, http.StatusCreated, in)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Create(context.Background(), models.Record{ID: -1, Name: "A"}, "key-1")

	require.NoError(t, err)
	assert.Equal(t, models.Record{ID: 101, Name: "A"}, got)
}

func TestCreate_NoKeyNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header[IdempotencyKeyHeader]
		assert.False(t, present)
		writeJSON(t, w, http.StatusCreated, models.Record{ID: 5})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Create(context.Background(), models.Record{Name: "A"}, "")
	require.NoError(t, err)
}

func TestUpdate_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/records/7", r.URL.Path)
		http.Error(w, "name is required", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Update(context.Background(), models.Record{ID: 7})

	assert.ErrorIs(t, err, ErrRejected)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestUpdate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in models.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(t, w, http.StatusOK, in)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Update(context.Background(), models.Record{ID: 7, Name: "B", Year: 1999})

	require.NoError(t, err)
	assert.Equal(t, models.Record{ID: 7, Name: "B", Year: 1999}, got)
}

func TestDelete_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/records/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, newTestAdapter(t, srv.URL).Delete(context.Background(), 3))
}

func TestDelete_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Delete(context.Background(), 3)

	assert.ErrorIs(t, err, ErrConflict)
	assert.True(t, IsRejected(err))
}

// ── components ──────────────────────────────────────────────────────────────

func TestComponents_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/records/9/components":
			writeJSON(t, w, http.StatusOK, []string{"deck", "pier"})
		case r.Method == http.MethodPost && r.URL.Path == "/api/records/9/components":
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"name":"deck"}`, string(body))
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/records/9/components/pump room":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	names, err := a.ListComponents(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"deck", "pier"}, names)

	require.NoError(t, a.AddComponent(ctx, 9, "deck"))
	require.NoError(t, a.RemoveComponent(ctx, 9, "pump room"))
}

// ── classification ──────────────────────────────────────────────────────────

func TestClassification_Statuses(t *testing.T) {
	tests := []struct {
		status      int
		unreachable bool
		specific    error
	}{
		{status: http.StatusBadGateway, unreachable: true},
		{status: http.StatusServiceUnavailable, unreachable: true},
		{status: http.StatusGatewayTimeout, unreachable: true},
		{status: http.StatusInternalServerError, specific: ErrInternalServerError},
		{status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := newTestAdapter(t, srv.URL).Ping(context.Background())

			require.Error(t, err)
			assert.Equal(t, tt.unreachable, IsUnreachable(err))
			assert.Equal(t, !tt.unreachable, IsRejected(err))
			if tt.specific != nil {
				assert.ErrorIs(t, err, tt.specific)
			}
		})
	}
}

func TestClassification_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).List(context.Background(), models.RecordFilter{})

	assert.True(t, IsUnreachable(err))
	assert.False(t, IsRejected(err))
}

func TestClassification_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	a, err := NewHTTPRegistryAdapter(config.ClientAdapter{
		HTTPAddress:    srv.URL,
		RequestTimeout: 50 * time.Millisecond,
	}, logger.Nop())
	require.NoError(t, err)

	_, err = a.Get(context.Background(), 1)

	assert.True(t, IsUnreachable(err))
}

func TestClassification_CallerCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestAdapter(t, srv.URL).Ping(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, IsUnreachable(err))
	assert.False(t, IsRejected(err))
}

func TestClassification_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "not a number"`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Get(context.Background(), 1)

	assert.True(t, IsRejected(err))
}

// ── headers ─────────────────────────────────────────────────────────────────

func TestRequest_ForwardsTraceID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "trace-1", r.Header.Get(utils.TraceIDHeader))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx := utils.WithTraceID(context.Background(), "trace-1")
	assert.NoError(t, newTestAdapter(t, srv.URL).Ping(ctx))
}
