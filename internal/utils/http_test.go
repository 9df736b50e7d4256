package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-registry-keeper/models"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		status     int
		wantStatus int
		wantBody   string
		wantErr    bool
	}{
		{
			name:       "record",
			data:       models.Record{ID: 7, Name: "Bridge", Year: 1950},
			status:     http.StatusCreated,
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":7,"name":"Bridge","kind":"","status":"","year":1950,"location":""}`,
		},
		{
			name:       "empty list",
			data:       []models.Record{},
			status:     http.StatusOK,
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "not encodable",
			data:       make(chan int),
			status:     http.StatusOK,
			wantStatus: http.StatusInternalServerError,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantErr {
				require.Error(t, err)
				assert.Zero(t, n)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    models.Record
		wantErr error
		anyErr  bool
	}{
		{name: "valid", body: `{"id":3,"name":"Tunnel"}`, want: models.Record{ID: 3, Name: "Tunnel"}},
		{name: "malformed", body: `{"id":`, anyErr: true},
		{name: "wrong type", body: `{"id":"three"}`, anyErr: true},
		{name: "two values", body: `{"name":"a"} {"name":"b"}`, wantErr: ErrTrailingData},
		{name: "empty", body: ``, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(tt.body))

			var got models.Record
			err := ReadJSON(r, &got)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestReadJSON_BodyLimit(t *testing.T) {
	body := `{"name":"` + strings.Repeat("x", MaxJSONBodySize) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(body))

	var got models.Record
	assert.Error(t, ReadJSON(r, &got))
}
