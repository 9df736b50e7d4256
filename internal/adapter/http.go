package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-registry-keeper/internal/config"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/utils"
	"github.com/MKhiriev/go-registry-keeper/models"
	"github.com/go-resty/resty/v2"
)

// IdempotencyKeyHeader carries the client-generated key of a create request.
const IdempotencyKeyHeader = "Idempotency-Key"

const (
	recordsPath    = "/api/records"
	recordPath     = "/api/records/{id}"
	componentsPath = "/api/records/{id}/components"
	componentPath  = "/api/records/{id}/components/{name}"
	pingPath       = "/api/ping"
)

type httpRegistryAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPRegistryAdapter constructs the REST implementation of
// [RegistryAdapter]. It normalises adapterCfg.HTTPAddress ("host:port" gets
// an http:// scheme) and applies adapterCfg.RequestTimeout to every request.
//
// Returns an error if the address is empty or cannot be parsed as a URL.
func NewHTTPRegistryAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (RegistryAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpRegistryAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// List implements [RegistryAdapter]. GET /api/records?kind=&status=
func (h *httpRegistryAdapter) List(ctx context.Context, filter models.RecordFilter) ([]models.Record, error) {
	var records []models.Record

	req := h.request(ctx)
	if filter.Kind != "" {
		req.SetQueryParam("kind", filter.Kind)
	}
	if filter.Status != "" {
		req.SetQueryParam("status", filter.Status)
	}

	resp, err := req.Get(recordsPath)
	if err = h.classify("httpRegistryAdapter.List", resp, err); err != nil {
		return nil, err
	}
	if err = decodeBody(resp, &records); err != nil {
		return nil, err
	}

	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

// Get implements [RegistryAdapter]. GET /api/records/{id}
func (h *httpRegistryAdapter) Get(ctx context.Context, id int64) (models.Record, error) {
	var record models.Record

	resp, err := h.request(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Get(recordPath)
	if err = h.classify("httpRegistryAdapter.Get", resp, err); err != nil {
		return models.Record{}, err
	}
	if err = decodeBody(resp, &record); err != nil {
		return models.Record{}, err
	}

	return record, nil
}

// Create implements [RegistryAdapter]. POST /api/records with the
// Idempotency-Key header when idempotencyKey is set. The id is cleared so a
// staged negative id never reaches the server.
func (h *httpRegistryAdapter) Create(ctx context.Context, rec models.Record, idempotencyKey string) (models.Record, error) {
	var created models.Record
	rec.ID = 0

	req := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(rec)
	if idempotencyKey != "" {
		req.SetHeader(IdempotencyKeyHeader, idempotencyKey)
	}

	resp, err := req.Post(recordsPath)
	if err = h.classify("httpRegistryAdapter.Create", resp, err); err != nil {
		return models.Record{}, err
	}
	if err = decodeBody(resp, &created); err != nil {
		return models.Record{}, err
	}

	return created, nil
}

// Update implements [RegistryAdapter]. PUT /api/records/{id}
func (h *httpRegistryAdapter) Update(ctx context.Context, rec models.Record) (models.Record, error) {
	var updated models.Record

	resp, err := h.request(ctx).
		SetPathParam("id", strconv.FormatInt(rec.ID, 10)).
		SetHeader("Content-Type", "application/json").
		SetBody(rec).
		Put(recordPath)
	if err = h.classify("httpRegistryAdapter.Update", resp, err); err != nil {
		return models.Record{}, err
	}
	if err = decodeBody(resp, &updated); err != nil {
		return models.Record{}, err
	}

	return updated, nil
}

// Delete implements [RegistryAdapter]. DELETE /api/records/{id}
func (h *httpRegistryAdapter) Delete(ctx context.Context, id int64) error {
	resp, err := h.request(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(recordPath)

	return h.classify("httpRegistryAdapter.Delete", resp, err)
}

// ListComponents implements [RegistryAdapter]. GET /api/records/{id}/components
func (h *httpRegistryAdapter) ListComponents(ctx context.Context, recordID int64) ([]string, error) {
	var names []string

	resp, err := h.request(ctx).
		SetPathParam("id", strconv.FormatInt(recordID, 10)).
		Get(componentsPath)
	if err = h.classify("httpRegistryAdapter.ListComponents", resp, err); err != nil {
		return nil, err
	}
	if err = decodeBody(resp, &names); err != nil {
		return nil, err
	}

	if names == nil {
		names = []string{}
	}
	return names, nil
}

// AddComponent implements [RegistryAdapter]. POST /api/records/{id}/components
func (h *httpRegistryAdapter) AddComponent(ctx context.Context, recordID int64, name string) error {
	resp, err := h.request(ctx).
		SetPathParam("id", strconv.FormatInt(recordID, 10)).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ComponentRequest{Name: name}).
		Post(componentsPath)

	return h.classify("httpRegistryAdapter.AddComponent", resp, err)
}

// RemoveComponent implements [RegistryAdapter].
// DELETE /api/records/{id}/components/{name}
func (h *httpRegistryAdapter) RemoveComponent(ctx context.Context, recordID int64, name string) error {
	resp, err := h.request(ctx).
		SetPathParam("id", strconv.FormatInt(recordID, 10)).
		SetPathParam("name", name).
		Delete(componentPath)

	return h.classify("httpRegistryAdapter.RemoveComponent", resp, err)
}

// Ping implements [RegistryAdapter]. GET /api/ping
func (h *httpRegistryAdapter) Ping(ctx context.Context) error {
	resp, err := h.request(ctx).Get(pingPath)

	return h.classify("httpRegistryAdapter.Ping", resp, err)
}

func (h *httpRegistryAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader(utils.TraceIDHeader, traceID)
	}
	return req
}

// decodeBody unmarshals a 2xx body. A body the server should never send is a
// rejection, not an outage.
func decodeBody(resp *resty.Response, v any) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrRejected, err)
	}
	return nil
}

// classify turns a resty outcome into nil, a caller cancellation, or a
// classified adapter error, logging every failure.
func (h *httpRegistryAdapter) classify(op string, resp *resty.Response, err error) error {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("%s: %w", op, err)
		}
		h.logger.Debug().Err(err).Str("func", op).Msg("registry request failed")
		return mapTransportError(op, err)
	}

	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).
			Str("func", op).
			Int("status", resp.StatusCode()).
			Msg("registry answered with an error")
		return err
	}

	return nil
}
