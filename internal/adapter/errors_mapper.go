package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapTransportError classifies a failure that produced no HTTP response.
func mapTransportError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnreachable, op, err)
}

// mapHTTPError classifies a non-2xx response. Gateway statuses mean the
// registry itself was not reached.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(status)
	}

	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: http %d: %s", ErrUnreachable, status, body)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %w: %s", ErrRejected, ErrBadRequest, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w: %s", ErrRejected, ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %w: %s", ErrRejected, ErrConflict, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %w: %s", ErrRejected, ErrInternalServerError, body)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrRejected, status, body)
	}
}
