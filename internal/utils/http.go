package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxJSONBodySize caps request bodies decoded by [ReadJSON]. A record is a
// few hundred bytes; anything near the cap is not a registry payload.
const MaxJSONBodySize = 1 << 20

// ErrTrailingData is returned by [ReadJSON] when the body holds more than one
// JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// WriteJSON encodes data and writes it with statusCode and a JSON content
// type. On an encoding failure it answers 500 instead and returns the error.
//
//	utils.WriteJSON(w, records, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error encoding response", http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// ReadJSON decodes exactly one JSON value from the request body into v.
func ReadJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxJSONBodySize))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("error decoding request body: %w", err)
	}
	if dec.More() {
		return ErrTrailingData
	}
	return nil
}
