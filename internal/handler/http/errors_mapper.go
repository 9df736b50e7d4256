package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-registry-keeper/internal/app"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/service"
	"github.com/MKhiriev/go-registry-keeper/internal/store"
)

// errorStatuses is checked in order: transient failures also wrap the
// generic query errors below them.
var errorStatuses = []struct {
	target error
	status int
}{
	{service.ErrInvalidDataProvided, http.StatusBadRequest},

	{store.ErrRecordNotFound, http.StatusNotFound},
	{store.ErrComponentNotFound, http.StatusNotFound},
	{store.ErrComponentExists, http.StatusConflict},
	{store.ErrDuplicateID, http.StatusConflict},

	{store.ErrTransient, http.StatusServiceUnavailable},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with the mapped status. Client errors
// carry the error text so the caller can show the reason; server errors
// a fixed message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", op).Int("status", status).Msg("request failed")

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = app.MessageForStatus(status)
	}
	http.Error(w, msg, status)
}
