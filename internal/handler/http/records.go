package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/utils"
	"github.com/MKhiriev/go-registry-keeper/models"
)

// IdempotencyKeyHeader carries the client key of a create request.
const IdempotencyKeyHeader = "Idempotency-Key"

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	filter := models.RecordFilter{
		Kind:   r.URL.Query().Get("kind"),
		Status: r.URL.Query().Get("status"),
	}

	records, err := h.services.RecordService.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, "*Handler.listRecords", err)
		return
	}
	if records == nil {
		records = []models.Record{}
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}

	rec, err := h.services.RecordService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "*Handler.getRecord", err)
		return
	}

	utils.WriteJSON(w, rec, http.StatusOK)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var rec models.Record
	if err := utils.ReadJSON(r, &rec); err != nil {
		log.Err(err).Str("func", "*Handler.createRecord").Msg("invalid JSON was passed")
		http.Error(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	stored, created, err := h.services.RecordService.Create(r.Context(), rec, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		h.writeError(w, r, "*Handler.createRecord", err)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	utils.WriteJSON(w, stored, status)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, ok := h.recordID(w, r)
	if !ok {
		return
	}

	var rec models.Record
	if err := utils.ReadJSON(r, &rec); err != nil {
		log.Err(err).Str("func", "*Handler.updateRecord").Msg("invalid JSON was passed")
		http.Error(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	// the path wins over the body
	rec.ID = id

	updated, err := h.services.RecordService.Update(r.Context(), rec)
	if err != nil {
		h.writeError(w, r, "*Handler.updateRecord", err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}

	if err := h.services.RecordService.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, "*Handler.deleteRecord", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// recordID parses the {id} path parameter and answers 400 when it is not an
// integer.
func (h *Handler) recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("id", raw).Msg("invalid record id in path")
		http.Error(w, ErrInvalidRecordID.Error(), http.StatusBadRequest)
		return 0, false
	}

	return id, true
}
