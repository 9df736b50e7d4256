package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/utils"
	"github.com/MKhiriev/go-registry-keeper/models"
)

func (h *Handler) listComponents(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}

	names, err := h.services.ComponentService.List(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "*Handler.listComponents", err)
		return
	}
	if names == nil {
		names = []string{}
	}

	utils.WriteJSON(w, names, http.StatusOK)
}

func (h *Handler) addComponent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}

	var body models.ComponentRequest
	if err := utils.ReadJSON(r, &body); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.addComponent").Msg("invalid JSON was passed")
		http.Error(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.ComponentService.Add(r.Context(), id, body.Name); err != nil {
		h.writeError(w, r, "*Handler.addComponent", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) removeComponent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}

	if err := h.services.ComponentService.Remove(r.Context(), id, chi.URLParam(r, "name")); err != nil {
		h.writeError(w, r, "*Handler.removeComponent", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
