package http

import (
	"net/http"

	"github.com/MKhiriev/go-registry-keeper/internal/utils"
	"github.com/MKhiriev/go-registry-keeper/models"
)

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AppInfoService.CheckHealth(r.Context()); err != nil {
		h.writeError(w, r, "Handler.ping", err)
		return
	}

	utils.WriteJSON(w, models.PingResponse{
		Status:  "ok",
		Version: h.services.AppInfoService.GetAppVersion(r.Context()),
	}, http.StatusOK)
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}
