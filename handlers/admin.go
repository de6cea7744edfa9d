package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"tournament/export"
	"tournament/service"
	"tournament/validation"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	svc    *service.RegistrationService
	logger *log.Logger
}

func NewAdminHandler(svc *service.RegistrationService, logger *log.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, logger: logger}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req validation.StatusUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	team, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *AdminHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	var req validation.NotesUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	team, err := h.svc.UpdateNotes(r.Context(), chi.URLParam(r, "id"), req.Notes)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *AdminHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req validation.BulkStatusUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	teams, err := h.svc.BulkUpdateStatus(r.Context(), req.IDs, req.Status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	file, err := h.svc.Export(r.Context(), r.URL.Query().Get("gameType"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		h.logger.Warn("failed to write export", "err", err)
	}
}
