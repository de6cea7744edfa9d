package handlers

import (
	"net/http"

	"tournament/service"
	"tournament/validation"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
)

type TeamHandler struct {
	svc    *service.RegistrationService
	logger *log.Logger
}

func NewTeamHandler(svc *service.RegistrationService, logger *log.Logger) *TeamHandler {
	return &TeamHandler{svc: svc, logger: logger}
}

type countResponse struct {
	Count int64 `json:"count"`
}

func (h *TeamHandler) Tournaments(w http.ResponseWriter, r *http.Request) {
	slots, err := h.svc.Tournaments(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, slots)
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.ListTeams(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

func (h *TeamHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.CountTeams(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *TeamHandler) CountByGameType(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.CountByGameType(r.Context(), chi.URLParam(r, "gameType"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *TeamHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req validation.Registration
	if !decodeJSON(w, r, &req) {
		return
	}

	team, err := h.svc.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, team)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	team, err := h.svc.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	teams, err := h.svc.Search(r.Context(), q.Get("query"), q.Get("status"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}
