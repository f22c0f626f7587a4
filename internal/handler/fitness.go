package handler

import (
	"net/http"
	"strconv"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/service"
)

type FitnessHandler struct {
	fitnessService *service.FitnessService
}

func NewFitnessHandler(fitnessService *service.FitnessService) *FitnessHandler {
	return &FitnessHandler{
		fitnessService: fitnessService,
	}
}

// Today returns the current day's fitness entry, or null when none exists.
func (h *FitnessHandler) Today(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	entry, err := h.fitnessService.Today(user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// Weekly returns entries for the trailing days (default 7), newest first.
func (h *FitnessHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	days := service.DefaultFitnessDays
	daysStr := r.URL.Query().Get("days")
	if daysStr != "" {
		n, err := strconv.Atoi(daysStr)
		if err == nil && n > 0 {
			days = n
		}
	}

	entries, err := h.fitnessService.Weekly(user.ID, days)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

func (h *FitnessHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input service.CreateFitnessInput
	err := decode(r, &input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	entry, err := h.fitnessService.Create(user.ID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

func (h *FitnessHandler) Update(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("id")

	var input service.UpdateFitnessInput
	err := decode(r, &input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	entry, err := h.fitnessService.Update(entryID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}
