package handler

import (
	"net/http"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/service"
)

type CheckinHandler struct {
	checkinService *service.CheckinService
}

func NewCheckinHandler(checkinService *service.CheckinService) *CheckinHandler {
	return &CheckinHandler{
		checkinService: checkinService,
	}
}

// Today returns the current day's check-in, or null when none exists.
func (h *CheckinHandler) Today(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	checkin, err := h.checkinService.Today(user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, checkin)
}

type checkinRequest struct {
	Mood  string `json:"mood"`
	Notes string `json:"notes"`
}

func (h *CheckinHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req checkinRequest
	err := decode(r, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	checkin, err := h.checkinService.Create(user.ID, req.Mood, req.Notes)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, checkin)
}
