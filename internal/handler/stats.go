package handler

import (
	"net/http"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	stats, err := h.statsService.Stats(user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
