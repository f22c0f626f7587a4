package handler

import (
	"net/http"
	"strconv"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/service"
)

type ActivityHandler struct {
	activityService *service.ActivityService
}

func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// Recent returns the activity feed, newest first.
func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	limit := service.DefaultActivityLimit
	limitStr := r.URL.Query().Get("limit")
	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err == nil && n > 0 {
			limit = n
		}
	}

	feed, err := h.activityService.Recent(user.ID, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if feed == nil {
		feed = []*model.ActivityWithUser{}
	}

	respondJSON(w, http.StatusOK, feed)
}
