package handler

import (
	"net/http"

	"github.com/stridehq/stride/internal/apperr"
	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/service"
)

type MemoryHandler struct {
	memoryService *service.MemoryService
	maxUploadSize int64
}

func NewMemoryHandler(memoryService *service.MemoryService, maxUploadSize int64) *MemoryHandler {
	return &MemoryHandler{
		memoryService: memoryService,
		maxUploadSize: maxUploadSize,
	}
}

// List returns the user's photo memories, optionally filtered by goal.
func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var goalID *string
	if v := r.URL.Query().Get("goalId"); v != "" {
		goalID = &v
	}

	memories, err := h.memoryService.List(user.ID, goalID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, memories)
}

// Upload accepts a multipart form with the photo under field "photo", plus
// caption and optional goalId and tags fields.
func (h *MemoryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	// Ceiling on the whole request body; the per-file size check happens in
	// validation against the same limit.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1<<20)

	err := r.ParseMultipartForm(h.maxUploadSize)
	if err != nil {
		respondError(w, r, apperr.Wrap(apperr.KindInvalid, "invalid upload", err))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		respondError(w, r, apperr.Invalid("photo field is required"))
		return
	}
	defer func() { _ = file.Close() }()

	caption := r.FormValue("caption")

	var goalID *string
	if v := r.FormValue("goalId"); v != "" {
		goalID = &v
	}

	var tags []string
	if r.MultipartForm != nil {
		tags = r.MultipartForm.Value["tags"]
	}

	memory, err := h.memoryService.Upload(user.ID, goalID, caption, tags, file, header)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, memory)
}

func (h *MemoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	memoryID := r.PathValue("id")

	err := h.memoryService.Delete(user.ID, memoryID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
