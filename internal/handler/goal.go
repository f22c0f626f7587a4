package handler

import (
	"net/http"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// List returns the user's goals with milestones and collaborators embedded.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input service.CreateGoalInput
	err := decode(r, &input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	goal, err := h.goalService.Create(user.ID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var input service.UpdateGoalInput
	err := decode(r, &input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	goal, err := h.goalService.Update(user.ID, goalID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	err := h.goalService.Delete(goalID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// TeamGoals returns goals where the user is owner-of-team-goal or collaborator.
func (h *GoalHandler) TeamGoals(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.TeamGoals(user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

type addCollaboratorRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func (h *GoalHandler) AddCollaborator(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	var req addCollaboratorRequest
	err := decode(r, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	collaborator, err := h.goalService.AddCollaborator(goalID, req.UserID, req.Role)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, collaborator)
}

func (h *GoalHandler) RemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")
	userID := r.PathValue("userId")

	err := h.goalService.RemoveCollaborator(goalID, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *GoalHandler) UpdateMilestone(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	milestoneID := r.PathValue("id")

	var input service.UpdateMilestoneInput
	err := decode(r, &input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	milestone, err := h.goalService.UpdateMilestone(user.ID, milestoneID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, milestone)
}

func (h *GoalHandler) DeleteMilestone(w http.ResponseWriter, r *http.Request) {
	milestoneID := r.PathValue("id")

	err := h.goalService.DeleteMilestone(milestoneID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type progressRequest struct {
	GoalID      string `json:"goalId"`
	NewProgress int    `json:"newProgress"`
	Notes       string `json:"notes"`
}

// CreateProgress appends a progress entry and sets the goal's progress.
func (h *GoalHandler) CreateProgress(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req progressRequest
	err := decode(r, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	entry, err := h.goalService.UpdateProgress(user.ID, req.GoalID, req.NewProgress, req.Notes)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// ListProgress returns a goal's progress history, newest first.
func (h *GoalHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	entries, err := h.goalService.ProgressEntries(goalID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if entries == nil {
		entries = []*model.ProgressEntry{}
	}

	respondJSON(w, http.StatusOK, entries)
}
