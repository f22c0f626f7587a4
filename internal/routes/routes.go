package routes

import (
	"net/http"

	"github.com/stridehq/stride/internal/app"
	"github.com/stridehq/stride/internal/handler"
	"github.com/stridehq/stride/internal/middleware"
)

func SetupRoutes(a *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler()
	auth := handler.NewAuthHandler(a.AuthService)
	goal := handler.NewGoalHandler(a.GoalService)
	checkin := handler.NewCheckinHandler(a.CheckinService)
	activity := handler.NewActivityHandler(a.ActivityService)
	stats := handler.NewStatsHandler(a.StatsService)
	memory := handler.NewMemoryHandler(a.MemoryService, a.Cfg.MaxUploadSize)
	fitness := handler.NewFitnessHandler(a.FitnessService)

	mux := http.NewServeMux()

	// Health (unauthenticated)
	mux.HandleFunc("GET /api/health", health.Health)

	// Session (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("GET /api/login", rateLimiter(auth.Login))
	mux.HandleFunc("GET /api/logout", auth.Logout)
	mux.HandleFunc("GET /api/auth/user", auth.Me)

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("PUT /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))
	mux.HandleFunc("GET /api/team-goals", middleware.RequireAuth(goal.TeamGoals))
	mux.HandleFunc("GET /api/goals/{id}/progress", middleware.RequireAuth(goal.ListProgress))
	mux.HandleFunc("POST /api/goals/{id}/collaborators", middleware.RequireAuth(goal.AddCollaborator))
	mux.HandleFunc("DELETE /api/goals/{id}/collaborators/{userId}", middleware.RequireAuth(goal.RemoveCollaborator))

	// Milestones
	mux.HandleFunc("PUT /api/milestones/{id}", middleware.RequireAuth(goal.UpdateMilestone))
	mux.HandleFunc("DELETE /api/milestones/{id}", middleware.RequireAuth(goal.DeleteMilestone))

	// Progress
	mux.HandleFunc("POST /api/progress", middleware.RequireAuth(goal.CreateProgress))

	// Daily check-in
	mux.HandleFunc("GET /api/checkin/today", middleware.RequireAuth(checkin.Today))
	mux.HandleFunc("POST /api/checkin", middleware.RequireAuth(checkin.Create))

	// Activity feed + stats
	mux.HandleFunc("GET /api/activities", middleware.RequireAuth(activity.Recent))
	mux.HandleFunc("GET /api/stats", middleware.RequireAuth(stats.Stats))

	// Photo memories
	mux.HandleFunc("GET /api/memories", middleware.RequireAuth(memory.List))
	mux.HandleFunc("POST /api/memories/upload", middleware.RequireAuth(memory.Upload))
	mux.HandleFunc("DELETE /api/memories/{id}", middleware.RequireAuth(memory.Delete))

	// Fitness
	mux.HandleFunc("GET /api/fitness/today", middleware.RequireAuth(fitness.Today))
	mux.HandleFunc("GET /api/fitness/weekly", middleware.RequireAuth(fitness.Weekly))
	mux.HandleFunc("POST /api/fitness", middleware.RequireAuth(fitness.Create))
	mux.HandleFunc("PUT /api/fitness/{id}", middleware.RequireAuth(fitness.Update))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Recover,
		middleware.RequestLogging,
		middleware.AuthMiddleware(a.AuthService),
	)
}
