package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/config"
	"github.com/stridehq/stride/internal/db"
	"github.com/stridehq/stride/internal/repository"
	"github.com/stridehq/stride/internal/repository/inmem"
	"github.com/stridehq/stride/internal/service"
	"github.com/stridehq/stride/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	AuthService     *service.AuthService
	GoalService     *service.GoalService
	CheckinService  *service.CheckinService
	ActivityService *service.ActivityService
	StatsService    *service.StatsService
	MemoryService   *service.MemoryService
	FitnessService  *service.FitnessService
}

func New(cfg *config.Config) (*App, error) {
	var (
		database *sqlx.DB

		userRepository      repository.UserRepository
		goalRepository      repository.GoalRepository
		milestoneRepository repository.MilestoneRepository
		collabRepository    repository.CollaboratorRepository
		progressRepository  repository.ProgressEntryRepository
		checkinRepository   repository.CheckinRepository
		activityRepository  repository.ActivityRepository
		memoryRepository    repository.MemoryRepository
		fitnessRepository   repository.FitnessRepository
	)

	if cfg.DBDriver == "memory" {
		store := inmem.New()
		userRepository = store.Users()
		goalRepository = store.Goals()
		milestoneRepository = store.Milestones()
		collabRepository = store.Collaborators()
		progressRepository = store.ProgressEntries()
		checkinRepository = store.Checkins()
		activityRepository = store.Activities()
		memoryRepository = store.Memories()
		fitnessRepository = store.Fitness()
	} else {
		var err error
		database, err = db.Init(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %v", err)
		}

		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			return nil, fmt.Errorf("failed to run migrations: %v", err)
		}

		userRepository = repository.NewUserRepository(database)
		goalRepository = repository.NewGoalRepository(database)
		milestoneRepository = repository.NewMilestoneRepository(database)
		collabRepository = repository.NewCollaboratorRepository(database)
		progressRepository = repository.NewProgressEntryRepository(database)
		checkinRepository = repository.NewCheckinRepository(database)
		activityRepository = repository.NewActivityRepository(database)
		memoryRepository = repository.NewMemoryRepository(database)
		fitnessRepository = repository.NewFitnessRepository(database)
	}

	// Storage (nil when no bucket is configured; photo uploads are rejected)
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	activityService := service.NewActivityService(activityRepository, goalRepository, userRepository)
	authService := service.NewAuthService(
		userRepository,
		cfg.SessionSecret,
		cfg.SessionExpiry,
		cfg.IsProduction(),
		cfg.DemoUserID,
		cfg.DemoUserEmail,
	)
	goalService := service.NewGoalService(
		goalRepository,
		milestoneRepository,
		collabRepository,
		progressRepository,
		activityService,
	)
	checkinService := service.NewCheckinService(checkinRepository, activityService)
	statsService := service.NewStatsService(goalRepository, fitnessRepository)
	memoryService := service.NewMemoryService(memoryRepository, fileStorage)
	fitnessService := service.NewFitnessService(fitnessRepository)

	return &App{
		Cfg:             cfg,
		DB:              database,
		AuthService:     authService,
		GoalService:     goalService,
		CheckinService:  checkinService,
		ActivityService: activityService,
		StatsService:    statsService,
		MemoryService:   memoryService,
		FitnessService:  fitnessService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
