package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/planitapp/planit-api/internal/api"
	"github.com/planitapp/planit-api/internal/api/middleware"
	"github.com/planitapp/planit-api/internal/config"
	"github.com/planitapp/planit-api/internal/platform/postgres"
	"github.com/planitapp/planit-api/internal/scheduler"
	"github.com/planitapp/planit-api/internal/service"
	"github.com/planitapp/planit-api/internal/service/auth"
	"github.com/planitapp/planit-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	categoryStore store.CategoryStore
	goalStore     store.GoalStore
	taskStore     store.TaskStore

	jwtService      auth.JWTService
	userService     service.UserService
	categoryService service.CategoryService
	goalService     service.GoalService
	taskService     service.TaskService

	authMiddleware *middleware.AuthMiddleware

	authHandler     *api.AuthHandler
	categoryHandler *api.CategoryHandler
	goalHandler     *api.GoalHandler
	taskHandler     *api.TaskHandler

	scheduler *scheduler.Scheduler
}

// newApplication creates an application instance with all dependencies
// initialized: database connection, stores, services, handlers and the
// notification scheduler. Construction order follows the dependency
// graph bottom-up.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	log *slog.Logger,
) (*application, error) {
	db, err := setupDatabase(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	if err := postgres.RunMigrations(db, log); err != nil {
		closeDatabase(db, log)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	app.userStore = postgres.NewUserStore(db)
	app.categoryStore = postgres.NewCategoryStore(db)
	app.goalStore = postgres.NewGoalStore(db)
	app.taskStore = postgres.NewTaskStore(db, log)

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeDatabase(db, log)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	app.userService = service.NewUserService(
		app.userStore,
		auth.NewBcryptHasher(cfg.Auth.BCryptCost),
		auth.NewBcryptVerifier(),
		log,
	)
	app.categoryService = service.NewCategoryService(app.categoryStore, log)
	app.goalService = service.NewGoalService(app.goalStore, app.categoryStore, log)
	app.taskService = service.NewTaskService(app.taskStore, app.categoryStore, log)

	app.authMiddleware = middleware.NewAuthMiddleware(app.jwtService)

	app.authHandler = api.NewAuthHandler(app.userService, app.jwtService)
	app.categoryHandler = api.NewCategoryHandler(app.categoryService)
	app.goalHandler = api.NewGoalHandler(app.goalService)
	app.taskHandler = api.NewTaskHandler(app.taskService)

	app.scheduler = scheduler.New(
		app.taskStore,
		scheduler.NewLogNotifier(log),
		scheduler.Config{
			PollInterval:  time.Duration(cfg.Scheduler.PollIntervalSeconds) * time.Second,
			Window:        time.Duration(cfg.Scheduler.WindowSeconds) * time.Second,
			MaxConcurrent: cfg.Scheduler.MaxConcurrentDispatch,
			NotifyTimeout: time.Duration(cfg.Scheduler.NotifyTimeoutSeconds) * time.Second,
		},
		log,
	)

	return app, nil
}

// cleanup releases resources held by the application. Called after the
// HTTP server has drained.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}

func closeDatabase(db *sql.DB, log *slog.Logger) {
	if err := db.Close(); err != nil {
		log.Error("Failed to close database connection", "error", err)
	}
}
