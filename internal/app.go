// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/preilly17/VacationSync-sub009/internal/amadeus"
	router "github.com/preilly17/VacationSync-sub009/internal/api"
	"github.com/preilly17/VacationSync-sub009/internal/api/handler"
	apimw "github.com/preilly17/VacationSync-sub009/internal/api/middleware"
	"github.com/preilly17/VacationSync-sub009/internal/config"
	"github.com/preilly17/VacationSync-sub009/internal/notify"
	"github.com/preilly17/VacationSync-sub009/internal/repository"
	"github.com/preilly17/VacationSync-sub009/internal/repository/postgres"
	"github.com/preilly17/VacationSync-sub009/internal/service"
	"github.com/preilly17/VacationSync-sub009/internal/util"
	"github.com/preilly17/VacationSync-sub009/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Hub    *notify.Hub

	// Repositories
	UserRepository     repository.UserRepository
	SessionRepository  repository.SessionRepository
	TripRepository     repository.TripRepository
	ActivityRepository repository.ActivityRepository
	ProposalRepository repository.ProposalRepository
	ExpenseStore       repository.ExpenseStore

	// Services
	AuthService     service.AuthService
	TripService     service.TripService
	ActivityService service.ActivityService
	ProposalService service.ProposalService
	ExpenseService  service.ExpenseService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.SessionRepository = postgres.NewSessionRepository(app.DB)
	app.TripRepository = postgres.NewTripRepository(app.DB)
	app.ActivityRepository = postgres.NewActivityRepository(app.DB)
	app.ProposalRepository = postgres.NewProposalRepository(app.DB)
	app.ExpenseStore = postgres.NewExpenseStore(app.DB, db.BeginTx, db.CommitTx, db.RollbackTx)
	app.Logger.Info("Repositories initialized.")

	app.Hub = notify.NewHub(app.Logger)
	go app.Hub.Run()

	app.AuthService = service.NewAuthService(app.DB, app.UserRepository, app.SessionRepository)
	app.TripService = service.NewTripService(app.DB, app.DB, app.TripRepository, db.BeginTx, db.CommitTx, db.RollbackTx)
	app.ActivityService = service.NewActivityService(app.DB, app.ActivityRepository, app.Hub)
	app.ProposalService = service.NewProposalService(app.DB, app.ProposalRepository, app.Hub)
	app.ExpenseService = service.NewExpenseService(app.ExpenseStore, app.Hub)
	app.Logger.Info("Services initialized.")

	amadeusClient := amadeus.NewClient(app.Config.Amadeus, app.Logger)

	wsHandler := notify.NewHandler(app.Hub, app.Logger, func(r *http.Request) (string, bool) {
		return apimw.UserID(r.Context())
	})

	app.HTTPHandler = router.NewRouter(router.Handlers{
		Auth:     handler.NewAuthHandler(app.AuthService, app.Logger),
		Trip:     handler.NewTripHandler(app.TripService, app.Logger),
		Activity: handler.NewActivityHandler(app.ActivityService, app.TripService, app.Logger),
		Proposal: handler.NewProposalHandler(app.ProposalService, app.TripService, app.Logger),
		Expense:  handler.NewExpenseHandler(app.ExpenseService, app.TripService, app.Logger),
		Search:   handler.NewSearchHandler(amadeusClient, app.Logger),
		ServeWS:  wsHandler.ServeWS,
	}, app.AuthService, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
