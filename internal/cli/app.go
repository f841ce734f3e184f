package cli

import (
	"context"
	"fmt"

	"github.com/WatchBeam/clock"
	"github.com/rs/zerolog"

	"choreboard/internal/auth"
	"choreboard/internal/config"
	"choreboard/internal/domain"
	"choreboard/internal/logging"
	"choreboard/internal/repository"
	"choreboard/internal/repository/sqlite"
	"choreboard/internal/service"
	"choreboard/internal/theme"
)

// everything a command needs, opened from the user's config
type app struct {
	cfg    *config.Config
	db     *sqlite.DB
	repos  repository.Repositories
	logger zerolog.Logger
	clock  clock.Clock

	tasks         *service.TaskService
	users         *service.UserService
	notifications *service.NotificationService

	theme  *theme.Theme
	styles *theme.Styles
}

// opens the app for a command that prints to the terminal; logs only reach the log file
func openApp(ctx context.Context) (*app, error) {
	return openAppWith(ctx, logging.NewQuiet)
}

// opens the app for a long-running command that logs to stderr
func openServerApp(ctx context.Context) (*app, error) {
	return openAppWith(ctx, logging.New)
}

// opens the database, wires the services and seeds a fresh board
func openAppWith(ctx context.Context, newLogger func(level, file string) (zerolog.Logger, error)) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.NewDB(sqlite.Config{Path: cfg.DBPath})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// the cli never issues tokens it has to verify later, so any secret works
	secret := cfg.JWTSecret
	if secret == "" {
		secret = "choreboard-cli"
	}
	issuer, err := auth.NewTokenIssuer(secret, cfg.JWTExpiry, clock.C)
	if err != nil {
		db.Close()
		return nil, err
	}

	repos := sqlite.NewRepositories(db)
	evaluator := domain.Evaluator{Anchor: cfg.Anchor(), Location: cfg.Location()}

	a := &app{
		cfg:           cfg,
		db:            db,
		repos:         repos,
		logger:        logger,
		clock:         clock.C,
		tasks:         service.NewTaskService(repos, evaluator, clock.C, logger),
		users:         service.NewUserService(repos, issuer, cfg.BcryptCost, clock.C, logger),
		notifications: service.NewNotificationService(repos),
	}
	a.theme, a.styles = loadTheme(cfg)

	if err := service.Seed(ctx, repos, a.users, a.tasks, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	return a, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// resolves --user to an account; the cli acts on behalf of that user
func (a *app) actor(ctx context.Context, apartment string) (*domain.User, error) {
	if apartment == "" {
		apartment = service.DefaultAdminApartment
	}
	user, err := a.repos.Users.GetByApartment(ctx, apartment)
	if err != nil {
		return nil, fmt.Errorf("no user for apartment %q: %w", apartment, err)
	}
	return user, nil
}

func loadTheme(cfg *config.Config) (*theme.Theme, *theme.Styles) {
	themeObj := theme.Resolve(cfg.ThemeName)
	return themeObj, theme.NewStyles(themeObj)
}
