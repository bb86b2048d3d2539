// Package server initializes and runs the task manager application: it
// opens the database, applies migrations, wires the services together and
// starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/taskmanager/internal/logging"
	"github.com/dmitrijs2005/taskmanager/internal/server/auth"
	"github.com/dmitrijs2005/taskmanager/internal/server/config"
	"github.com/dmitrijs2005/taskmanager/internal/server/httpx"
	"github.com/dmitrijs2005/taskmanager/internal/server/ratelimit"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskmanager/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	taskService *services.TaskService
	tokens      *auth.TokenManager
	limiter     *ratelimit.AuthLimiter
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	if cfg.SecretKey == config.DefaultSecretKey {
		logger.Warn(ctx, "JWT secret is the compiled-in default; set JWT_SECRET before exposing this server")
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokens := auth.NewTokenManager([]byte(cfg.SecretKey), cfg.TokenValidityDuration)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	us := services.NewUserService(db, rm, tokens, hasher, logger)

	policy := services.TaskPolicy{
		RequireDescription: cfg.TaskRequireDescription,
		TitleLettersOnly:   cfg.TaskTitleLettersOnly,
	}
	ts := services.NewTaskService(db, rm, policy, logger)

	var limiter *ratelimit.AuthLimiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = ratelimit.NewAuthLimiter(client, cfg.AuthRateLimitMaxAttempts, cfg.AuthRateLimitWindow)
	}

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		userService: us,
		taskService: ts,
		tokens:      tokens,
		limiter:     limiter,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpx.NewServer(app.config.Address, app.logger, app.userService, app.taskService, app.tokens, app.limiter)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
