package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/andrescamacho/go-mediator/internal/adapters/persistence"
	"github.com/andrescamacho/go-mediator/internal/application/audit"
	"github.com/andrescamacho/go-mediator/internal/application/tasks/commands"
	"github.com/andrescamacho/go-mediator/internal/application/tasks/events"
	"github.com/andrescamacho/go-mediator/internal/application/tasks/queries"
	"github.com/andrescamacho/go-mediator/internal/infrastructure/config"
	"github.com/andrescamacho/go-mediator/internal/infrastructure/database"
	"github.com/andrescamacho/go-mediator/internal/infrastructure/logging"
	"github.com/andrescamacho/go-mediator/mediator"
	"github.com/andrescamacho/go-mediator/middleware"
)

// app holds the wired dependencies shared by all CLI commands
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	tasks    persistence.TaskRepository
	logs     persistence.DispatchLogRepository
	mediator mediator.Mediator
}

// newApp loads configuration and wires the full dispatch pipeline
func newApp(configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	taskRepo := persistence.NewGormTaskRepository(db)
	logRepo := persistence.NewGormDispatchLogRepository(db)

	collector := middleware.NewDispatchMetricsCollector()
	if err := collector.Register(prometheus.DefaultRegisterer); err != nil {
		return nil, fmt.Errorf("failed to register dispatch metrics: %w", err)
	}

	strategy := mediator.PublishConcurrent
	if cfg.Mediator.PublishStrategy == "sequential" {
		strategy = mediator.PublishSequential
	}

	opts := []mediator.Option{
		mediator.WithMiddleware(
			middleware.DispatchID(),
			middleware.Logging(logger),
			middleware.Metrics(collector),
		),
		mediator.WithStreamMiddleware(middleware.StreamLogging(logger)),
		mediator.WithPreProcessors(middleware.NewValidationPreProcessor()),
		mediator.WithStreamPreProcessors(middleware.NewValidationPreProcessor()),
		mediator.WithPostProcessors(audit.NewRecorder(logRepo)),
		mediator.WithPublishStrategy(strategy),
	}
	if cfg.Mediator.DispatchRate > 0 {
		limiter := rate.NewLimiter(rate.Limit(cfg.Mediator.DispatchRate), cfg.Mediator.DispatchBurst)
		opts = append(opts, mediator.WithMiddleware(middleware.RateLimit(limiter)))
	}

	m := mediator.NewMediator(opts...)

	if err := registerHandlers(m, logger, taskRepo, logRepo); err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		tasks:    taskRepo,
		logs:     logRepo,
		mediator: m,
	}, nil
}

// registerHandlers binds every command, query, and event handler
func registerHandlers(m mediator.Mediator, logger *zap.Logger, taskRepo persistence.TaskRepository, logRepo persistence.DispatchLogRepository) error {
	if err := mediator.RegisterHandler[*commands.CreateTaskCommand](m,
		commands.NewCreateTaskHandler(taskRepo, m)); err != nil {
		return fmt.Errorf("failed to register create task handler: %w", err)
	}
	if err := mediator.RegisterVoidHandler[*commands.CompleteTaskCommand](m,
		commands.NewCompleteTaskHandler(taskRepo)); err != nil {
		return fmt.Errorf("failed to register complete task handler: %w", err)
	}
	if err := mediator.RegisterHandler[*queries.GetTaskQuery](m,
		queries.NewGetTaskHandler(taskRepo)); err != nil {
		return fmt.Errorf("failed to register get task handler: %w", err)
	}
	if err := mediator.RegisterStreamHandler[*queries.TaskActivityQuery](m,
		queries.NewTaskActivityHandler(logRepo)); err != nil {
		return fmt.Errorf("failed to register task activity handler: %w", err)
	}
	if err := mediator.RegisterNotificationHandler[*events.TaskCreatedEvent](m,
		events.NewTaskCreatedLogger(logger)); err != nil {
		return fmt.Errorf("failed to register task created logger: %w", err)
	}
	if err := mediator.RegisterNotificationHandler[*events.TaskCreatedEvent](m,
		audit.NewNotificationRecorder(logRepo)); err != nil {
		return fmt.Errorf("failed to register task created audit: %w", err)
	}
	return nil
}

// close releases the app resources
func (a *app) close() {
	_ = a.logger.Sync()
	_ = database.Close(a.db)
}
