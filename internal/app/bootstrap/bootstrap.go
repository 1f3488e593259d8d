package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	correctiontracker "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker"
	correctionpostgres "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/adapters/postgres"
	correctionapp "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/application"
	peerreview "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review"
	reviewpostgres "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/adapters/postgres"
	reviewworkers "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/application/workers"
	ratingversioner "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner"
	ratingpostgres "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/adapters/postgres"
	workflowengine "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine"
	workflowpostgres "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/adapters/postgres"
	workflowworkers "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/application/workers"
	submissionservice "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service"
	intakepostgres "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/adapters/postgres"
	intakeworkers "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/application/workers"
	"github.com/Post-X-Society/ans-project-sub001/internal/platform/config"
	"github.com/Post-X-Society/ans-project-sub001/internal/platform/db"
	"github.com/Post-X-Society/ans-project-sub001/internal/platform/httpserver"
	"github.com/Post-X-Society/ans-project-sub001/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres       *db.Postgres
	workflowOutbox workflowworkers.OutboxRelay
	intakeOutbox   intakeworkers.OutboxRelay
	reviewConsumer reviewworkers.WorkflowStateConsumer
	pollInterval   time.Duration
	logger         *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	workflowRepo := workflowpostgres.NewRepository(pg.DB, logger)
	workflowModule := workflowengine.NewModule(workflowengine.Dependencies{
		Repository: workflowRepo,
		Clock:      workflowpostgres.SystemClock{},
		IDGen:      workflowpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	intakeRepo := intakepostgres.NewRepository(pg.DB, logger)
	intakeModule := submissionservice.NewModule(submissionservice.Dependencies{
		Repository: intakeRepo,
		Outbox:     intakeRepo,
		Clock:      intakepostgres.SystemClock{},
		IDGen:      intakepostgres.UUIDGenerator{},
		Logger:     logger,
	})

	// The intake repository doubles as the reviewer directory: rounds open
	// against the reviewer set assigned on the originating submission.
	reviewRepo := reviewpostgres.NewRepository(pg.DB, logger)
	reviewModule := peerreview.NewModule(peerreview.Dependencies{
		Repository:   reviewRepo,
		Reviewers:    intakeRepo,
		Dedup:        reviewRepo,
		Clock:        reviewpostgres.SystemClock{},
		IDGen:        reviewpostgres.UUIDGenerator{},
		MinReviewers: cfg.Policy.MinReviewers,
		Logger:       logger,
	})

	correctionRepo := correctionpostgres.NewRepository(pg.DB, logger)
	correctionModule := correctiontracker.NewModule(correctiontracker.Dependencies{
		Repository: correctionRepo,
		FactChecks: workflowRepo,
		Clock:      correctionpostgres.SystemClock{},
		IDGen:      correctionpostgres.UUIDGenerator{},
		Policy: correctionapp.Policy{
			SubstantialSLADays: cfg.Policy.SubstantialSLADays,
			UpdateSLADays:      cfg.Policy.UpdateSLADays,
			MinorSLADays:       cfg.Policy.MinorSLADays,
			MinDetailsLen:      cfg.Policy.MinDetailsLen,
			MinNotesLen:        cfg.Policy.MinNotesLen,
			MinSummaryLen:      cfg.Policy.MinSummaryLen,
		},
		Logger: logger,
	})

	ratingRepo := ratingpostgres.NewRepository(pg.DB, logger)
	ratingModule := ratingversioner.NewModule(ratingversioner.Dependencies{
		Repository:          ratingRepo,
		Workflow:            workflowRepo,
		Clock:               ratingpostgres.SystemClock{},
		IDGen:               ratingpostgres.UUIDGenerator{},
		Scale:               cfg.Policy.RatingScale,
		MinJustificationLen: cfg.Policy.MinJustificationLen,
		Logger:              logger,
	})

	server := httpserver.New(httpserver.Modules{
		Workflow:    workflowModule,
		PeerReview:  reviewModule,
		Corrections: correctionModule,
		Ratings:     ratingModule,
		Intake:      intakeModule,
	}, logger, normalizeAddr(cfg.HTTPPort))

	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)

	workflowRepo := workflowpostgres.NewRepository(pg.DB, logger)
	intakeRepo := intakepostgres.NewRepository(pg.DB, logger)
	reviewRepo := reviewpostgres.NewRepository(pg.DB, logger)

	reviewModule := peerreview.NewModule(peerreview.Dependencies{
		Repository:   reviewRepo,
		Reviewers:    intakeRepo,
		Subscriber:   bus,
		Dedup:        reviewRepo,
		Clock:        reviewpostgres.SystemClock{},
		IDGen:        reviewpostgres.UUIDGenerator{},
		MinReviewers: cfg.Policy.MinReviewers,
		Logger:       logger,
	})

	return &WorkerApp{
		postgres: pg,
		workflowOutbox: workflowworkers.OutboxRelay{
			Outbox:    workflowRepo,
			Publisher: bus,
			Clock:     workflowpostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		intakeOutbox: intakeworkers.OutboxRelay{
			Outbox:    intakeRepo,
			Publisher: bus,
			Clock:     intakepostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		reviewConsumer: reviewModule.Consumer,
		pollInterval:   2 * time.Second,
		logger:         logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.reviewConsumer.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.workflowOutbox.RunOnce(ctx); err != nil {
			return err
		}
		if err := w.intakeOutbox.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
