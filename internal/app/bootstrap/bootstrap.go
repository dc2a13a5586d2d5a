package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	presetregistry "palette/contexts/community-palettes/preset-registry"
	presetpostgres "palette/contexts/community-palettes/preset-registry/adapters/postgres"
	presetports "palette/contexts/community-palettes/preset-registry/ports"
	voteledger "palette/contexts/community-palettes/vote-ledger"
	votepostgres "palette/contexts/community-palettes/vote-ledger/adapters/postgres"
	banregistry "palette/contexts/moderation-safety/ban-registry"
	banpostgres "palette/contexts/moderation-safety/ban-registry/adapters/postgres"
	moderationpipeline "palette/contexts/moderation-safety/moderation-pipeline"
	"palette/contexts/moderation-safety/moderation-pipeline/adapters/perspective"
	moderationapp "palette/contexts/moderation-safety/moderation-pipeline/application"
	moderationports "palette/contexts/moderation-safety/moderation-pipeline/ports"
	"palette/internal/platform/config"
	"palette/internal/platform/db"
	"palette/internal/platform/httpserver"
	"palette/internal/platform/notify"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
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

	moderation := moderationpipeline.NewModule(moderationpipeline.Dependencies{
		Classifier: buildClassifier(cfg, logger),
		Threshold:  cfg.ModerationThreshold,
		Logger:     logger,
	})

	voteModule := voteledger.NewModule(voteledger.Dependencies{
		Votes:  votepostgres.NewRepository(pg.DB, logger),
		Clock:  votepostgres.SystemClock{},
		Logger: logger,
	})

	notifier := notify.New(cfg.FlagWebhookURL, cfg.BotGatewayURL, cfg.BotToken, logger)

	presetModule := presetregistry.NewModule(presetregistry.Dependencies{
		Presets:    presetpostgres.NewRepository(pg.DB, logger),
		Moderation: moderationGateway{pipeline: moderation.Pipeline},
		Votes:      voteCasterGateway{votes: voteModule},
		Notifier:   notifier,
		Clock:      presetpostgres.SystemClock{},
		IDGen:      presetpostgres.UUIDGenerator{},
		DailyLimit: cfg.SubmissionDailyLimit,
		Logger:     logger,
	})

	banModule := banregistry.NewModule(banregistry.Dependencies{
		Repo:    banpostgres.NewRepository(pg.DB, logger),
		Presets: presetModule.Cascade,
		Clock:   banpostgres.SystemClock{},
		IDGen:   banpostgres.UUIDGenerator{},
		Logger:  logger,
	})

	server := httpserver.New(presetModule, voteModule, banModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func buildClassifier(cfg config.Config, logger *slog.Logger) moderationports.Classifier {
	if strings.TrimSpace(cfg.ClassifierURL) == "" {
		return nil
	}
	return perspective.NewClient(cfg.ClassifierURL, cfg.ClassifierAPIKey, cfg.ClassifierTimeout, logger)
}

// moderationGateway adapts the moderation pipeline to the preset registry's
// ModerationClient port so neither context imports the other.
type moderationGateway struct {
	pipeline moderationapp.Pipeline
}

func (g moderationGateway) Evaluate(ctx context.Context, name string, description string) presetports.ModerationVerdict {
	result := g.pipeline.Evaluate(ctx, name, description)
	return presetports.ModerationVerdict{
		Passed:       result.Passed,
		Method:       string(result.Method),
		FlaggedField: result.FlaggedField,
		Reason:       result.Reason,
		Scores:       result.Scores,
	}
}

// voteCasterGateway routes the preset registry's self-vote and
// duplicate-collapse writes through the vote ledger.
type voteCasterGateway struct {
	votes voteledger.Module
}

func (g voteCasterGateway) CastVote(ctx context.Context, presetID string, voterID string) (presetports.VoteOutcome, error) {
	result, err := g.votes.Votes.Cast(ctx, presetID, voterID)
	if err != nil {
		return presetports.VoteOutcome{}, err
	}
	return presetports.VoteOutcome{AlreadyVoted: result.AlreadyVoted, NewCount: result.NewCount}, nil
}

var (
	_ presetports.ModerationClient = moderationGateway{}
	_ presetports.VoteCaster       = voteCasterGateway{}
)

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
