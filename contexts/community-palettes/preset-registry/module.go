// Package presetregistry implements the preset lifecycle engine inside the
// community-palettes context.
//
// The module owns preset records and status transitions, the dye-signature
// duplicate collapse, the per-author daily submission limiter, and the
// submission orchestration that composes moderation, the vote ledger, and the
// flagged-content notifier through ports.
package presetregistry

import (
	"log/slog"

	httpadapter "palette/contexts/community-palettes/preset-registry/adapters/http"
	"palette/contexts/community-palettes/preset-registry/adapters/memory"
	"palette/contexts/community-palettes/preset-registry/application/commands"
	"palette/contexts/community-palettes/preset-registry/application/queries"
	"palette/contexts/community-palettes/preset-registry/domain/entities"
	"palette/contexts/community-palettes/preset-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Cascade commands.BanCascadeUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Presets    ports.PresetRepository
	Moderation ports.ModerationClient
	Votes      ports.VoteCaster
	Notifier   ports.FlagNotifier
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	DailyLimit int
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	limiter := commands.SubmissionLimiter{
		Presets: deps.Presets,
		Clock:   deps.Clock,
		Limit:   deps.DailyLimit,
	}
	return Module{
		Handler: httpadapter.Handler{
			Submit: commands.SubmitPresetUseCase{
				Presets:    deps.Presets,
				Moderation: deps.Moderation,
				Votes:      deps.Votes,
				Notifier:   deps.Notifier,
				Limiter:    limiter,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Edit: commands.EditPresetUseCase{
				Presets:    deps.Presets,
				Moderation: deps.Moderation,
				Notifier:   deps.Notifier,
				Clock:      deps.Clock,
				Logger:     deps.Logger,
			},
			Review: commands.ReviewPresetUseCase{Presets: deps.Presets, Clock: deps.Clock, Logger: deps.Logger},
			Revert: commands.RevertPresetUseCase{Presets: deps.Presets, Clock: deps.Clock, Logger: deps.Logger},
			Curate: commands.CuratePresetUseCase{Presets: deps.Presets, Clock: deps.Clock, Logger: deps.Logger},
			Lists:  queries.ListPresetsUseCase{Presets: deps.Presets},
			Logger: deps.Logger,
		},
		Cascade: commands.BanCascadeUseCase{Presets: deps.Presets, Clock: deps.Clock, Logger: deps.Logger},
	}
}

func NewInMemoryModule(seed []entities.Preset, deps Dependencies, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	deps.Presets = store
	if deps.Clock == nil {
		deps.Clock = store
	}
	if deps.IDGen == nil {
		deps.IDGen = store
	}
	deps.Logger = logger
	module := NewModule(deps)
	module.Store = store
	return module
}
