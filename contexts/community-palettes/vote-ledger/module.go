// Package voteledger implements the idempotent vote ledger inside the
// community-palettes context. It owns vote rows and coordinates the
// denormalized vote_count on presets through atomic repository operations.
package voteledger

import (
	"log/slog"

	httpadapter "palette/contexts/community-palettes/vote-ledger/adapters/http"
	"palette/contexts/community-palettes/vote-ledger/adapters/memory"
	"palette/contexts/community-palettes/vote-ledger/application/commands"
	"palette/contexts/community-palettes/vote-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Votes   commands.VoteUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Votes  ports.VoteRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	useCase := commands.VoteUseCase{
		Votes:  deps.Votes,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Votes: useCase, Logger: deps.Logger},
		Votes:   useCase,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{Votes: store, Clock: store, Logger: logger})
	module.Store = store
	return module
}
