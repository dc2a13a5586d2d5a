// Package banregistry implements the ban registry inside the
// moderation-safety context. It owns ban rows (an append-only audit trail)
// and drives preset visibility suppression through the PresetSuppressor port.
package banregistry

import (
	"log/slog"

	httpadapter "palette/contexts/moderation-safety/ban-registry/adapters/http"
	"palette/contexts/moderation-safety/ban-registry/adapters/memory"
	"palette/contexts/moderation-safety/ban-registry/application"
	"palette/contexts/moderation-safety/ban-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repo    ports.BanRepository
	Presets ports.PresetSuppressor
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:    deps.Repo,
		Presets: deps.Presets,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(presets ports.PresetSuppressor, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:    store,
		Presets: presets,
		Clock:   store,
		IDGen:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
