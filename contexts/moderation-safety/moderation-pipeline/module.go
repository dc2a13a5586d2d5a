// Package moderationpipeline implements the two-stage content moderation
// pipeline inside the moderation-safety context: a precompiled local word
// filter and an optional external classifier with a degrade-on-failure
// policy.
package moderationpipeline

import (
	"log/slog"

	"palette/contexts/moderation-safety/moderation-pipeline/application"
	"palette/contexts/moderation-safety/moderation-pipeline/domain/entities"
	"palette/contexts/moderation-safety/moderation-pipeline/ports"
)

type Module struct {
	Pipeline application.Pipeline
}

type Dependencies struct {
	WordLists  map[string][]string
	Classifier ports.Classifier
	Threshold  float64
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	lists := deps.WordLists
	if lists == nil {
		lists = entities.DefaultWordLists()
	}
	return Module{
		Pipeline: application.Pipeline{
			Filter:     entities.NewFilter(lists),
			Classifier: deps.Classifier,
			Threshold:  deps.Threshold,
			Logger:     deps.Logger,
		},
	}
}
