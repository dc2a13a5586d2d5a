package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"palette/contexts/moderation-safety/moderation-pipeline/domain/entities"
	"palette/contexts/moderation-safety/moderation-pipeline/ports"
)

// DefaultThreshold is the confidence at or above which an external attribute
// score flags content.
const DefaultThreshold = 0.70

// RequestedAttributes is the fixed attribute set submitted to the external
// classifier.
var RequestedAttributes = []string{
	"TOXICITY",
	"SEVERE_TOXICITY",
	"IDENTITY_ATTACK",
	"INSULT",
	"PROFANITY",
}

// Pipeline runs the two moderation stages. The local filter is authoritative
// and never fails; the external classifier is optional and degrades to "no
// opinion" on any error, so external unavailability can never reject content
// a human has not seen.
type Pipeline struct {
	Filter     *entities.Filter
	Classifier ports.Classifier
	Threshold  float64
	Logger     *slog.Logger
}

func (p Pipeline) Evaluate(ctx context.Context, name string, description string) entities.Result {
	logger := ResolveLogger(p.Logger)
	if p.Filter != nil {
		if term, hit := p.Filter.Match(name); hit {
			logger.Info("local filter flagged content",
				"event", "moderation_local_flagged",
				"module", "moderation-safety/moderation-pipeline",
				"layer", "application",
				"flagged_field", entities.FieldName,
				"term", term,
			)
			return entities.FailLocal(entities.FieldName)
		}
		if term, hit := p.Filter.Match(description); hit {
			logger.Info("local filter flagged content",
				"event", "moderation_local_flagged",
				"module", "moderation-safety/moderation-pipeline",
				"layer", "application",
				"flagged_field", entities.FieldDescription,
				"term", term,
			)
			return entities.FailLocal(entities.FieldDescription)
		}
	}

	if p.Classifier == nil {
		return entities.Pass(entities.MethodLocal)
	}

	text := strings.TrimSpace(name + " " + description)
	scores, err := p.Classifier.Score(ctx, text, RequestedAttributes)
	if err != nil {
		// Degraded mode: no external opinion is not a failed submission.
		logger.Warn("external classifier unavailable, using local verdict",
			"event", "moderation_external_degraded",
			"module", "moderation-safety/moderation-pipeline",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Pass(entities.MethodLocal)
	}

	threshold := p.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	worstAttr := ""
	worstScore := 0.0
	for attr, score := range scores {
		if score >= threshold && score > worstScore {
			worstAttr = attr
			worstScore = score
		}
	}
	if worstAttr != "" {
		reason := fmt.Sprintf("%s score %d%%",
			strings.ToLower(strings.ReplaceAll(worstAttr, "_", "-")),
			int(worstScore*100),
		)
		logger.Info("external classifier flagged content",
			"event", "moderation_external_flagged",
			"module", "moderation-safety/moderation-pipeline",
			"layer", "application",
			"attribute", worstAttr,
			"score", worstScore,
		)
		return entities.FailExternal(reason, scores)
	}
	return entities.Pass(entities.MethodAll)
}
