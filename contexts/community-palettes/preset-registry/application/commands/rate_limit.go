package commands

import (
	"context"
	"time"

	"palette/contexts/community-palettes/preset-registry/ports"
)

const DefaultDailySubmissionLimit = 10

type RateLimitDecision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// SubmissionLimiter bounds preset submissions per author per UTC calendar day
// by counting rows created inside the current window. The check is
// read-then-act: two submissions racing the boundary can both land, which is
// an accepted consistency trade, not a defect.
type SubmissionLimiter struct {
	Presets ports.PresetRepository
	Clock   ports.Clock
	Limit   int
}

func (l SubmissionLimiter) Check(ctx context.Context, authorID string) (RateLimitDecision, error) {
	limit := l.Limit
	if limit <= 0 {
		limit = DefaultDailySubmissionLimit
	}
	now := l.Clock.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	used, err := l.Presets.CountByAuthorBetween(ctx, authorID, dayStart, dayEnd)
	if err != nil {
		return RateLimitDecision{}, err
	}
	remaining := limit - int(used)
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitDecision{
		Allowed:   int(used) < limit,
		Remaining: remaining,
		ResetAt:   dayEnd,
	}, nil
}
