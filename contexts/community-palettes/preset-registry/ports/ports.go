package ports

import (
	"context"
	"time"

	"palette/contexts/community-palettes/preset-registry/domain/entities"
)

type ListSort string

const (
	SortPopularity ListSort = "popularity"
	SortRecent     ListSort = "recent"
	SortName       ListSort = "name"
)

type ListFilter struct {
	Status   entities.PresetStatus
	Category string
	Curated  *bool
	AuthorID string
	Search   string
	Sort     ListSort
	Limit    int
	Offset   int
}

type PresetRepository interface {
	CreatePreset(ctx context.Context, preset entities.Preset) error
	GetPreset(ctx context.Context, presetID string) (entities.Preset, error)
	UpdatePreset(ctx context.Context, preset entities.Preset) error
	FindBySignature(ctx context.Context, signature string, statuses []entities.PresetStatus) (entities.Preset, bool, error)
	CountByAuthorBetween(ctx context.Context, authorID string, from time.Time, to time.Time) (int64, error)
	ListPresets(ctx context.Context, filter ListFilter) ([]entities.Preset, error)
	ListByAuthorInStatuses(ctx context.Context, authorID string, statuses []entities.PresetStatus) ([]entities.Preset, error)
}

// ModerationVerdict is the projection of a moderation-pipeline result this
// module needs to derive an initial status.
type ModerationVerdict struct {
	Passed       bool
	Method       string
	FlaggedField string
	Reason       string
	Scores       map[string]float64
}

type ModerationClient interface {
	Evaluate(ctx context.Context, name string, description string) ModerationVerdict
}

type VoteOutcome struct {
	AlreadyVoted bool
	NewCount     int
}

// VoteCaster hands vote writes to the vote ledger; used for the author
// self-vote on creation and the vote-instead-of-create duplicate path.
type VoteCaster interface {
	CastVote(ctx context.Context, presetID string, voterID string) (VoteOutcome, error)
}

type FlagAlert struct {
	PresetID    string
	PresetName  string
	Description string
	AuthorID    string
	AuthorName  string
	Reason      string
}

// FlagNotifier is a fire-and-forget sink; implementations log failures and
// never propagate them to the submission flow.
type FlagNotifier interface {
	NotifyFlagged(ctx context.Context, alert FlagAlert)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
