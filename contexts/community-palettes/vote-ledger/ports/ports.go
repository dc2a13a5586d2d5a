package ports

import (
	"context"
	"time"

	"palette/contexts/community-palettes/vote-ledger/domain/entities"
)

// PresetProjection is the read-side view of a preset row this module needs to
// admit or refuse a vote.
type PresetProjection struct {
	PresetID  string
	AuthorID  string
	Status    string
	VoteCount int
}

type VoteRepository interface {
	// InsertVote writes the ledger row and increments the preset's
	// denormalized count as one all-or-nothing unit. When the (preset,
	// voter) pair already exists it reports inserted=false with the
	// unchanged count and applies no side effects.
	InsertVote(ctx context.Context, vote entities.Vote) (inserted bool, newCount int, err error)
	// DeleteVote removes the ledger row and decrements the count floored at
	// zero, atomically. A missing row reports deleted=false.
	DeleteVote(ctx context.Context, presetID string, voterID string) (deleted bool, newCount int, err error)
	GetPresetProjection(ctx context.Context, presetID string) (PresetProjection, error)
	ListVotesByPreset(ctx context.Context, presetID string) ([]entities.Vote, error)
}

type Clock interface {
	Now() time.Time
}
