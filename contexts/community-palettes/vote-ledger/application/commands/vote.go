package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "palette/contexts/community-palettes/vote-ledger/application"
	"palette/contexts/community-palettes/vote-ledger/domain/entities"
	domainerrors "palette/contexts/community-palettes/vote-ledger/domain/errors"
	"palette/contexts/community-palettes/vote-ledger/ports"
)

type VoteResult struct {
	Success      bool
	AlreadyVoted bool
	NewCount     int
}

// VoteUseCase provides idempotent per-user voting. A duplicate vote is a
// no-op reporting AlreadyVoted with the unchanged count, never an error and
// never a second ledger row; concurrency is resolved by the store's
// uniqueness constraint, not by in-process state.
type VoteUseCase struct {
	Votes  ports.VoteRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc VoteUseCase) Cast(ctx context.Context, presetID string, voterID string) (VoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	presetID = strings.TrimSpace(presetID)
	voterID = strings.TrimSpace(voterID)
	if presetID == "" || voterID == "" {
		return VoteResult{}, domainerrors.ErrInvalidVoteInput
	}
	projection, err := uc.Votes.GetPresetProjection(ctx, presetID)
	if err != nil {
		return VoteResult{}, err
	}
	if !votableStatus(projection.Status) {
		return VoteResult{}, domainerrors.ErrPresetNotVotable
	}

	inserted, newCount, err := uc.Votes.InsertVote(ctx, entities.Vote{
		PresetID:  presetID,
		VoterID:   voterID,
		CreatedAt: uc.now(),
	})
	if err != nil {
		return VoteResult{}, err
	}
	if !inserted {
		return VoteResult{Success: true, AlreadyVoted: true, NewCount: newCount}, nil
	}
	logger.Info("vote recorded",
		"event", "vote_cast",
		"module", "community-palettes/vote-ledger",
		"layer", "application",
		"preset_id", presetID,
		"voter_id", voterID,
		"vote_count", newCount,
	)
	return VoteResult{Success: true, NewCount: newCount}, nil
}

func (uc VoteUseCase) Retract(ctx context.Context, presetID string, voterID string) (VoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	presetID = strings.TrimSpace(presetID)
	voterID = strings.TrimSpace(voterID)
	if presetID == "" || voterID == "" {
		return VoteResult{}, domainerrors.ErrInvalidVoteInput
	}
	if _, err := uc.Votes.GetPresetProjection(ctx, presetID); err != nil {
		return VoteResult{}, err
	}

	deleted, newCount, err := uc.Votes.DeleteVote(ctx, presetID, voterID)
	if err != nil {
		return VoteResult{}, err
	}
	if !deleted {
		// Absence of a vote is not an error; AlreadyVoted=false tells the
		// caller there was nothing to retract.
		return VoteResult{Success: true, AlreadyVoted: false, NewCount: newCount}, nil
	}
	logger.Info("vote retracted",
		"event", "vote_retracted",
		"module", "community-palettes/vote-ledger",
		"layer", "application",
		"preset_id", presetID,
		"voter_id", voterID,
		"vote_count", newCount,
	)
	return VoteResult{Success: true, AlreadyVoted: true, NewCount: newCount}, nil
}

func (uc VoteUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func votableStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "pending":
		return true
	default:
		return false
	}
}
