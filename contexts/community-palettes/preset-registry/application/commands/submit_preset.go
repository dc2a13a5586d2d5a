package commands

import (
	"context"
	"log/slog"
	"strings"

	application "palette/contexts/community-palettes/preset-registry/application"
	"palette/contexts/community-palettes/preset-registry/domain/entities"
	domainerrors "palette/contexts/community-palettes/preset-registry/domain/errors"
	"palette/contexts/community-palettes/preset-registry/ports"
)

type SubmitPresetCommand struct {
	AuthorID   string
	AuthorName string
	Fields     PresetFields
}

type SubmitPresetResult struct {
	Preset       entities.Preset
	Duplicate    bool
	VoteAdded    bool
	AlreadyVoted bool
	Flagged      bool
	FlagReason   string
}

// SubmitPresetUseCase runs the submission lifecycle: rate limit, duplicate
// collapse, moderation, create, author self-vote, flagged-content handoff.
// The rate-limit and duplicate checks are read-then-act by design; the store
// remains the only synchronization point.
type SubmitPresetUseCase struct {
	Presets    ports.PresetRepository
	Moderation ports.ModerationClient
	Votes      ports.VoteCaster
	Notifier   ports.FlagNotifier
	Limiter    SubmissionLimiter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc SubmitPresetUseCase) Execute(ctx context.Context, cmd SubmitPresetCommand) (SubmitPresetResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	authorID := strings.TrimSpace(cmd.AuthorID)
	if authorID == "" {
		return SubmitPresetResult{}, domainerrors.ErrValidation
	}
	cmd.Fields.normalize()
	if err := cmd.Fields.validate(); err != nil {
		return SubmitPresetResult{}, err
	}

	decision, err := uc.Limiter.Check(ctx, authorID)
	if err != nil {
		return SubmitPresetResult{}, err
	}
	if !decision.Allowed {
		logger.Warn("preset submission rate limited",
			"event", "preset_submit_rate_limited",
			"module", "community-palettes/preset-registry",
			"layer", "application",
			"author_id", authorID,
			"reset_at", decision.ResetAt,
		)
		return SubmitPresetResult{}, &domainerrors.RateLimitError{Limit: uc.Limiter.limit(), ResetAt: decision.ResetAt}
	}

	signature := entities.Signature(cmd.Fields.Dyes)
	if existing, found, err := uc.Presets.FindBySignature(ctx, signature, entities.DuplicateTargetStatuses()); err != nil {
		return SubmitPresetResult{}, err
	} else if found {
		outcome, err := uc.Votes.CastVote(ctx, existing.PresetID, authorID)
		if err != nil {
			return SubmitPresetResult{}, err
		}
		if !outcome.AlreadyVoted {
			existing.VoteCount = outcome.NewCount
		}
		logger.Info("duplicate preset collapsed into vote",
			"event", "preset_submit_duplicate_collapsed",
			"module", "community-palettes/preset-registry",
			"layer", "application",
			"preset_id", existing.PresetID,
			"author_id", authorID,
			"dye_signature", signature,
		)
		return SubmitPresetResult{
			Preset:       existing,
			Duplicate:    true,
			VoteAdded:    !outcome.AlreadyVoted,
			AlreadyVoted: outcome.AlreadyVoted,
		}, nil
	}

	verdict := uc.Moderation.Evaluate(ctx, cmd.Fields.Name, cmd.Fields.Description)
	status := entities.PresetStatusApproved
	if !verdict.Passed {
		status = entities.PresetStatusPending
	}

	presetID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return SubmitPresetResult{}, err
	}
	now := uc.Clock.Now().UTC()
	preset := entities.Preset{
		PresetID:     presetID,
		Name:         cmd.Fields.Name,
		Description:  cmd.Fields.Description,
		Category:     cmd.Fields.Category,
		Dyes:         append([]int(nil), cmd.Fields.Dyes...),
		Tags:         append([]string(nil), cmd.Fields.Tags...),
		AuthorID:     authorID,
		AuthorName:   strings.TrimSpace(cmd.AuthorName),
		Status:       status,
		DyeSignature: signature,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Presets.CreatePreset(ctx, preset); err != nil {
		return SubmitPresetResult{}, err
	}

	if outcome, err := uc.Votes.CastVote(ctx, preset.PresetID, authorID); err != nil {
		logger.Error("author self-vote failed",
			"event", "preset_submit_self_vote_failed",
			"module", "community-palettes/preset-registry",
			"layer", "application",
			"preset_id", preset.PresetID,
			"author_id", authorID,
			"error", err.Error(),
		)
	} else {
		preset.VoteCount = outcome.NewCount
	}

	result := SubmitPresetResult{Preset: preset}
	if !verdict.Passed {
		result.Flagged = true
		result.FlagReason = verdict.Reason
		logger.Warn("preset held for moderation",
			"event", "preset_submit_flagged",
			"module", "community-palettes/preset-registry",
			"layer", "application",
			"preset_id", preset.PresetID,
			"author_id", authorID,
			"method", verdict.Method,
			"flagged_field", verdict.FlaggedField,
			"reason", verdict.Reason,
		)
		if uc.Notifier != nil {
			uc.Notifier.NotifyFlagged(ctx, ports.FlagAlert{
				PresetID:    preset.PresetID,
				PresetName:  preset.Name,
				Description: preset.Description,
				AuthorID:    preset.AuthorID,
				AuthorName:  preset.AuthorName,
				Reason:      verdict.Reason,
			})
		}
		return result, nil
	}

	logger.Info("preset submitted",
		"event", "preset_submit_created",
		"module", "community-palettes/preset-registry",
		"layer", "application",
		"preset_id", preset.PresetID,
		"author_id", authorID,
		"status", string(preset.Status),
		"moderation_method", verdict.Method,
	)
	return result, nil
}

func (l SubmissionLimiter) limit() int {
	if l.Limit <= 0 {
		return DefaultDailySubmissionLimit
	}
	return l.Limit
}
