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

type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "approve"
	ReviewActionReject  ReviewAction = "reject"
	ReviewActionFlag    ReviewAction = "flag"
)

type ReviewPresetCommand struct {
	PresetID    string
	ModeratorID string
	Action      ReviewAction
}

// ReviewPresetUseCase applies moderator decisions through the status state
// machine. Flagging an approved preset snapshots its editable fields so the
// decision is revertible.
type ReviewPresetUseCase struct {
	Presets ports.PresetRepository
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (uc ReviewPresetUseCase) Execute(ctx context.Context, cmd ReviewPresetCommand) (entities.Preset, error) {
	logger := application.ResolveLogger(uc.Logger)
	var target entities.PresetStatus
	switch cmd.Action {
	case ReviewActionApprove:
		target = entities.PresetStatusApproved
	case ReviewActionReject:
		target = entities.PresetStatusRejected
	case ReviewActionFlag:
		target = entities.PresetStatusFlagged
	default:
		return entities.Preset{}, domainerrors.ErrInvalidReviewAction
	}

	preset, err := uc.Presets.GetPreset(ctx, strings.TrimSpace(cmd.PresetID))
	if err != nil {
		return entities.Preset{}, err
	}
	if !entities.CanTransition(preset.Status, target) {
		return entities.Preset{}, domainerrors.ErrInvalidTransition
	}
	if preset.Status == entities.PresetStatusApproved && target == entities.PresetStatusFlagged {
		preset.PrevValues = preset.Snapshot()
	}
	if target == entities.PresetStatusApproved {
		preset.PrevValues = nil
	}
	preset.Status = target
	preset.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Presets.UpdatePreset(ctx, preset); err != nil {
		return entities.Preset{}, err
	}
	logger.Info("preset reviewed",
		"event", "preset_review_applied",
		"module", "community-palettes/preset-registry",
		"layer", "application",
		"preset_id", preset.PresetID,
		"moderator_id", strings.TrimSpace(cmd.ModeratorID),
		"status", string(preset.Status),
	)
	return preset, nil
}

// RevertPresetUseCase restores a flagged preset's previous values and returns
// it to approved, clearing the snapshot.
type RevertPresetUseCase struct {
	Presets ports.PresetRepository
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (uc RevertPresetUseCase) Execute(ctx context.Context, presetID string, moderatorID string) (entities.Preset, error) {
	logger := application.ResolveLogger(uc.Logger)
	preset, err := uc.Presets.GetPreset(ctx, strings.TrimSpace(presetID))
	if err != nil {
		return entities.Preset{}, err
	}
	if preset.PrevValues == nil {
		return entities.Preset{}, domainerrors.ErrNoSnapshot
	}
	if !entities.CanTransition(preset.Status, entities.PresetStatusApproved) {
		return entities.Preset{}, domainerrors.ErrInvalidTransition
	}
	snapshot := preset.PrevValues
	preset.Name = snapshot.Name
	preset.Description = snapshot.Description
	preset.Tags = append([]string(nil), snapshot.Tags...)
	preset.Dyes = append([]int(nil), snapshot.Dyes...)
	preset.DyeSignature = entities.Signature(snapshot.Dyes)
	preset.PrevValues = nil
	preset.Status = entities.PresetStatusApproved
	preset.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Presets.UpdatePreset(ctx, preset); err != nil {
		return entities.Preset{}, err
	}
	logger.Info("preset reverted to snapshot",
		"event", "preset_revert_applied",
		"module", "community-palettes/preset-registry",
		"layer", "application",
		"preset_id", preset.PresetID,
		"moderator_id", strings.TrimSpace(moderatorID),
	)
	return preset, nil
}

// CuratePresetUseCase toggles the curated flag that drives featured listings.
type CuratePresetUseCase struct {
	Presets ports.PresetRepository
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (uc CuratePresetUseCase) Execute(ctx context.Context, presetID string, moderatorID string, curated bool) (entities.Preset, error) {
	preset, err := uc.Presets.GetPreset(ctx, strings.TrimSpace(presetID))
	if err != nil {
		return entities.Preset{}, err
	}
	preset.Curated = curated
	preset.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Presets.UpdatePreset(ctx, preset); err != nil {
		return entities.Preset{}, err
	}
	application.ResolveLogger(uc.Logger).Info("preset curated flag updated",
		"event", "preset_curate_applied",
		"module", "community-palettes/preset-registry",
		"layer", "application",
		"preset_id", preset.PresetID,
		"moderator_id", strings.TrimSpace(moderatorID),
		"curated", curated,
	)
	return preset, nil
}
