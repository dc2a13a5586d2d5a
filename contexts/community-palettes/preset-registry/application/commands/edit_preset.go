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

type EditPresetCommand struct {
	PresetID string
	EditorID string
	Fields   PresetFields
}

type EditPresetResult struct {
	Preset    entities.Preset
	Reflagged bool
}

// EditPresetUseCase applies an author edit and re-runs moderation over the new
// text. When an approved preset fails re-moderation the pre-edit fields are
// snapshotted into previous_values and the preset transitions to flagged so a
// moderator can revert.
type EditPresetUseCase struct {
	Presets    ports.PresetRepository
	Moderation ports.ModerationClient
	Notifier   ports.FlagNotifier
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc EditPresetUseCase) Execute(ctx context.Context, cmd EditPresetCommand) (EditPresetResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	cmd.Fields.normalize()
	if err := cmd.Fields.validate(); err != nil {
		return EditPresetResult{}, err
	}

	preset, err := uc.Presets.GetPreset(ctx, strings.TrimSpace(cmd.PresetID))
	if err != nil {
		return EditPresetResult{}, err
	}
	if !strings.EqualFold(preset.AuthorID, strings.TrimSpace(cmd.EditorID)) {
		return EditPresetResult{}, domainerrors.ErrNotAuthor
	}
	switch preset.Status {
	case entities.PresetStatusApproved, entities.PresetStatusPending:
	default:
		return EditPresetResult{}, domainerrors.ErrEditNotEditable
	}

	wasApproved := preset.Status == entities.PresetStatusApproved
	verdict := uc.Moderation.Evaluate(ctx, cmd.Fields.Name, cmd.Fields.Description)

	snapshot := preset.Snapshot()
	preset.Name = cmd.Fields.Name
	preset.Description = cmd.Fields.Description
	preset.Category = cmd.Fields.Category
	preset.Dyes = append([]int(nil), cmd.Fields.Dyes...)
	preset.Tags = append([]string(nil), cmd.Fields.Tags...)
	preset.DyeSignature = entities.Signature(cmd.Fields.Dyes)
	preset.UpdatedAt = uc.Clock.Now().UTC()

	reflagged := false
	if !verdict.Passed && wasApproved {
		// Snapshot only on the approved -> flagged edit path; a pending
		// preset that fails again just stays pending.
		preset.PrevValues = snapshot
		preset.Status = entities.PresetStatusFlagged
		reflagged = true
	}

	if err := uc.Presets.UpdatePreset(ctx, preset); err != nil {
		return EditPresetResult{}, err
	}

	if reflagged {
		logger.Warn("approved preset re-flagged after edit",
			"event", "preset_edit_reflagged",
			"module", "community-palettes/preset-registry",
			"layer", "application",
			"preset_id", preset.PresetID,
			"author_id", preset.AuthorID,
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
	} else {
		logger.Info("preset edited",
			"event", "preset_edit_applied",
			"module", "community-palettes/preset-registry",
			"layer", "application",
			"preset_id", preset.PresetID,
			"author_id", preset.AuthorID,
		)
	}
	return EditPresetResult{Preset: preset, Reflagged: reflagged}, nil
}
