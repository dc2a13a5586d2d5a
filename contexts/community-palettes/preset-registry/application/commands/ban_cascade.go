package commands

import (
	"context"
	"log/slog"
	"strings"

	application "palette/contexts/community-palettes/preset-registry/application"
	"palette/contexts/community-palettes/preset-registry/domain/entities"
	"palette/contexts/community-palettes/preset-registry/ports"
)

// BanCascadeUseCase applies ban-driven visibility suppression. HideByAuthor
// records each preset's pre-hide status on the row so RestoreByAuthor can put
// it back exactly; the ban registry never touches preset rows itself.
type BanCascadeUseCase struct {
	Presets ports.PresetRepository
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (uc BanCascadeUseCase) HideByAuthor(ctx context.Context, authorID string) (int, error) {
	logger := application.ResolveLogger(uc.Logger)
	suppressible := []entities.PresetStatus{
		entities.PresetStatusApproved,
		entities.PresetStatusPending,
		entities.PresetStatusFlagged,
	}
	presets, err := uc.Presets.ListByAuthorInStatuses(ctx, strings.TrimSpace(authorID), suppressible)
	if err != nil {
		return 0, err
	}
	hidden := 0
	for _, preset := range presets {
		preset.PreHideStatus = preset.Status
		preset.Status = entities.PresetStatusHidden
		preset.UpdatedAt = uc.Clock.Now().UTC()
		if err := uc.Presets.UpdatePreset(ctx, preset); err != nil {
			return hidden, err
		}
		hidden++
	}
	logger.Info("ban cascade hid presets",
		"event", "preset_ban_cascade_hidden",
		"module", "community-palettes/preset-registry",
		"layer", "application",
		"author_id", strings.TrimSpace(authorID),
		"count", hidden,
	)
	return hidden, nil
}

func (uc BanCascadeUseCase) RestoreByAuthor(ctx context.Context, authorID string) (int, error) {
	logger := application.ResolveLogger(uc.Logger)
	presets, err := uc.Presets.ListByAuthorInStatuses(ctx, strings.TrimSpace(authorID), []entities.PresetStatus{entities.PresetStatusHidden})
	if err != nil {
		return 0, err
	}
	restored := 0
	for _, preset := range presets {
		prior := preset.PreHideStatus
		if !entities.ValidStatus(prior) || prior == entities.PresetStatusHidden || prior == "" {
			prior = entities.PresetStatusApproved
		}
		preset.Status = prior
		preset.PreHideStatus = ""
		preset.UpdatedAt = uc.Clock.Now().UTC()
		if err := uc.Presets.UpdatePreset(ctx, preset); err != nil {
			return restored, err
		}
		restored++
	}
	logger.Info("ban cascade restored presets",
		"event", "preset_ban_cascade_restored",
		"module", "community-palettes/preset-registry",
		"layer", "application",
		"author_id", strings.TrimSpace(authorID),
		"count", restored,
	)
	return restored, nil
}
