package queries

import (
	"context"
	"strings"

	"palette/contexts/community-palettes/preset-registry/domain/entities"
	domainerrors "palette/contexts/community-palettes/preset-registry/domain/errors"
	"palette/contexts/community-palettes/preset-registry/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListPresetsUseCase serves the read paths: filtered listing, featured,
// moderation queue, and by-author views. Reads have no side effects.
type ListPresetsUseCase struct {
	Presets ports.PresetRepository
}

func (uc ListPresetsUseCase) List(ctx context.Context, filter ports.ListFilter) ([]entities.Preset, error) {
	if filter.Status != "" && !entities.ValidStatus(filter.Status) {
		return nil, domainerrors.ErrValidation
	}
	if filter.Category != "" && !entities.ValidCategory(filter.Category) {
		return nil, domainerrors.ErrValidation
	}
	switch filter.Sort {
	case "", ports.SortPopularity:
		filter.Sort = ports.SortPopularity
	case ports.SortRecent, ports.SortName:
	default:
		return nil, domainerrors.ErrValidation
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	filter.Search = strings.TrimSpace(filter.Search)
	// Public listings default to approved; by-author callers scope the status
	// themselves based on who is asking.
	if filter.Status == "" && filter.AuthorID == "" {
		filter.Status = entities.PresetStatusApproved
	}
	return uc.Presets.ListPresets(ctx, filter)
}

func (uc ListPresetsUseCase) Featured(ctx context.Context, limit int) ([]entities.Preset, error) {
	curated := true
	return uc.List(ctx, ports.ListFilter{
		Status:  entities.PresetStatusApproved,
		Curated: &curated,
		Sort:    ports.SortPopularity,
		Limit:   limit,
	})
}

func (uc ListPresetsUseCase) Pending(ctx context.Context, limit int, offset int) ([]entities.Preset, error) {
	return uc.List(ctx, ports.ListFilter{
		Status: entities.PresetStatusPending,
		Sort:   ports.SortRecent,
		Limit:  limit,
		Offset: offset,
	})
}

// ByAuthor shows the author's full history to the author and to moderators.
// Everyone else only sees the approved subset, so ban-hidden, rejected, and
// held presets stay invisible here just like in Get.
func (uc ListPresetsUseCase) ByAuthor(
	ctx context.Context,
	authorID string,
	viewerID string,
	moderator bool,
	limit int,
	offset int,
) ([]entities.Preset, error) {
	authorID = strings.TrimSpace(authorID)
	filter := ports.ListFilter{
		AuthorID: authorID,
		Sort:     ports.SortRecent,
		Limit:    limit,
		Offset:   offset,
	}
	if !moderator && !strings.EqualFold(authorID, strings.TrimSpace(viewerID)) {
		filter.Status = entities.PresetStatusApproved
	}
	return uc.List(ctx, filter)
}

// Get applies read-time visibility: hidden and rejected presets are only
// visible to their author or a moderator.
func (uc ListPresetsUseCase) Get(ctx context.Context, presetID string, viewerID string, moderator bool) (entities.Preset, error) {
	preset, err := uc.Presets.GetPreset(ctx, strings.TrimSpace(presetID))
	if err != nil {
		return entities.Preset{}, err
	}
	switch preset.Status {
	case entities.PresetStatusHidden, entities.PresetStatusRejected:
		if !moderator && !strings.EqualFold(preset.AuthorID, strings.TrimSpace(viewerID)) {
			return entities.Preset{}, domainerrors.ErrPresetNotFound
		}
	}
	return preset, nil
}
