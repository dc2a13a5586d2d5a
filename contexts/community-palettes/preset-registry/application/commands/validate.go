package commands

import (
	"fmt"
	"strings"

	"palette/contexts/community-palettes/preset-registry/domain/entities"
	domainerrors "palette/contexts/community-palettes/preset-registry/domain/errors"
)

type PresetFields struct {
	Name        string
	Description string
	Category    string
	Dyes        []int
	Tags        []string
}

func (f *PresetFields) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))
	tags := make([]string, 0, len(f.Tags))
	for _, tag := range f.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	f.Tags = tags
}

func (f PresetFields) validate() error {
	if len(f.Name) < entities.NameMinLength || len(f.Name) > entities.NameMaxLength {
		return fmt.Errorf("%w: name must be %d-%d characters", domainerrors.ErrValidation, entities.NameMinLength, entities.NameMaxLength)
	}
	if len(f.Description) < entities.DescriptionMinLength || len(f.Description) > entities.DescriptionMaxLength {
		return fmt.Errorf("%w: description must be %d-%d characters", domainerrors.ErrValidation, entities.DescriptionMinLength, entities.DescriptionMaxLength)
	}
	if !entities.ValidCategory(f.Category) {
		return fmt.Errorf("%w: unknown category %q", domainerrors.ErrValidation, f.Category)
	}
	if len(f.Dyes) < entities.DyesMinCount || len(f.Dyes) > entities.DyesMaxCount {
		return fmt.Errorf("%w: dye list must hold %d-%d dyes", domainerrors.ErrValidation, entities.DyesMinCount, entities.DyesMaxCount)
	}
	for _, dye := range f.Dyes {
		if dye <= 0 {
			return fmt.Errorf("%w: dye ids must be positive", domainerrors.ErrValidation)
		}
	}
	if len(f.Tags) > entities.TagsMaxCount {
		return fmt.Errorf("%w: at most %d tags allowed", domainerrors.ErrValidation, entities.TagsMaxCount)
	}
	for _, tag := range f.Tags {
		if len(tag) > entities.TagMaxLength {
			return fmt.Errorf("%w: tag %q exceeds %d characters", domainerrors.ErrValidation, tag, entities.TagMaxLength)
		}
	}
	return nil
}
