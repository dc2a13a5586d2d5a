package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"palette/contexts/community-palettes/preset-registry/domain/entities"
	domainerrors "palette/contexts/community-palettes/preset-registry/domain/errors"
	"palette/contexts/community-palettes/preset-registry/ports"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreatePreset(ctx context.Context, preset entities.Preset) error {
	row, err := presetModelFromEntity(preset)
	if err != nil {
		return r.logError("preset_repo_encode_failed", err, "preset_id", preset.PresetID)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("preset_repo_create_failed", err, "preset_id", preset.PresetID)
	}
	return nil
}

func (r *Repository) GetPreset(ctx context.Context, presetID string) (entities.Preset, error) {
	var row presetModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(presetID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Preset{}, domainerrors.ErrPresetNotFound
		}
		return entities.Preset{}, r.logError("preset_repo_get_failed", err, "preset_id", strings.TrimSpace(presetID))
	}
	return row.toEntity()
}

func (r *Repository) UpdatePreset(ctx context.Context, preset entities.Preset) error {
	row, err := presetModelFromEntity(preset)
	if err != nil {
		return r.logError("preset_repo_encode_failed", err, "preset_id", preset.PresetID)
	}
	result := r.db.WithContext(ctx).
		Model(&presetModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"name":            row.Name,
			"description":     row.Description,
			"category":        row.Category,
			"dyes":            row.Dyes,
			"tags":            row.Tags,
			"status":          row.Status,
			"curated":         row.Curated,
			"dye_signature":   row.DyeSignature,
			"previous_values": row.PreviousValues,
			"pre_hide_status": row.PreHideStatus,
			"updated_at":      row.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("preset_repo_update_failed", result.Error, "preset_id", row.ID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPresetNotFound
	}
	return nil
}

func (r *Repository) FindBySignature(
	ctx context.Context,
	signature string,
	statuses []entities.PresetStatus,
) (entities.Preset, bool, error) {
	var row presetModel
	err := r.db.WithContext(ctx).
		Where("dye_signature = ?", strings.TrimSpace(signature)).
		Where("status IN ?", statusStrings(statuses)).
		Order("created_at ASC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Preset{}, false, nil
		}
		return entities.Preset{}, false, r.logError("preset_repo_find_by_signature_failed", err,
			"dye_signature", strings.TrimSpace(signature),
		)
	}
	preset, err := row.toEntity()
	if err != nil {
		return entities.Preset{}, false, err
	}
	return preset, true, nil
}

func (r *Repository) CountByAuthorBetween(
	ctx context.Context,
	authorID string,
	from time.Time,
	to time.Time,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&presetModel{}).
		Where("author_id = ?", strings.TrimSpace(authorID)).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("preset_repo_count_by_author_failed", err, "author_id", strings.TrimSpace(authorID))
	}
	return count, nil
}

func (r *Repository) ListPresets(ctx context.Context, filter ports.ListFilter) ([]entities.Preset, error) {
	tx := r.db.WithContext(ctx).Model(&presetModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.Curated != nil {
		tx = tx.Where("curated = ?", *filter.Curated)
	}
	if filter.AuthorID != "" {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags::text) LIKE ?",
			needle, needle, needle,
		)
	}
	switch filter.Sort {
	case ports.SortRecent:
		tx = tx.Order("created_at DESC")
	case ports.SortName:
		tx = tx.Order("LOWER(name) ASC")
	default:
		tx = tx.Order("vote_count DESC").Order("created_at DESC")
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}
	var rows []presetModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, r.logError("preset_repo_list_failed", err)
	}
	return toPresetEntities(rows)
}

func (r *Repository) ListByAuthorInStatuses(
	ctx context.Context,
	authorID string,
	statuses []entities.PresetStatus,
) ([]entities.Preset, error) {
	var rows []presetModel
	err := r.db.WithContext(ctx).
		Where("author_id = ?", strings.TrimSpace(authorID)).
		Where("status IN ?", statusStrings(statuses)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("preset_repo_list_by_author_statuses_failed", err,
			"author_id", strings.TrimSpace(authorID),
		)
	}
	return toPresetEntities(rows)
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "community-palettes/preset-registry",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("preset repository operation failed", fields...)
	return err
}

type presetModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name"`
	Description    string    `gorm:"column:description"`
	Category       string    `gorm:"column:category"`
	Dyes           []byte    `gorm:"column:dyes;type:jsonb"`
	Tags           []byte    `gorm:"column:tags;type:jsonb"`
	AuthorID       string    `gorm:"column:author_id"`
	AuthorName     string    `gorm:"column:author_name"`
	VoteCount      int       `gorm:"column:vote_count"`
	Status         string    `gorm:"column:status"`
	Curated        bool      `gorm:"column:curated"`
	DyeSignature   string    `gorm:"column:dye_signature"`
	PreviousValues []byte    `gorm:"column:previous_values;type:jsonb"`
	PreHideStatus  string    `gorm:"column:pre_hide_status"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (presetModel) TableName() string {
	return "presets"
}

func presetModelFromEntity(preset entities.Preset) (presetModel, error) {
	dyes, err := json.Marshal(preset.Dyes)
	if err != nil {
		return presetModel{}, err
	}
	tags, err := json.Marshal(preset.Tags)
	if err != nil {
		return presetModel{}, err
	}
	var snapshot []byte
	if preset.PrevValues != nil {
		snapshot, err = json.Marshal(preset.PrevValues)
		if err != nil {
			return presetModel{}, err
		}
	}
	return presetModel{
		ID:             strings.TrimSpace(preset.PresetID),
		Name:           preset.Name,
		Description:    preset.Description,
		Category:       preset.Category,
		Dyes:           dyes,
		Tags:           tags,
		AuthorID:       strings.TrimSpace(preset.AuthorID),
		AuthorName:     strings.TrimSpace(preset.AuthorName),
		VoteCount:      preset.VoteCount,
		Status:         string(preset.Status),
		Curated:        preset.Curated,
		DyeSignature:   preset.DyeSignature,
		PreviousValues: snapshot,
		PreHideStatus:  string(preset.PreHideStatus),
		CreatedAt:      preset.CreatedAt.UTC(),
		UpdatedAt:      preset.UpdatedAt.UTC(),
	}, nil
}

func (m presetModel) toEntity() (entities.Preset, error) {
	var dyes []int
	if len(m.Dyes) > 0 {
		if err := json.Unmarshal(m.Dyes, &dyes); err != nil {
			return entities.Preset{}, err
		}
	}
	var tags []string
	if len(m.Tags) > 0 {
		if err := json.Unmarshal(m.Tags, &tags); err != nil {
			return entities.Preset{}, err
		}
	}
	var snapshot *entities.PresetSnapshot
	if len(m.PreviousValues) > 0 {
		snapshot = &entities.PresetSnapshot{}
		if err := json.Unmarshal(m.PreviousValues, snapshot); err != nil {
			return entities.Preset{}, err
		}
	}
	return entities.Preset{
		PresetID:      m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Category:      m.Category,
		Dyes:          dyes,
		Tags:          tags,
		AuthorID:      m.AuthorID,
		AuthorName:    m.AuthorName,
		VoteCount:     m.VoteCount,
		Status:        entities.PresetStatus(m.Status),
		Curated:       m.Curated,
		DyeSignature:  m.DyeSignature,
		PrevValues:    snapshot,
		PreHideStatus: entities.PresetStatus(m.PreHideStatus),
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}, nil
}

func toPresetEntities(rows []presetModel) ([]entities.Preset, error) {
	items := make([]entities.Preset, 0, len(rows))
	for _, row := range rows {
		preset, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, preset)
	}
	return items, nil
}

func statusStrings(statuses []entities.PresetStatus) []string {
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}
	return values
}

var _ ports.PresetRepository = (*Repository)(nil)
