package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"palette/contexts/community-palettes/vote-ledger/domain/entities"
	domainerrors "palette/contexts/community-palettes/vote-ledger/domain/errors"
	"palette/contexts/community-palettes/vote-ledger/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

// InsertVote relies on the (preset_id, voter_id) primary key: the conflicting
// insert is a no-op and the count increment only runs when a row landed, so
// concurrent duplicate votes settle to exactly one ledger row and one
// increment.
func (r *Repository) InsertVote(ctx context.Context, vote entities.Vote) (bool, int, error) {
	row := voteModelFromEntity(vote)
	var inserted bool
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		create := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "preset_id"}, {Name: "voter_id"}},
			DoNothing: true,
		}).Create(&row)
		if create.Error != nil {
			if isUniqueViolation(create.Error) {
				return nil
			}
			return create.Error
		}
		inserted = create.RowsAffected > 0
		if !inserted {
			return nil
		}
		return tx.Model(&presetCountModel{}).
			Where("id = ?", row.PresetID).
			UpdateColumn("vote_count", gorm.Expr("vote_count + 1")).
			Error
	})
	if err != nil {
		return false, 0, r.logError("vote_repo_insert_failed", err,
			"preset_id", row.PresetID,
			"voter_id", row.VoterID,
		)
	}
	count, err = r.readCount(ctx, row.PresetID)
	if err != nil {
		return inserted, 0, err
	}
	return inserted, count, nil
}

func (r *Repository) DeleteVote(ctx context.Context, presetID string, voterID string) (bool, int, error) {
	presetID = strings.TrimSpace(presetID)
	voterID = strings.TrimSpace(voterID)
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("preset_id = ?", presetID).
			Where("voter_id = ?", voterID).
			Delete(&voteModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		if !deleted {
			return nil
		}
		return tx.Model(&presetCountModel{}).
			Where("id = ?", presetID).
			UpdateColumn("vote_count", gorm.Expr("GREATEST(vote_count - 1, 0)")).
			Error
	})
	if err != nil {
		return false, 0, r.logError("vote_repo_delete_failed", err,
			"preset_id", presetID,
			"voter_id", voterID,
		)
	}
	count, err := r.readCount(ctx, presetID)
	if err != nil {
		return deleted, 0, err
	}
	return deleted, count, nil
}

func (r *Repository) GetPresetProjection(ctx context.Context, presetID string) (ports.PresetProjection, error) {
	var row presetCountModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(presetID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PresetProjection{}, domainerrors.ErrPresetNotFound
		}
		return ports.PresetProjection{}, r.logError("vote_repo_get_preset_failed", err,
			"preset_id", strings.TrimSpace(presetID),
		)
	}
	return ports.PresetProjection{
		PresetID:  row.ID,
		AuthorID:  row.AuthorID,
		Status:    row.Status,
		VoteCount: row.VoteCount,
	}, nil
}

func (r *Repository) ListVotesByPreset(ctx context.Context, presetID string) ([]entities.Vote, error) {
	var rows []voteModel
	err := r.db.WithContext(ctx).
		Where("preset_id = ?", strings.TrimSpace(presetID)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("vote_repo_list_failed", err, "preset_id", strings.TrimSpace(presetID))
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) readCount(ctx context.Context, presetID string) (int, error) {
	var row presetCountModel
	err := r.db.WithContext(ctx).
		Select("vote_count").
		Where("id = ?", presetID).
		First(&row).
		Error
	if err != nil {
		return 0, r.logError("vote_repo_read_count_failed", err, "preset_id", presetID)
	}
	return row.VoteCount, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "community-palettes/vote-ledger",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("vote repository operation failed", fields...)
	return err
}

type voteModel struct {
	PresetID  string    `gorm:"column:preset_id;primaryKey"`
	VoterID   string    `gorm:"column:voter_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string {
	return "votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	row := voteModel{
		PresetID:  strings.TrimSpace(vote.PresetID),
		VoterID:   strings.TrimSpace(vote.VoterID),
		CreatedAt: vote.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		PresetID:  m.PresetID,
		VoterID:   m.VoterID,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type presetCountModel struct {
	ID        string `gorm:"column:id;primaryKey"`
	AuthorID  string `gorm:"column:author_id"`
	Status    string `gorm:"column:status"`
	VoteCount int    `gorm:"column:vote_count"`
}

func (presetCountModel) TableName() string {
	return "presets"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VoteRepository = (*Repository)(nil)
