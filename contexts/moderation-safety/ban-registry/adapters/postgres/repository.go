package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"palette/contexts/moderation-safety/ban-registry/domain/entities"
	domainerrors "palette/contexts/moderation-safety/ban-registry/domain/errors"
	"palette/contexts/moderation-safety/ban-registry/ports"

	"github.com/jackc/pgx/v5/pgconn"
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

// CreateBan leans on partial unique indexes over (user_id) and (ip_address)
// WHERE unbanned_at IS NULL, so a racing duplicate ban surfaces as
// ErrAlreadyBanned instead of a second active row.
func (r *Repository) CreateBan(ctx context.Context, ban entities.Ban) error {
	row := banModelFromEntity(ban)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyBanned
		}
		return r.logError("ban_repo_create_failed", err, "ban_id", row.ID, "user_id", row.UserID)
	}
	return nil
}

func (r *Repository) GetActiveBanByUser(ctx context.Context, userID string) (entities.Ban, bool, error) {
	return r.getActive(ctx, "user_id = ?", strings.TrimSpace(userID))
}

func (r *Repository) GetActiveBanByIP(ctx context.Context, ip string) (entities.Ban, bool, error) {
	return r.getActive(ctx, "ip_address = ?", strings.TrimSpace(ip))
}

func (r *Repository) getActive(ctx context.Context, condition string, value string) (entities.Ban, bool, error) {
	var row banModel
	err := r.db.WithContext(ctx).
		Where(condition, value).
		Where("unbanned_at IS NULL").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Ban{}, false, nil
		}
		return entities.Ban{}, false, r.logError("ban_repo_get_active_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CloseBan(ctx context.Context, banID string, unbannedAt time.Time, moderatorID string) error {
	result := r.db.WithContext(ctx).
		Model(&banModel{}).
		Where("id = ?", strings.TrimSpace(banID)).
		Where("unbanned_at IS NULL").
		Updates(map[string]any{
			"unbanned_at":        unbannedAt.UTC(),
			"unban_moderator_id": strings.TrimSpace(moderatorID),
		})
	if result.Error != nil {
		return r.logError("ban_repo_close_failed", result.Error, "ban_id", strings.TrimSpace(banID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrBanNotFound
	}
	return nil
}

func (r *Repository) ListBans(ctx context.Context, activeOnly bool) ([]entities.Ban, error) {
	tx := r.db.WithContext(ctx).Model(&banModel{})
	if activeOnly {
		tx = tx.Where("unbanned_at IS NULL")
	}
	var rows []banModel
	if err := tx.Order("banned_at DESC").Find(&rows).Error; err != nil {
		return nil, r.logError("ban_repo_list_failed", err)
	}
	items := make([]entities.Ban, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "moderation-safety/ban-registry",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("ban repository operation failed", fields...)
	return err
}

type banModel struct {
	ID               string     `gorm:"column:id;primaryKey"`
	UserID           string     `gorm:"column:user_id"`
	IPAddress        string     `gorm:"column:ip_address"`
	ModeratorID      string     `gorm:"column:moderator_id"`
	Reason           string     `gorm:"column:reason"`
	BannedAt         time.Time  `gorm:"column:banned_at"`
	UnbannedAt       *time.Time `gorm:"column:unbanned_at"`
	UnbanModeratorID string     `gorm:"column:unban_moderator_id"`
}

func (banModel) TableName() string {
	return "bans"
}

func banModelFromEntity(ban entities.Ban) banModel {
	row := banModel{
		ID:               strings.TrimSpace(ban.BanID),
		UserID:           strings.TrimSpace(ban.UserID),
		IPAddress:        strings.TrimSpace(ban.IPAddress),
		ModeratorID:      strings.TrimSpace(ban.ModeratorID),
		Reason:           strings.TrimSpace(ban.Reason),
		BannedAt:         ban.BannedAt.UTC(),
		UnbanModeratorID: strings.TrimSpace(ban.UnbanModeratorID),
	}
	if ban.UnbannedAt != nil {
		unbanned := ban.UnbannedAt.UTC()
		row.UnbannedAt = &unbanned
	}
	if row.BannedAt.IsZero() {
		row.BannedAt = time.Now().UTC()
	}
	return row
}

func (m banModel) toEntity() entities.Ban {
	ban := entities.Ban{
		BanID:            m.ID,
		UserID:           m.UserID,
		IPAddress:        m.IPAddress,
		ModeratorID:      m.ModeratorID,
		Reason:           m.Reason,
		BannedAt:         m.BannedAt.UTC(),
		UnbanModeratorID: m.UnbanModeratorID,
	}
	if m.UnbannedAt != nil {
		unbanned := m.UnbannedAt.UTC()
		ban.UnbannedAt = &unbanned
	}
	return ban
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.BanRepository = (*Repository)(nil)
