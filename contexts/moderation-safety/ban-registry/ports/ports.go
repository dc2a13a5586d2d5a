package ports

import (
	"context"
	"time"

	"palette/contexts/moderation-safety/ban-registry/domain/entities"
)

type BanRepository interface {
	// CreateBan persists a new active ban. The store's partial uniqueness
	// constraint (identifier, unbanned_at IS NULL) turns a racing duplicate
	// into ErrAlreadyBanned.
	CreateBan(ctx context.Context, ban entities.Ban) error
	GetActiveBanByUser(ctx context.Context, userID string) (entities.Ban, bool, error)
	GetActiveBanByIP(ctx context.Context, ip string) (entities.Ban, bool, error)
	CloseBan(ctx context.Context, banID string, unbannedAt time.Time, moderatorID string) error
	ListBans(ctx context.Context, activeOnly bool) ([]entities.Ban, error)
}

// PresetSuppressor cascades ban-driven visibility changes onto preset rows.
// Implemented by the preset registry; the ban registry never mutates preset
// rows directly.
type PresetSuppressor interface {
	HideByAuthor(ctx context.Context, authorID string) (int, error)
	RestoreByAuthor(ctx context.Context, authorID string) (int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
