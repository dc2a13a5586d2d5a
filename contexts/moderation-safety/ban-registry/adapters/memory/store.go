package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"palette/contexts/moderation-safety/ban-registry/domain/entities"
	domainerrors "palette/contexts/moderation-safety/ban-registry/domain/errors"
	"palette/contexts/moderation-safety/ban-registry/ports"
)

// Store is the in-memory BanRepository used by tests.
type Store struct {
	mu       sync.RWMutex
	bans     map[string]entities.Ban
	sequence uint64
}

func NewStore() *Store {
	return &Store{bans: map[string]entities.Ban{}}
}

func (s *Store) CreateBan(ctx context.Context, ban entities.Ban) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.bans {
		if !existing.Active() {
			continue
		}
		if ban.UserID != "" && existing.UserID == ban.UserID {
			return domainerrors.ErrAlreadyBanned
		}
		if ban.IPAddress != "" && existing.IPAddress == ban.IPAddress {
			return domainerrors.ErrAlreadyBanned
		}
	}
	s.bans[ban.BanID] = ban
	return nil
}

func (s *Store) GetActiveBanByUser(ctx context.Context, userID string) (entities.Ban, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ban := range s.bans {
		if ban.Active() && ban.UserID != "" && strings.EqualFold(ban.UserID, userID) {
			return ban, true, nil
		}
	}
	return entities.Ban{}, false, nil
}

func (s *Store) GetActiveBanByIP(ctx context.Context, ip string) (entities.Ban, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ban := range s.bans {
		if ban.Active() && ban.IPAddress != "" && ban.IPAddress == ip {
			return ban, true, nil
		}
	}
	return entities.Ban{}, false, nil
}

func (s *Store) CloseBan(ctx context.Context, banID string, unbannedAt time.Time, moderatorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ban, ok := s.bans[banID]
	if !ok || !ban.Active() {
		return domainerrors.ErrBanNotFound
	}
	closedAt := unbannedAt.UTC()
	ban.UnbannedAt = &closedAt
	ban.UnbanModeratorID = moderatorID
	s.bans[banID] = ban
	return nil
}

func (s *Store) ListBans(ctx context.Context, activeOnly bool) ([]entities.Ban, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Ban, 0, len(s.bans))
	for _, ban := range s.bans {
		if activeOnly && !ban.Active() {
			continue
		}
		items = append(items, ban)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].BannedAt.After(items[j].BannedAt) })
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	return fmt.Sprintf("ban-%d", atomic.AddUint64(&s.sequence, 1)), nil
}

var _ ports.BanRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
