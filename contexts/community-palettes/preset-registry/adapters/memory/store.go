package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"palette/contexts/community-palettes/preset-registry/domain/entities"
	domainerrors "palette/contexts/community-palettes/preset-registry/domain/errors"
	"palette/contexts/community-palettes/preset-registry/ports"
)

// Store is the in-memory PresetRepository used by tests and local wiring.
type Store struct {
	mu       sync.RWMutex
	presets  map[string]entities.Preset
	sequence uint64
	now      time.Time
	onWrite  func(entities.Preset)
}

func NewStore(seed []entities.Preset) *Store {
	store := &Store{presets: map[string]entities.Preset{}}
	for _, preset := range seed {
		store.presets[preset.PresetID] = clonePreset(preset)
	}
	return store
}

// SetNow pins the clock for deterministic rate-limit windows in tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) SetPreset(preset entities.Preset) {
	s.mu.Lock()
	s.presets[preset.PresetID] = clonePreset(preset)
	hook := s.onWrite
	s.mu.Unlock()
	if hook != nil {
		hook(clonePreset(preset))
	}
}

// MirrorWrites registers a hook invoked after every preset write. Composed
// in-memory wiring uses it to keep the vote ledger's preset projection in
// step, standing in for the presets table the postgres adapters share.
func (s *Store) MirrorWrites(hook func(entities.Preset)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onWrite = hook
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.now.IsZero() {
		return s.now
	}
	return time.Now().UTC()
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	return fmt.Sprintf("preset-%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) CreatePreset(ctx context.Context, preset entities.Preset) error {
	s.mu.Lock()
	s.presets[preset.PresetID] = clonePreset(preset)
	hook := s.onWrite
	s.mu.Unlock()
	if hook != nil {
		hook(clonePreset(preset))
	}
	return nil
}

func (s *Store) GetPreset(ctx context.Context, presetID string) (entities.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	preset, ok := s.presets[strings.TrimSpace(presetID)]
	if !ok {
		return entities.Preset{}, domainerrors.ErrPresetNotFound
	}
	return clonePreset(preset), nil
}

func (s *Store) UpdatePreset(ctx context.Context, preset entities.Preset) error {
	s.mu.Lock()
	if _, ok := s.presets[preset.PresetID]; !ok {
		s.mu.Unlock()
		return domainerrors.ErrPresetNotFound
	}
	s.presets[preset.PresetID] = clonePreset(preset)
	hook := s.onWrite
	s.mu.Unlock()
	if hook != nil {
		hook(clonePreset(preset))
	}
	return nil
}

func (s *Store) FindBySignature(
	ctx context.Context,
	signature string,
	statuses []entities.PresetStatus,
) (entities.Preset, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var oldest *entities.Preset
	for _, preset := range s.presets {
		if preset.DyeSignature != signature || !statusIn(preset.Status, statuses) {
			continue
		}
		candidate := clonePreset(preset)
		if oldest == nil || candidate.CreatedAt.Before(oldest.CreatedAt) {
			oldest = &candidate
		}
	}
	if oldest == nil {
		return entities.Preset{}, false, nil
	}
	return *oldest, true, nil
}

func (s *Store) CountByAuthorBetween(
	ctx context.Context,
	authorID string,
	from time.Time,
	to time.Time,
) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, preset := range s.presets {
		if preset.AuthorID != authorID {
			continue
		}
		if !preset.CreatedAt.Before(from) && preset.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListPresets(ctx context.Context, filter ports.ListFilter) ([]entities.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Preset, 0, len(s.presets))
	for _, preset := range s.presets {
		if filter.Status != "" && preset.Status != filter.Status {
			continue
		}
		if filter.Category != "" && preset.Category != filter.Category {
			continue
		}
		if filter.Curated != nil && preset.Curated != *filter.Curated {
			continue
		}
		if filter.AuthorID != "" && preset.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Search != "" && !matchesSearch(preset, filter.Search) {
			continue
		}
		items = append(items, clonePreset(preset))
	}
	sortPresets(items, filter.Sort)
	if filter.Offset >= len(items) {
		return []entities.Preset{}, nil
	}
	end := len(items)
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return items[filter.Offset:end], nil
}

func (s *Store) ListByAuthorInStatuses(
	ctx context.Context,
	authorID string,
	statuses []entities.PresetStatus,
) ([]entities.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Preset, 0)
	for _, preset := range s.presets {
		if preset.AuthorID == authorID && statusIn(preset.Status, statuses) {
			items = append(items, clonePreset(preset))
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func matchesSearch(preset entities.Preset, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(preset.Name), needle) ||
		strings.Contains(strings.ToLower(preset.Description), needle) {
		return true
	}
	for _, tag := range preset.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func sortPresets(items []entities.Preset, order ports.ListSort) {
	switch order {
	case ports.SortRecent:
		sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	case ports.SortName:
		sort.Slice(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	default:
		sort.Slice(items, func(i, j int) bool {
			if items[i].VoteCount != items[j].VoteCount {
				return items[i].VoteCount > items[j].VoteCount
			}
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}

func statusIn(status entities.PresetStatus, statuses []entities.PresetStatus) bool {
	for _, candidate := range statuses {
		if status == candidate {
			return true
		}
	}
	return false
}

func clonePreset(preset entities.Preset) entities.Preset {
	preset.Dyes = append([]int(nil), preset.Dyes...)
	preset.Tags = append([]string(nil), preset.Tags...)
	if preset.PrevValues != nil {
		snapshot := *preset.PrevValues
		snapshot.Tags = append([]string(nil), snapshot.Tags...)
		snapshot.Dyes = append([]int(nil), snapshot.Dyes...)
		preset.PrevValues = &snapshot
	}
	return preset
}

var _ ports.PresetRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
