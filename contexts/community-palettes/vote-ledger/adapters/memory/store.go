package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"palette/contexts/community-palettes/vote-ledger/domain/entities"
	domainerrors "palette/contexts/community-palettes/vote-ledger/domain/errors"
	"palette/contexts/community-palettes/vote-ledger/ports"
)

// Store is the in-memory VoteRepository used by tests. The single mutex makes
// insert+increment and delete+decrement atomic, matching the transactional
// contract of the postgres adapter.
type Store struct {
	mu      sync.Mutex
	votes   map[string]entities.Vote
	presets map[string]ports.PresetProjection
}

func NewStore() *Store {
	return &Store{
		votes:   map[string]entities.Vote{},
		presets: map[string]ports.PresetProjection{},
	}
}

func (s *Store) SetPreset(projection ports.PresetProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets[projection.PresetID] = projection
}

func (s *Store) PresetCount(presetID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presets[presetID].VoteCount
}

func (s *Store) VoteRows(presetID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := 0
	for _, vote := range s.votes {
		if vote.PresetID == presetID {
			rows++
		}
	}
	return rows
}

func (s *Store) InsertVote(ctx context.Context, vote entities.Vote) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	projection, ok := s.presets[vote.PresetID]
	if !ok {
		return false, 0, domainerrors.ErrPresetNotFound
	}
	key := voteKey(vote.PresetID, vote.VoterID)
	if _, exists := s.votes[key]; exists {
		return false, projection.VoteCount, nil
	}
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now().UTC()
	}
	s.votes[key] = vote
	projection.VoteCount++
	s.presets[vote.PresetID] = projection
	return true, projection.VoteCount, nil
}

func (s *Store) DeleteVote(ctx context.Context, presetID string, voterID string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	projection, ok := s.presets[presetID]
	if !ok {
		return false, 0, domainerrors.ErrPresetNotFound
	}
	key := voteKey(presetID, voterID)
	if _, exists := s.votes[key]; !exists {
		return false, projection.VoteCount, nil
	}
	delete(s.votes, key)
	if projection.VoteCount > 0 {
		projection.VoteCount--
	}
	s.presets[presetID] = projection
	return true, projection.VoteCount, nil
}

func (s *Store) GetPresetProjection(ctx context.Context, presetID string) (ports.PresetProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	projection, ok := s.presets[strings.TrimSpace(presetID)]
	if !ok {
		return ports.PresetProjection{}, domainerrors.ErrPresetNotFound
	}
	return projection, nil
}

func (s *Store) ListVotesByPreset(ctx context.Context, presetID string) ([]entities.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.PresetID == presetID {
			items = append(items, vote)
		}
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func voteKey(presetID string, voterID string) string {
	return presetID + "|" + voterID
}

var _ ports.VoteRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
