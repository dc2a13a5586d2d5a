package commands

import (
	"context"
	"errors"
	"sync"
	"testing"

	"palette/contexts/community-palettes/vote-ledger/adapters/memory"
	domainerrors "palette/contexts/community-palettes/vote-ledger/domain/errors"
	"palette/contexts/community-palettes/vote-ledger/ports"
)

func newVoteUseCase(store *memory.Store) VoteUseCase {
	return VoteUseCase{Votes: store, Clock: store}
}

func TestCastIsIdempotentPerUser(t *testing.T) {
	store := memory.NewStore()
	store.SetPreset(ports.PresetProjection{PresetID: "preset-1", AuthorID: "user-9", Status: "approved"})
	uc := newVoteUseCase(store)

	first, err := uc.Cast(context.Background(), "preset-1", "user-1")
	if err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if first.AlreadyVoted || first.NewCount != 1 {
		t.Fatalf("expected fresh vote with count 1, got %+v", first)
	}

	second, err := uc.Cast(context.Background(), "preset-1", "user-1")
	if err != nil {
		t.Fatalf("replay cast failed: %v", err)
	}
	if !second.AlreadyVoted || second.NewCount != 1 {
		t.Fatalf("replay must be a no-op with unchanged count, got %+v", second)
	}
	if rows := store.VoteRows("preset-1"); rows != 1 {
		t.Fatalf("expected one ledger row, got %d", rows)
	}
}

func TestCastConcurrentDuplicatesProduceOneVote(t *testing.T) {
	store := memory.NewStore()
	store.SetPreset(ports.PresetProjection{PresetID: "preset-1", Status: "approved"})
	uc := newVoteUseCase(store)

	const attempts = 32
	var wg sync.WaitGroup
	fresh := make(chan struct{}, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := uc.Cast(context.Background(), "preset-1", "user-1")
			if err != nil {
				t.Errorf("concurrent cast failed: %v", err)
				return
			}
			if !result.AlreadyVoted {
				fresh <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(fresh)
	if got := len(fresh); got != 1 {
		t.Fatalf("expected exactly one fresh vote, got %d", got)
	}
	if count := store.PresetCount("preset-1"); count != 1 {
		t.Fatalf("expected vote count 1, got %d", count)
	}
}

func TestCastRejectsNonVotableStatuses(t *testing.T) {
	store := memory.NewStore()
	store.SetPreset(ports.PresetProjection{PresetID: "preset-rejected", Status: "rejected"})
	store.SetPreset(ports.PresetProjection{PresetID: "preset-hidden", Status: "hidden"})
	store.SetPreset(ports.PresetProjection{PresetID: "preset-pending", Status: "pending"})
	uc := newVoteUseCase(store)

	for _, presetID := range []string{"preset-rejected", "preset-hidden"} {
		if _, err := uc.Cast(context.Background(), presetID, "user-1"); !errors.Is(err, domainerrors.ErrPresetNotVotable) {
			t.Fatalf("expected ErrPresetNotVotable for %s, got %v", presetID, err)
		}
	}
	// Pending presets accept votes.
	if _, err := uc.Cast(context.Background(), "preset-pending", "user-1"); err != nil {
		t.Fatalf("pending preset should accept votes: %v", err)
	}
}

func TestCastUnknownPreset(t *testing.T) {
	uc := newVoteUseCase(memory.NewStore())
	if _, err := uc.Cast(context.Background(), "missing", "user-1"); !errors.Is(err, domainerrors.ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound, got %v", err)
	}
	if _, err := uc.Cast(context.Background(), "", "user-1"); !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
		t.Fatalf("expected ErrInvalidVoteInput, got %v", err)
	}
}

func TestRetract(t *testing.T) {
	store := memory.NewStore()
	store.SetPreset(ports.PresetProjection{PresetID: "preset-1", Status: "approved"})
	uc := newVoteUseCase(store)

	if _, err := uc.Cast(context.Background(), "preset-1", "user-1"); err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	retracted, err := uc.Retract(context.Background(), "preset-1", "user-1")
	if err != nil {
		t.Fatalf("retract failed: %v", err)
	}
	if !retracted.AlreadyVoted || retracted.NewCount != 0 {
		t.Fatalf("expected removal with count 0, got %+v", retracted)
	}

	// Retracting an absent vote is a no-op, not an error, and the count never
	// goes below zero.
	again, err := uc.Retract(context.Background(), "preset-1", "user-1")
	if err != nil {
		t.Fatalf("second retract failed: %v", err)
	}
	if again.AlreadyVoted || again.NewCount != 0 {
		t.Fatalf("expected no-op retract at zero, got %+v", again)
	}
}
