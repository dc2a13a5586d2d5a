package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"palette/contexts/community-palettes/preset-registry/adapters/memory"
	"palette/contexts/community-palettes/preset-registry/domain/entities"
	domainerrors "palette/contexts/community-palettes/preset-registry/domain/errors"
	"palette/contexts/community-palettes/preset-registry/ports"
)

type stubModeration struct {
	verdict ports.ModerationVerdict
	calls   int
}

func (s *stubModeration) Evaluate(_ context.Context, _ string, _ string) ports.ModerationVerdict {
	s.calls++
	return s.verdict
}

type stubVotes struct {
	outcomes map[string]int
	replays  map[string]bool
}

func newStubVotes() *stubVotes {
	return &stubVotes{outcomes: map[string]int{}, replays: map[string]bool{}}
}

func (s *stubVotes) CastVote(_ context.Context, presetID string, voterID string) (ports.VoteOutcome, error) {
	key := presetID + "|" + voterID
	if s.replays[key] {
		return ports.VoteOutcome{AlreadyVoted: true, NewCount: s.outcomes[presetID]}, nil
	}
	s.replays[key] = true
	s.outcomes[presetID]++
	return ports.VoteOutcome{NewCount: s.outcomes[presetID]}, nil
}

type stubNotifier struct {
	alerts []ports.FlagAlert
}

func (s *stubNotifier) NotifyFlagged(_ context.Context, alert ports.FlagAlert) {
	s.alerts = append(s.alerts, alert)
}

func passVerdict() ports.ModerationVerdict {
	return ports.ModerationVerdict{Passed: true, Method: "all"}
}

func failVerdict(reason string) ports.ModerationVerdict {
	return ports.ModerationVerdict{Passed: false, Method: "local", FlaggedField: "name", Reason: reason}
}

func newSubmitUseCase(store *memory.Store, moderation ports.ModerationClient, votes ports.VoteCaster, notifier ports.FlagNotifier) SubmitPresetUseCase {
	return SubmitPresetUseCase{
		Presets:    store,
		Moderation: moderation,
		Votes:      votes,
		Notifier:   notifier,
		Limiter:    SubmissionLimiter{Presets: store, Clock: store, Limit: 10},
		Clock:      store,
		IDGen:      store,
	}
}

func validFields() PresetFields {
	return PresetFields{
		Name:        "Desert Dusk",
		Description: "Warm sands fading into violet twilight.",
		Category:    "warm",
		Dyes:        []int{12, 88, 301},
		Tags:        []string{"sunset"},
	}
}

func TestSubmitApprovedWhenModerationPasses(t *testing.T) {
	store := memory.NewStore(nil)
	votes := newStubVotes()
	uc := newSubmitUseCase(store, &stubModeration{verdict: passVerdict()}, votes, &stubNotifier{})

	result, err := uc.Execute(context.Background(), SubmitPresetCommand{
		AuthorID:   "user-1",
		AuthorName: "Aster",
		Fields:     validFields(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Preset.Status != entities.PresetStatusApproved {
		t.Fatalf("expected approved status, got %s", result.Preset.Status)
	}
	if result.Preset.DyeSignature != "12-88-301" {
		t.Fatalf("unexpected signature %q", result.Preset.DyeSignature)
	}
	if result.Preset.VoteCount != 1 {
		t.Fatalf("expected author self-vote count 1, got %d", result.Preset.VoteCount)
	}
	if result.Duplicate || result.Flagged {
		t.Fatalf("unexpected duplicate/flagged result: %+v", result)
	}
}

func TestSubmitFlaggedGoesPendingAndNotifies(t *testing.T) {
	store := memory.NewStore(nil)
	notifier := &stubNotifier{}
	uc := newSubmitUseCase(store, &stubModeration{verdict: failVerdict("prohibited content")}, newStubVotes(), notifier)

	result, err := uc.Execute(context.Background(), SubmitPresetCommand{AuthorID: "user-1", Fields: validFields()})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Preset.Status != entities.PresetStatusPending {
		t.Fatalf("expected pending status, got %s", result.Preset.Status)
	}
	if !result.Flagged || result.FlagReason != "prohibited content" {
		t.Fatalf("expected flagged result with reason, got %+v", result)
	}
	if len(notifier.alerts) != 1 {
		t.Fatalf("expected one flag alert, got %d", len(notifier.alerts))
	}
	if notifier.alerts[0].PresetID != result.Preset.PresetID {
		t.Fatalf("alert references wrong preset: %s", notifier.alerts[0].PresetID)
	}
}

func TestSubmitDuplicateCollapsesIntoVote(t *testing.T) {
	store := memory.NewStore(nil)
	moderation := &stubModeration{verdict: passVerdict()}
	votes := newStubVotes()
	uc := newSubmitUseCase(store, moderation, votes, &stubNotifier{})

	first, err := uc.Execute(context.Background(), SubmitPresetCommand{AuthorID: "user-1", Fields: validFields()})
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	// Same dyes in a different order from a different user.
	fields := validFields()
	fields.Name = "Twilight Redux"
	fields.Dyes = []int{301, 12, 88}
	second, err := uc.Execute(context.Background(), SubmitPresetCommand{AuthorID: "user-2", Fields: fields})
	if err != nil {
		t.Fatalf("duplicate submit failed: %v", err)
	}
	if !second.Duplicate {
		t.Fatalf("expected duplicate collapse")
	}
	if second.Preset.PresetID != first.Preset.PresetID {
		t.Fatalf("duplicate should reference existing preset %s, got %s", first.Preset.PresetID, second.Preset.PresetID)
	}
	if !second.VoteAdded || second.AlreadyVoted {
		t.Fatalf("expected a fresh vote on the original, got %+v", second)
	}
	if second.Preset.VoteCount != 2 {
		t.Fatalf("expected vote count 2 after collapse, got %d", second.Preset.VoteCount)
	}
	if moderation.calls != 1 {
		t.Fatalf("moderation should not run on the duplicate path, calls=%d", moderation.calls)
	}
}

func TestSubmitDuplicateReplayReportsAlreadyVoted(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newSubmitUseCase(store, &stubModeration{verdict: passVerdict()}, newStubVotes(), &stubNotifier{})

	if _, err := uc.Execute(context.Background(), SubmitPresetCommand{AuthorID: "user-1", Fields: validFields()}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	// The author resubmits their own combination; the self-vote already exists.
	replay, err := uc.Execute(context.Background(), SubmitPresetCommand{AuthorID: "user-1", Fields: validFields()})
	if err != nil {
		t.Fatalf("replay submit failed: %v", err)
	}
	if !replay.Duplicate || !replay.AlreadyVoted || replay.VoteAdded {
		t.Fatalf("expected already-voted duplicate, got %+v", replay)
	}
}

func TestSubmitDailyRateLimit(t *testing.T) {
	store := memory.NewStore(nil)
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	store.SetNow(now)
	dayStart := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		store.SetPreset(entities.Preset{
			PresetID:     fmt.Sprintf("seed-%d", i),
			AuthorID:     "user-1",
			Status:       entities.PresetStatusApproved,
			DyeSignature: fmt.Sprintf("%d-%d", 1000+i, 2000+i),
			CreatedAt:    dayStart.Add(time.Duration(i) * time.Minute),
		})
	}
	uc := newSubmitUseCase(store, &stubModeration{verdict: passVerdict()}, newStubVotes(), &stubNotifier{})

	_, err := uc.Execute(context.Background(), SubmitPresetCommand{AuthorID: "user-1", Fields: validFields()})
	if err == nil {
		t.Fatalf("expected rate limit error")
	}
	var rateLimit *domainerrors.RateLimitError
	if !errors.As(err, &rateLimit) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if !errors.Is(err, domainerrors.ErrRateLimited) {
		t.Fatalf("RateLimitError should unwrap to ErrRateLimited")
	}
	if !rateLimit.ResetAt.Equal(dayStart.Add(24 * time.Hour)) {
		t.Fatalf("expected reset at next UTC midnight, got %v", rateLimit.ResetAt)
	}

	// A different author is unaffected.
	if _, err := uc.Execute(context.Background(), SubmitPresetCommand{AuthorID: "user-2", Fields: validFields()}); err != nil {
		t.Fatalf("other author should not be limited: %v", err)
	}
}

func TestSubmissionLimiterRemaining(t *testing.T) {
	store := memory.NewStore(nil)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	store.SetNow(now)
	for i := 0; i < 9; i++ {
		store.SetPreset(entities.Preset{
			PresetID:  fmt.Sprintf("seed-%d", i),
			AuthorID:  "user-1",
			Status:    entities.PresetStatusApproved,
			CreatedAt: now.Add(-time.Duration(i+1) * time.Minute),
		})
	}
	// Yesterday's submission must not count against today's window.
	store.SetPreset(entities.Preset{
		PresetID:  "seed-old",
		AuthorID:  "user-1",
		Status:    entities.PresetStatusApproved,
		CreatedAt: now.Add(-24 * time.Hour),
	})

	limiter := SubmissionLimiter{Presets: store, Clock: store, Limit: 10}
	decision, err := limiter.Check(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("limiter check failed: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected submission allowed at 9/10")
	}
	if decision.Remaining != 1 {
		t.Fatalf("expected remaining 1, got %d", decision.Remaining)
	}
}

func TestSubmitRejectsInvalidFields(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newSubmitUseCase(store, &stubModeration{verdict: passVerdict()}, newStubVotes(), &stubNotifier{})

	bad := validFields()
	bad.Dyes = []int{7}
	if _, err := uc.Execute(context.Background(), SubmitPresetCommand{AuthorID: "user-1", Fields: bad}); !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error for short dye list, got %v", err)
	}

	bad = validFields()
	bad.Category = "metallic"
	if _, err := uc.Execute(context.Background(), SubmitPresetCommand{AuthorID: "user-1", Fields: bad}); !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error for unknown category, got %v", err)
	}

	if _, err := uc.Execute(context.Background(), SubmitPresetCommand{AuthorID: "  ", Fields: validFields()}); !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error for missing author, got %v", err)
	}
}
