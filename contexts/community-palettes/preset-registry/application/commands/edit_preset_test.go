package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"palette/contexts/community-palettes/preset-registry/adapters/memory"
	"palette/contexts/community-palettes/preset-registry/domain/entities"
	domainerrors "palette/contexts/community-palettes/preset-registry/domain/errors"
)

func seedApprovedPreset(store *memory.Store) entities.Preset {
	preset := entities.Preset{
		PresetID:     "preset-approved",
		Name:         "Ocean Calm",
		Description:  "Layered blues for a quiet coastal look.",
		Category:     "cool",
		Dyes:         []int{4, 19, 72},
		Tags:         []string{"sea"},
		AuthorID:     "user-1",
		AuthorName:   "Aster",
		Status:       entities.PresetStatusApproved,
		DyeSignature: entities.Signature([]int{4, 19, 72}),
		CreatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	store.SetPreset(preset)
	return preset
}

func TestEditAppliesFieldsAndRecomputesSignature(t *testing.T) {
	store := memory.NewStore(nil)
	seedApprovedPreset(store)
	uc := EditPresetUseCase{
		Presets:    store,
		Moderation: &stubModeration{verdict: passVerdict()},
		Clock:      store,
	}

	fields := validFields()
	fields.Dyes = []int{500, 3}
	result, err := uc.Execute(context.Background(), EditPresetCommand{
		PresetID: "preset-approved",
		EditorID: "user-1",
		Fields:   fields,
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if result.Reflagged {
		t.Fatalf("passing edit should not reflag")
	}
	if result.Preset.Status != entities.PresetStatusApproved {
		t.Fatalf("expected preset to stay approved, got %s", result.Preset.Status)
	}
	if result.Preset.DyeSignature != "3-500" {
		t.Fatalf("expected recomputed signature 3-500, got %q", result.Preset.DyeSignature)
	}
	if result.Preset.PrevValues != nil {
		t.Fatalf("passing edit must not leave a snapshot")
	}
}

func TestEditByNonAuthorDenied(t *testing.T) {
	store := memory.NewStore(nil)
	seedApprovedPreset(store)
	uc := EditPresetUseCase{Presets: store, Moderation: &stubModeration{verdict: passVerdict()}, Clock: store}

	_, err := uc.Execute(context.Background(), EditPresetCommand{
		PresetID: "preset-approved",
		EditorID: "user-2",
		Fields:   validFields(),
	})
	if !errors.Is(err, domainerrors.ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}
}

func TestEditRejectedPresetNotEditable(t *testing.T) {
	store := memory.NewStore(nil)
	preset := seedApprovedPreset(store)
	preset.Status = entities.PresetStatusRejected
	store.SetPreset(preset)
	uc := EditPresetUseCase{Presets: store, Moderation: &stubModeration{verdict: passVerdict()}, Clock: store}

	_, err := uc.Execute(context.Background(), EditPresetCommand{
		PresetID: preset.PresetID,
		EditorID: "user-1",
		Fields:   validFields(),
	})
	if !errors.Is(err, domainerrors.ErrEditNotEditable) {
		t.Fatalf("expected ErrEditNotEditable, got %v", err)
	}
}

func TestEditFailingModerationSnapshotsAndFlags(t *testing.T) {
	store := memory.NewStore(nil)
	original := seedApprovedPreset(store)
	notifier := &stubNotifier{}
	uc := EditPresetUseCase{
		Presets:    store,
		Moderation: &stubModeration{verdict: failVerdict("prohibited content")},
		Notifier:   notifier,
		Clock:      store,
	}

	result, err := uc.Execute(context.Background(), EditPresetCommand{
		PresetID: original.PresetID,
		EditorID: "user-1",
		Fields:   validFields(),
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if !result.Reflagged || result.Preset.Status != entities.PresetStatusFlagged {
		t.Fatalf("expected approved preset to be re-flagged, got %+v", result)
	}
	if result.Preset.PrevValues == nil {
		t.Fatalf("expected pre-edit snapshot")
	}
	if result.Preset.PrevValues.Name != original.Name {
		t.Fatalf("snapshot holds %q, want pre-edit name %q", result.Preset.PrevValues.Name, original.Name)
	}
	if len(notifier.alerts) != 1 {
		t.Fatalf("expected flag alert on reflag, got %d", len(notifier.alerts))
	}
}

func TestEditFailingModerationOnPendingStaysPending(t *testing.T) {
	store := memory.NewStore(nil)
	preset := seedApprovedPreset(store)
	preset.Status = entities.PresetStatusPending
	store.SetPreset(preset)
	uc := EditPresetUseCase{
		Presets:    store,
		Moderation: &stubModeration{verdict: failVerdict("prohibited content")},
		Clock:      store,
	}

	result, err := uc.Execute(context.Background(), EditPresetCommand{
		PresetID: preset.PresetID,
		EditorID: "user-1",
		Fields:   validFields(),
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if result.Reflagged || result.Preset.Status != entities.PresetStatusPending {
		t.Fatalf("pending preset failing again should stay pending, got %+v", result)
	}
	if result.Preset.PrevValues != nil {
		t.Fatalf("pending path must not snapshot")
	}
}

func TestRevertRestoresSnapshot(t *testing.T) {
	store := memory.NewStore(nil)
	original := seedApprovedPreset(store)
	edit := EditPresetUseCase{
		Presets:    store,
		Moderation: &stubModeration{verdict: failVerdict("prohibited content")},
		Clock:      store,
	}
	if _, err := edit.Execute(context.Background(), EditPresetCommand{
		PresetID: original.PresetID,
		EditorID: "user-1",
		Fields:   validFields(),
	}); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	revert := RevertPresetUseCase{Presets: store, Clock: store}
	restored, err := revert.Execute(context.Background(), original.PresetID, "mod-1")
	if err != nil {
		t.Fatalf("revert failed: %v", err)
	}
	if restored.Status != entities.PresetStatusApproved {
		t.Fatalf("expected approved after revert, got %s", restored.Status)
	}
	if restored.Name != original.Name || restored.Description != original.Description {
		t.Fatalf("revert did not restore fields: %+v", restored)
	}
	if restored.DyeSignature != original.DyeSignature {
		t.Fatalf("revert did not restore signature: %q", restored.DyeSignature)
	}
	if restored.PrevValues != nil {
		t.Fatalf("snapshot must be cleared after revert")
	}

	// A second revert has nothing to restore.
	if _, err := revert.Execute(context.Background(), original.PresetID, "mod-1"); !errors.Is(err, domainerrors.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot on second revert, got %v", err)
	}
}

func TestReviewTransitions(t *testing.T) {
	store := memory.NewStore(nil)
	preset := seedApprovedPreset(store)
	preset.PresetID = "preset-pending"
	preset.Status = entities.PresetStatusPending
	store.SetPreset(preset)
	uc := ReviewPresetUseCase{Presets: store, Clock: store}

	approved, err := uc.Execute(context.Background(), ReviewPresetCommand{
		PresetID:    "preset-pending",
		ModeratorID: "mod-1",
		Action:      ReviewActionApprove,
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != entities.PresetStatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}

	// Rejected is terminal.
	flagged, err := uc.Execute(context.Background(), ReviewPresetCommand{
		PresetID:    "preset-pending",
		ModeratorID: "mod-1",
		Action:      ReviewActionFlag,
	})
	if err != nil {
		t.Fatalf("flag failed: %v", err)
	}
	if flagged.PrevValues == nil {
		t.Fatalf("flagging an approved preset must snapshot it")
	}
	if _, err := uc.Execute(context.Background(), ReviewPresetCommand{
		PresetID:    "preset-pending",
		ModeratorID: "mod-1",
		Action:      ReviewActionReject,
	}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := uc.Execute(context.Background(), ReviewPresetCommand{
		PresetID:    "preset-pending",
		ModeratorID: "mod-1",
		Action:      ReviewActionApprove,
	}); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition out of rejected, got %v", err)
	}

	if _, err := uc.Execute(context.Background(), ReviewPresetCommand{
		PresetID:    "preset-pending",
		ModeratorID: "mod-1",
		Action:      ReviewAction("promote"),
	}); !errors.Is(err, domainerrors.ErrInvalidReviewAction) {
		t.Fatalf("expected ErrInvalidReviewAction, got %v", err)
	}
}
