package commands

import (
	"context"
	"testing"
	"time"

	"palette/contexts/community-palettes/preset-registry/adapters/memory"
	"palette/contexts/community-palettes/preset-registry/domain/entities"
)

func seedForCascade(store *memory.Store) {
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	statuses := map[string]entities.PresetStatus{
		"p-approved": entities.PresetStatusApproved,
		"p-pending":  entities.PresetStatusPending,
		"p-flagged":  entities.PresetStatusFlagged,
		"p-rejected": entities.PresetStatusRejected,
	}
	for id, status := range statuses {
		store.SetPreset(entities.Preset{
			PresetID:  id,
			AuthorID:  "user-1",
			Status:    status,
			CreatedAt: base,
			UpdatedAt: base,
		})
	}
	store.SetPreset(entities.Preset{
		PresetID:  "p-other",
		AuthorID:  "user-2",
		Status:    entities.PresetStatusApproved,
		CreatedAt: base,
		UpdatedAt: base,
	})
}

func TestBanCascadeHideAndRestore(t *testing.T) {
	store := memory.NewStore(nil)
	seedForCascade(store)
	uc := BanCascadeUseCase{Presets: store, Clock: store}

	hidden, err := uc.HideByAuthor(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("hide failed: %v", err)
	}
	if hidden != 3 {
		t.Fatalf("expected 3 presets hidden, got %d", hidden)
	}
	for _, id := range []string{"p-approved", "p-pending", "p-flagged"} {
		preset, err := store.GetPreset(context.Background(), id)
		if err != nil {
			t.Fatalf("get %s failed: %v", id, err)
		}
		if preset.Status != entities.PresetStatusHidden {
			t.Fatalf("%s should be hidden, got %s", id, preset.Status)
		}
		if preset.PreHideStatus == "" {
			t.Fatalf("%s lost its pre-hide status", id)
		}
	}
	rejected, _ := store.GetPreset(context.Background(), "p-rejected")
	if rejected.Status != entities.PresetStatusRejected {
		t.Fatalf("rejected preset must not be touched, got %s", rejected.Status)
	}
	other, _ := store.GetPreset(context.Background(), "p-other")
	if other.Status != entities.PresetStatusApproved {
		t.Fatalf("other author's preset must not be touched, got %s", other.Status)
	}

	restored, err := uc.RestoreByAuthor(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored != 3 {
		t.Fatalf("expected 3 presets restored, got %d", restored)
	}
	want := map[string]entities.PresetStatus{
		"p-approved": entities.PresetStatusApproved,
		"p-pending":  entities.PresetStatusPending,
		"p-flagged":  entities.PresetStatusFlagged,
	}
	for id, status := range want {
		preset, _ := store.GetPreset(context.Background(), id)
		if preset.Status != status {
			t.Fatalf("%s should return to %s, got %s", id, status, preset.Status)
		}
		if preset.PreHideStatus != "" {
			t.Fatalf("%s should clear its pre-hide status", id)
		}
	}
}

func TestBanCascadeRestoreWithoutPriorStatusFallsBackToApproved(t *testing.T) {
	store := memory.NewStore(nil)
	store.SetPreset(entities.Preset{
		PresetID: "p-legacy",
		AuthorID: "user-1",
		Status:   entities.PresetStatusHidden,
	})
	uc := BanCascadeUseCase{Presets: store, Clock: store}

	restored, err := uc.RestoreByAuthor(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored != 1 {
		t.Fatalf("expected 1 preset restored, got %d", restored)
	}
	preset, _ := store.GetPreset(context.Background(), "p-legacy")
	if preset.Status != entities.PresetStatusApproved {
		t.Fatalf("expected approved fallback, got %s", preset.Status)
	}
}
