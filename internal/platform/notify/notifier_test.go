package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	presetports "palette/contexts/community-palettes/preset-registry/ports"
)

func TestTruncateCutsOnRuneBoundary(t *testing.T) {
	// 60 three-byte runes (180 bytes); a byte cut at 140 would land mid-rune.
	text := strings.Repeat("世", 60)
	got := truncate(text, descriptionPreviewLength)
	want := strings.Repeat("世", 46) + "..."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncated preview is not valid UTF-8: %q", got)
	}
}

func TestTruncateLeavesShortTextAlone(t *testing.T) {
	if got := truncate("short preview", descriptionPreviewLength); got != "short preview" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}

func TestNotifyFlaggedDeliversValidPreview(t *testing.T) {
	received := make(chan alertPayload, 1)
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload alertPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode alert: %v", err)
		}
		received <- payload
		w.WriteHeader(http.StatusNoContent)
	}))
	defer webhook.Close()

	notifier := New(webhook.URL, "", "", nil)
	notifier.NotifyFlagged(context.Background(), presetports.FlagAlert{
		PresetID:    "preset-1",
		PresetName:  "Ocean Calm",
		Description: strings.Repeat("色", 80),
		AuthorID:    "user-1",
		Reason:      "prohibited term",
	})

	select {
	case payload := <-received:
		if !utf8.ValidString(payload.Description) {
			t.Fatalf("alert description is not valid UTF-8: %q", payload.Description)
		}
		if !strings.HasSuffix(payload.Description, "...") {
			t.Fatalf("expected a truncated preview, got %q", payload.Description)
		}
		if strings.ContainsRune(payload.Description, utf8.RuneError) {
			t.Fatalf("alert description carries replacement runes: %q", payload.Description)
		}
	default:
		t.Fatalf("webhook never received the alert")
	}
}
