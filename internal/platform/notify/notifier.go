package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	presetports "palette/contexts/community-palettes/preset-registry/ports"

	"github.com/hashicorp/go-retryablehttp"
)

const descriptionPreviewLength = 140

// Notifier dispatches flagged-content alerts to the configured channels
// (webhook post, bot direct message). Dispatch is fire-and-forget: failures
// are logged and never reach the submission's caller.
type Notifier struct {
	webhookURL string
	botURL     string
	botToken   string
	client     *retryablehttp.Client
	logger     *slog.Logger
}

func New(webhookURL string, botURL string, botToken string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 250 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = 5 * time.Second
	client.Logger = nil
	return &Notifier{
		webhookURL: webhookURL,
		botURL:     botURL,
		botToken:   botToken,
		client:     client,
		logger:     logger,
	}
}

type alertPayload struct {
	PresetID    string `json:"preset_id"`
	PresetName  string `json:"preset_name"`
	Description string `json:"description"`
	AuthorID    string `json:"author_id"`
	AuthorName  string `json:"author_name,omitempty"`
	Reason      string `json:"reason"`
	OccurredAt  string `json:"occurred_at"`
}

func (n *Notifier) NotifyFlagged(ctx context.Context, alert presetports.FlagAlert) {
	payload := alertPayload{
		PresetID:    alert.PresetID,
		PresetName:  alert.PresetName,
		Description: truncate(alert.Description, descriptionPreviewLength),
		AuthorID:    alert.AuthorID,
		AuthorName:  alert.AuthorName,
		Reason:      alert.Reason,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		n.logger.Error("flag alert encode failed",
			"event", "notify_flag_encode_failed",
			"module", "internal/platform/notify",
			"layer", "platform",
			"preset_id", alert.PresetID,
			"error", err.Error(),
		)
		return
	}
	if n.webhookURL != "" {
		n.post(ctx, n.webhookURL, "", body, alert.PresetID, "webhook")
	}
	if n.botURL != "" {
		n.post(ctx, n.botURL, n.botToken, body, alert.PresetID, "bot")
	}
}

func (n *Notifier) post(ctx context.Context, url string, token string, body []byte, presetID string, channel string) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		n.logFailure(channel, presetID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bot "+token)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		n.logFailure(channel, presetID, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		n.logger.Warn("flag alert rejected by channel",
			"event", "notify_flag_rejected",
			"module", "internal/platform/notify",
			"layer", "platform",
			"channel", channel,
			"preset_id", presetID,
			"status_code", resp.StatusCode,
		)
	}
}

func (n *Notifier) logFailure(channel string, presetID string, err error) {
	n.logger.Warn("flag alert delivery failed",
		"event", "notify_flag_delivery_failed",
		"module", "internal/platform/notify",
		"layer", "platform",
		"channel", channel,
		"preset_id", presetID,
		"error", err.Error(),
	)
}

// truncate cuts on a rune boundary so the preview stays valid UTF-8.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

var _ presetports.FlagNotifier = (*Notifier)(nil)
