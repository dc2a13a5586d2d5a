package perspective

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"palette/contexts/moderation-safety/moderation-pipeline/ports"
)

// Client scores text through a Perspective-style comment analysis endpoint.
// Exactly one request per call; the caller owns the degrade-on-error policy.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	logger   *slog.Logger
}

func NewClient(endpoint string, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type analyzeRequest struct {
	Comment struct {
		Text string `json:"text"`
	} `json:"comment"`
	Languages           []string            `json:"languages"`
	RequestedAttributes map[string]struct{} `json:"requestedAttributes"`
}

type analyzeResponse struct {
	AttributeScores map[string]struct {
		SummaryScore struct {
			Value float64 `json:"value"`
		} `json:"summaryScore"`
	} `json:"attributeScores"`
}

func (c *Client) Score(ctx context.Context, text string, attributes []string) (map[string]float64, error) {
	payload := analyzeRequest{Languages: []string{"en"}}
	payload.Comment.Text = text
	payload.RequestedAttributes = make(map[string]struct{}, len(attributes))
	for _, attr := range attributes {
		payload.RequestedAttributes[attr] = struct{}{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode analyze request: %w", err)
	}

	url := c.endpoint
	if c.apiKey != "" {
		url = c.endpoint + "?key=" + c.apiKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call classifier: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var parsed analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode analyze response: %w", err)
	}
	if len(parsed.AttributeScores) == 0 {
		return nil, fmt.Errorf("classifier response carried no attribute scores")
	}
	scores := make(map[string]float64, len(parsed.AttributeScores))
	for attr, entry := range parsed.AttributeScores {
		scores[attr] = entry.SummaryScore.Value
	}
	return scores, nil
}

var _ ports.Classifier = (*Client)(nil)
