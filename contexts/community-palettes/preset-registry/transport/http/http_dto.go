package http

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type SubmitPresetRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Dyes        []int    `json:"dyes"`
	Tags        []string `json:"tags,omitempty"`
}

type EditPresetRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Dyes        []int    `json:"dyes"`
	Tags        []string `json:"tags,omitempty"`
}

type ReviewPresetRequest struct {
	Action string `json:"action"`
}

type CuratePresetRequest struct {
	Curated bool `json:"curated"`
}

type PresetView struct {
	PresetID     string   `json:"preset_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Dyes         []int    `json:"dyes"`
	Tags         []string `json:"tags"`
	AuthorID     string   `json:"author_id"`
	AuthorName   string   `json:"author_name,omitempty"`
	VoteCount    int      `json:"vote_count"`
	Status       string   `json:"status"`
	Curated      bool     `json:"curated"`
	DyeSignature string   `json:"dye_signature"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type SubmitPresetData struct {
	Preset       PresetView `json:"preset"`
	Duplicate    bool       `json:"duplicate"`
	VoteAdded    bool       `json:"vote_added"`
	AlreadyVoted bool       `json:"already_voted"`
	Flagged      bool       `json:"flagged"`
	FlagReason   string     `json:"flag_reason,omitempty"`
}

type SubmitPresetResponse struct {
	Status    string           `json:"status"`
	Data      SubmitPresetData `json:"data"`
	Timestamp string           `json:"timestamp"`
}

type PresetResponse struct {
	Status    string     `json:"status"`
	Data      PresetView `json:"data"`
	Timestamp string     `json:"timestamp"`
}

type PresetListResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items []PresetView `json:"items"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type RateLimitedResponse struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Remaining int       `json:"remaining"`
	ResetAt   string    `json:"reset_at"`
	Timestamp string    `json:"timestamp"`
}
