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

type VoteResponse struct {
	Status string `json:"status"`
	Data   struct {
		PresetID     string `json:"preset_id"`
		AlreadyVoted bool   `json:"already_voted"`
		VoteCount    int    `json:"vote_count"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}
