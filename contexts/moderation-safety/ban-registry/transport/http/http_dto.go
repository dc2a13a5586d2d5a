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

type BanRequest struct {
	UserID    string `json:"user_id,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	Reason    string `json:"reason"`
}

type UnbanRequest struct {
	UserID    string `json:"user_id,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
}

type BanView struct {
	BanID            string `json:"ban_id"`
	UserID           string `json:"user_id,omitempty"`
	IPAddress        string `json:"ip_address,omitempty"`
	ModeratorID      string `json:"moderator_id"`
	Reason           string `json:"reason"`
	Active           bool   `json:"active"`
	BannedAt         string `json:"banned_at"`
	UnbannedAt       string `json:"unbanned_at,omitempty"`
	UnbanModeratorID string `json:"unban_moderator_id,omitempty"`
}

type BanResponse struct {
	Status    string  `json:"status"`
	Data      BanView `json:"data"`
	Timestamp string  `json:"timestamp"`
}

type BanListResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items []BanView `json:"items"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}
