package entities

import "time"

// Vote is one row in the per-user vote ledger. The (PresetID, VoterID) pair is
// unique; the preset's denormalized vote_count is maintained in the same
// atomic unit as every ledger write.
type Vote struct {
	PresetID  string
	VoterID   string
	CreatedAt time.Time
}
