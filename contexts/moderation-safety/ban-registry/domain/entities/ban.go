package entities

import "time"

const (
	ReasonMinLength = 10
	ReasonMaxLength = 500
)

// Ban is an audit-trail row: closed by setting UnbannedAt, never deleted.
// A subject is identified in one or both namespaces (user snowflake, IP
// address); at most one active ban may exist per identifier per namespace.
type Ban struct {
	BanID            string
	UserID           string
	IPAddress        string
	ModeratorID      string
	Reason           string
	BannedAt         time.Time
	UnbannedAt       *time.Time
	UnbanModeratorID string
}

// Active reports whether the ban is still in force.
func (b Ban) Active() bool {
	return b.UnbannedAt == nil
}
