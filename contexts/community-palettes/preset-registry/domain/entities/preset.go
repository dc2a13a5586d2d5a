package entities

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

type PresetStatus string

const (
	PresetStatusPending  PresetStatus = "pending"
	PresetStatusApproved PresetStatus = "approved"
	PresetStatusRejected PresetStatus = "rejected"
	PresetStatusFlagged  PresetStatus = "flagged"
	PresetStatusHidden   PresetStatus = "hidden"
)

const (
	NameMinLength        = 2
	NameMaxLength        = 50
	DescriptionMinLength = 10
	DescriptionMaxLength = 200
	DyesMinCount         = 2
	DyesMaxCount         = 5
	TagsMaxCount         = 10
	TagMaxLength         = 30
)

// Categories is the closed set of preset categories accepted on submission.
var Categories = []string{"warm", "cool", "neutral", "vibrant", "pastel", "seasonal"}

type Preset struct {
	PresetID      string
	Name          string
	Description   string
	Category      string
	Dyes          []int
	Tags          []string
	AuthorID      string
	AuthorName    string
	VoteCount     int
	Status        PresetStatus
	Curated       bool
	DyeSignature  string
	PrevValues    *PresetSnapshot
	PreHideStatus PresetStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PresetSnapshot captures the editable fields of an approved preset at the
// moment an edit re-flags it, so a moderator revert can restore them.
type PresetSnapshot struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Dyes        []int    `json:"dyes"`
}

// Signature derives the canonical duplicate-lookup key for a dye combination.
// The dye order carried by a preset is display-only; signatures are computed
// over the sorted set so permutations of the same dyes collide.
func Signature(dyes []int) string {
	sorted := append([]int(nil), dyes...)
	sort.Ints(sorted)
	parts := make([]string, 0, len(sorted))
	for _, dye := range sorted {
		parts = append(parts, strconv.Itoa(dye))
	}
	return strings.Join(parts, "-")
}

func (p Preset) Snapshot() *PresetSnapshot {
	return &PresetSnapshot{
		Name:        p.Name,
		Description: p.Description,
		Tags:        append([]string(nil), p.Tags...),
		Dyes:        append([]int(nil), p.Dyes...),
	}
}

// DuplicateTargetStatuses lists the statuses eligible as duplicate-lookup
// targets. Rejected, hidden, and flagged presets are excluded so the same dye
// combination can be resubmitted.
func DuplicateTargetStatuses() []PresetStatus {
	return []PresetStatus{PresetStatusApproved, PresetStatusPending}
}

// VotableStatuses lists the statuses a vote may target.
func VotableStatuses() []PresetStatus {
	return []PresetStatus{PresetStatusApproved, PresetStatusPending}
}

var statusTransitions = map[PresetStatus][]PresetStatus{
	PresetStatusPending:  {PresetStatusApproved, PresetStatusRejected, PresetStatusFlagged},
	PresetStatusFlagged:  {PresetStatusApproved, PresetStatusRejected},
	PresetStatusApproved: {PresetStatusFlagged, PresetStatusHidden},
	PresetStatusRejected: {},
	PresetStatusHidden:   {PresetStatusApproved},
}

// CanTransition reports whether the status state machine permits from -> to.
func CanTransition(from PresetStatus, to PresetStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func ValidStatus(status PresetStatus) bool {
	switch status {
	case PresetStatusPending, PresetStatusApproved, PresetStatusRejected, PresetStatusFlagged, PresetStatusHidden:
		return true
	default:
		return false
	}
}

func ValidCategory(category string) bool {
	for _, known := range Categories {
		if strings.EqualFold(category, known) {
			return true
		}
	}
	return false
}
