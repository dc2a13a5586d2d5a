package errors

import "errors"

var (
	ErrInvalidVoteInput = errors.New("invalid vote input")
	ErrPresetNotFound   = errors.New("vote target preset not found")
	ErrPresetNotVotable = errors.New("preset status does not accept votes")
)
