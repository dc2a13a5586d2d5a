package httpserver

import (
	"errors"
	"net/http"

	voteerrors "palette/contexts/community-palettes/vote-ledger/domain/errors"
)

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireUser(w, r)
	if !ok || !s.requireNotBanned(w, r, caller) {
		return
	}
	resp, err := s.votes.Handler.CastHandler(r.Context(), r.PathValue("preset_id"), caller.userID)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	status := http.StatusCreated
	if resp.Data.AlreadyVoted {
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleRetractVote(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireUser(w, r)
	if !ok || !s.requireNotBanned(w, r, caller) {
		return
	}
	resp, err := s.votes.Handler.RetractHandler(r.Context(), r.PathValue("preset_id"), caller.userID)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVoteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voteerrors.ErrInvalidVoteInput):
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error(), nil)
	case errors.Is(err, voteerrors.ErrPresetNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, voteerrors.ErrPresetNotVotable):
		writeError(w, http.StatusConflict, "NOT_VOTABLE", err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
	}
}
