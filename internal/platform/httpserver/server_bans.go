package httpserver

import (
	"errors"
	"net/http"
	"strings"

	banerrors "palette/contexts/moderation-safety/ban-registry/domain/errors"
	banhttp "palette/contexts/moderation-safety/ban-registry/transport/http"
)

func (s *Server) handleBan(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireModerator(w, r)
	if !ok {
		return
	}
	var req banhttp.BanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.bans.Handler.BanHandler(r.Context(), caller.userID, req)
	if err != nil {
		writeBanDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUnban(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireModerator(w, r)
	if !ok {
		return
	}
	var req banhttp.UnbanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.bans.Handler.UnbanHandler(r.Context(), caller.userID, req)
	if err != nil {
		writeBanDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListBans(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireModerator(w, r); !ok {
		return
	}
	activeOnly := strings.TrimSpace(r.URL.Query().Get("active")) != "false"
	resp, err := s.bans.Handler.ListHandler(r.Context(), activeOnly)
	if err != nil {
		writeBanDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeBanDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, banerrors.ErrInvalidBanInput):
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error(), nil)
	case errors.Is(err, banerrors.ErrAlreadyBanned):
		writeError(w, http.StatusConflict, "ALREADY_BANNED", err.Error(), nil)
	case errors.Is(err, banerrors.ErrBanNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
	}
}
