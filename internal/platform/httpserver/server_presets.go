package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"palette/contexts/community-palettes/preset-registry/domain/entities"
	preseterrors "palette/contexts/community-palettes/preset-registry/domain/errors"
	"palette/contexts/community-palettes/preset-registry/ports"
	presethttp "palette/contexts/community-palettes/preset-registry/transport/http"
)

func (s *Server) handleSubmitPreset(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireUser(w, r)
	if !ok || !s.requireNotBanned(w, r, caller) {
		return
	}
	var req presethttp.SubmitPresetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.presets.Handler.SubmitHandler(r.Context(), caller.userID, caller.userName, req)
	if err != nil {
		writePresetDomainError(w, err)
		return
	}
	status := http.StatusCreated
	if resp.Data.Duplicate {
		// Duplicate collapse is a success that votes on the existing preset.
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := ports.ListFilter{
		Status:   entities.PresetStatus(strings.ToLower(strings.TrimSpace(query.Get("status")))),
		Category: strings.ToLower(strings.TrimSpace(query.Get("category"))),
		Search:   query.Get("search"),
		Sort:     ports.ListSort(strings.ToLower(strings.TrimSpace(query.Get("sort")))),
		Limit:    queryInt(r, "limit"),
		Offset:   queryInt(r, "offset"),
	}
	if raw := strings.TrimSpace(query.Get("curated")); raw != "" {
		curated := raw == "true" || raw == "1"
		filter.Curated = &curated
	}
	// Only moderators may list beyond approved content.
	if filter.Status != "" && filter.Status != entities.PresetStatusApproved {
		if _, ok := s.requireModerator(w, r); !ok {
			return
		}
	}
	resp, err := s.presets.Handler.ListHandler(r.Context(), filter)
	if err != nil {
		writePresetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFeaturedPresets(w http.ResponseWriter, r *http.Request) {
	resp, err := s.presets.Handler.FeaturedHandler(r.Context(), queryInt(r, "limit"))
	if err != nil {
		writePresetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePendingPresets(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireModerator(w, r); !ok {
		return
	}
	resp, err := s.presets.Handler.PendingHandler(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		writePresetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	caller := s.identityFrom(r)
	resp, err := s.presets.Handler.GetHandler(r.Context(), r.PathValue("preset_id"), caller.userID, caller.isModerator)
	if err != nil {
		writePresetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEditPreset(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireUser(w, r)
	if !ok || !s.requireNotBanned(w, r, caller) {
		return
	}
	var req presethttp.EditPresetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.presets.Handler.EditHandler(r.Context(), r.PathValue("preset_id"), caller.userID, req)
	if err != nil {
		writePresetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReviewPreset(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireModerator(w, r)
	if !ok {
		return
	}
	var req presethttp.ReviewPresetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.presets.Handler.ReviewHandler(r.Context(), r.PathValue("preset_id"), caller.userID, req)
	if err != nil {
		writePresetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevertPreset(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireModerator(w, r)
	if !ok {
		return
	}
	resp, err := s.presets.Handler.RevertHandler(r.Context(), r.PathValue("preset_id"), caller.userID)
	if err != nil {
		writePresetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCuratePreset(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireModerator(w, r)
	if !ok {
		return
	}
	var req presethttp.CuratePresetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.presets.Handler.CurateHandler(r.Context(), r.PathValue("preset_id"), caller.userID, req)
	if err != nil {
		writePresetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePresetsByAuthor(w http.ResponseWriter, r *http.Request) {
	caller := s.identityFrom(r)
	resp, err := s.presets.Handler.ByAuthorHandler(
		r.Context(),
		r.PathValue("user_id"),
		caller.userID,
		caller.isModerator,
		queryInt(r, "limit"),
		queryInt(r, "offset"),
	)
	if err != nil {
		writePresetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writePresetDomainError(w http.ResponseWriter, err error) {
	var rateLimit *preseterrors.RateLimitError
	switch {
	case errors.As(err, &rateLimit):
		writeJSON(w, http.StatusTooManyRequests, presethttp.RateLimitedResponse{
			Status: "error",
			Error: presethttp.ErrorBody{
				Code:    "RATE_LIMITED",
				Message: rateLimit.Error(),
			},
			Remaining: 0,
			ResetAt:   rateLimit.ResetAt.UTC().Format(time.RFC3339),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	case errors.Is(err, preseterrors.ErrValidation):
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error(), nil)
	case errors.Is(err, preseterrors.ErrPresetNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, preseterrors.ErrNotAuthor):
		writeError(w, http.StatusForbidden, "PERMISSION_DENIED", err.Error(), nil)
	case errors.Is(err, preseterrors.ErrInvalidTransition),
		errors.Is(err, preseterrors.ErrEditNotEditable),
		errors.Is(err, preseterrors.ErrNoSnapshot):
		writeError(w, http.StatusConflict, "INVALID_STATE", err.Error(), nil)
	case errors.Is(err, preseterrors.ErrInvalidReviewAction):
		writeError(w, http.StatusBadRequest, "INVALID_ACTION", err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
	}
}
