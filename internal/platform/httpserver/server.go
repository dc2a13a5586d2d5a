package httpserver

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	presetregistry "palette/contexts/community-palettes/preset-registry"
	voteledger "palette/contexts/community-palettes/vote-ledger"
	banregistry "palette/contexts/moderation-safety/ban-registry"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "palette/internal/platform/httpserver/docs"
)

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	metrics *metrics
	presets presetregistry.Module
	votes   voteledger.Module
	bans    banregistry.Module
}

func New(
	presets presetregistry.Module,
	votes voteledger.Module,
	bans banregistry.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		metrics: newMetrics(),
		presets: presets,
		votes:   votes,
		bans:    bans,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.metrics.instrument(s.mux))
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", s.metrics.handler())

	s.mux.HandleFunc("POST /v1/presets", s.handleSubmitPreset)
	s.mux.HandleFunc("GET /v1/presets", s.handleListPresets)
	s.mux.HandleFunc("GET /v1/presets/featured", s.handleFeaturedPresets)
	s.mux.HandleFunc("GET /v1/presets/pending", s.handlePendingPresets)
	s.mux.HandleFunc("GET /v1/presets/{preset_id}", s.handleGetPreset)
	s.mux.HandleFunc("PATCH /v1/presets/{preset_id}", s.handleEditPreset)
	s.mux.HandleFunc("POST /v1/presets/{preset_id}/review", s.handleReviewPreset)
	s.mux.HandleFunc("POST /v1/presets/{preset_id}/revert", s.handleRevertPreset)
	s.mux.HandleFunc("POST /v1/presets/{preset_id}/curate", s.handleCuratePreset)
	s.mux.HandleFunc("GET /v1/users/{user_id}/presets", s.handlePresetsByAuthor)

	s.mux.HandleFunc("POST /v1/presets/{preset_id}/vote", s.handleCastVote)
	s.mux.HandleFunc("DELETE /v1/presets/{preset_id}/vote", s.handleRetractVote)

	s.mux.HandleFunc("POST /v1/bans", s.handleBan)
	s.mux.HandleFunc("POST /v1/bans/unban", s.handleUnban)
	s.mux.HandleFunc("GET /v1/bans", s.handleListBans)
}

// identity is the already-validated caller context resolved by the upstream
// gateway; the server trusts these headers.
type identity struct {
	authenticated bool
	isModerator   bool
	userID        string
	userName      string
	remoteIP      string
}

func (s *Server) identityFrom(r *http.Request) identity {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	ip := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if ip == "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}
	} else if idx := strings.IndexByte(ip, ','); idx >= 0 {
		ip = strings.TrimSpace(ip[:idx])
	}
	return identity{
		authenticated: userID != "",
		isModerator:   strings.EqualFold(strings.TrimSpace(r.Header.Get("X-User-Role")), "moderator"),
		userID:        userID,
		userName:      strings.TrimSpace(r.Header.Get("X-User-Name")),
		remoteIP:      ip,
	}
}

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (identity, bool) {
	caller := s.identityFrom(r)
	if !caller.authenticated {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication is required", nil)
		return identity{}, false
	}
	return caller, true
}

func (s *Server) requireModerator(w http.ResponseWriter, r *http.Request) (identity, bool) {
	caller, ok := s.requireUser(w, r)
	if !ok {
		return identity{}, false
	}
	if !caller.isModerator {
		writeError(w, http.StatusForbidden, "PERMISSION_DENIED", "moderator privilege is required", nil)
		return identity{}, false
	}
	return caller, true
}

// requireNotBanned consults the ban registry's active-ban predicate before
// submit, vote, and edit operations reach the core.
func (s *Server) requireNotBanned(w http.ResponseWriter, r *http.Request, caller identity) bool {
	banned, err := s.bans.Service.IsBanned(r.Context(), caller.userID, caller.remoteIP)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
		return false
	}
	if banned {
		writeError(w, http.StatusForbidden, "BANNED", "identity is banned", nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON", nil)
		return false
	}
	return true
}

func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil {
		return 0
	}
	return value
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type errorEnvelope struct {
	Status    string    `json:"status"`
	Error     errorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

func writeError(w http.ResponseWriter, status int, code string, message string, details map[string]any) {
	writeJSON(w, status, errorEnvelope{
		Status:    "error",
		Error:     errorBody{Code: code, Message: message, Details: details},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
