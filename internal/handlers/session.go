package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cardshow/deal-engine/internal/logger"
	"github.com/cardshow/deal-engine/internal/storage"
	"github.com/cardshow/deal-engine/pkg/rng"
	"github.com/cardshow/deal-engine/pkg/session"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response with the given status.
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}

type SessionHandler struct {
	storage   storage.Storage
	logger    *slog.Logger
	encounter *EncounterHandler

	// newRand builds the RNG used for session creation. Injectable for
	// deterministic tests.
	newRand func() rng.Rand
}

func NewSessionHandler(storage storage.Storage, logger *slog.Logger) *SessionHandler {
	newRand := func() rng.Rand {
		return rng.New(uint64(time.Now().UnixNano()))
	}
	return &SessionHandler{
		storage:   storage,
		logger:    logger,
		encounter: NewEncounterHandler(storage, logger, newRand),
		newRand:   newRand,
	}
}

// CreateSessionRequest defines the request body for creating a new session
type CreateSessionRequest struct {
	Name       string `json:"name"`
	Favorite   string `json:"favorite,omitempty"`
	TargetCard string `json:"target_card,omitempty"`
}

// ServeHTTP handles HTTP requests for session operations
// Routes:
// POST /v1/session                    - Create new session
// GET /v1/session/{id}                - Read session by ID
// DELETE /v1/session/{id}             - Delete session by ID
// POST /v1/session/{id}/encounter/... - Encounter actions (delegated)
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.TrimPrefix(r.URL.Path, "/v1/session")
	path = strings.Trim(path, "/")

	if path == "" {
		if r.Method != http.MethodPost {
			h.logger.Warn("Method not allowed for session endpoint", "method", r.Method)
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	segments := strings.SplitN(path, "/", 2)
	sessionID, err := uuid.Parse(segments[0])
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", segments[0], "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	if len(segments) == 2 {
		// Encounter sub-resource
		h.encounter.Handle(w, r, sessionID, segments[1])
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleRead(w, r, sessionID)
	case http.MethodDelete:
		h.handleDelete(w, r, sessionID)
	default:
		h.logger.Warn("Method not allowed for session endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Creating new session")

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.logger.Warn("Missing required field: name")
		writeError(w, h.logger, http.StatusBadRequest, "name field is required")
		return
	}

	s := session.New(req.Name, strings.TrimSpace(req.Favorite), strings.TrimSpace(req.TargetCard), h.newRand())

	if err := h.storage.SaveSession(r.Context(), s.ID, s); err != nil {
		h.logger.Error("Failed to save session", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	logger.WithSession(h.logger, s.ID).Info("Session created",
		"player", s.Player.Name, "archetype", s.Player.Archetype)

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(s); err != nil {
		h.logger.Error("Failed to encode session response", "error", err)
	}
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	s, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if s == nil {
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return
	}

	if err := json.NewEncoder(w).Encode(s); err != nil {
		h.logger.Error("Failed to encode session response", "error", err)
	}
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	s, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if s == nil {
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return
	}

	if err := h.storage.DeleteSession(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	logger.WithSession(h.logger, id).Info("Session deleted")
	w.WriteHeader(http.StatusNoContent)
}
