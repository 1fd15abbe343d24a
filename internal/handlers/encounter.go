package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/cardshow/deal-engine/internal/logger"
	"github.com/cardshow/deal-engine/internal/storage"
	"github.com/cardshow/deal-engine/pkg/encounter"
	"github.com/cardshow/deal-engine/pkg/ledger"
	"github.com/cardshow/deal-engine/pkg/rng"
	"github.com/cardshow/deal-engine/pkg/session"
	"github.com/cardshow/deal-engine/pkg/zone"
)

type EncounterHandler struct {
	storage storage.Storage
	logger  *slog.Logger
	newRand func() rng.Rand
}

func NewEncounterHandler(storage storage.Storage, logger *slog.Logger, newRand func() rng.Rand) *EncounterHandler {
	return &EncounterHandler{
		storage: storage,
		logger:  logger,
		newRand: newRand,
	}
}

// StartEncounterRequest selects what kind of encounter to open. Exactly
// one of the fields must be set.
type StartEncounterRequest struct {
	Zone       string `json:"zone,omitempty"`
	Stage      string `json:"stage,omitempty"`
	Influencer string `json:"influencer,omitempty"`
	Champion   bool   `json:"champion,omitempty"`
}

type PersuadeRequest struct {
	Move string `json:"move"`
}

type OfferRequest struct {
	Amount float64 `json:"amount"`
}

type TradeRequest struct {
	OfferedIndices []int   `json:"offered_indices"`
	CashAdd        float64 `json:"cash_add,omitempty"`
	WantedIndices  []int   `json:"wanted_indices"`
}

type SaleRequest struct {
	Indices []int `json:"indices"`
}

// Handle routes an encounter sub-resource request. The session ID has
// already been parsed; rest is the path under /v1/session/{id}/.
func (h *EncounterHandler) Handle(w http.ResponseWriter, r *http.Request, id uuid.UUID, rest string) {
	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for encounter endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

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

	switch rest {
	case "encounter":
		h.handleStart(w, r, s)
	case "encounter/persuade":
		h.handlePersuade(w, r, s)
	case "encounter/offer":
		h.handleOffer(w, r, s)
	case "encounter/trade":
		h.handleTrade(w, r, s)
	case "encounter/sale":
		h.handleSaleQuote(w, r, s)
	case "encounter/sale/confirm":
		h.handleSaleConfirm(w, r, s)
	case "encounter/walkaway":
		h.handleWalkAway(w, r, s)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Unknown encounter action")
	}
}

func (h *EncounterHandler) handleStart(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var req StartEncounterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	selected := 0
	if req.Zone != "" {
		selected++
	}
	if req.Stage != "" {
		selected++
	}
	if req.Influencer != "" {
		selected++
	}
	if req.Champion {
		selected++
	}
	if selected != 1 {
		writeError(w, h.logger, http.StatusBadRequest, "Exactly one of zone, stage, influencer or champion is required")
		return
	}

	rand := h.newRand()
	var err error
	switch {
	case req.Zone != "":
		z := zone.Zone(req.Zone)
		if !validZone(z) {
			writeError(w, h.logger, http.StatusBadRequest, "Unknown zone: "+req.Zone)
			return
		}
		err = s.StartEncounter(z, rand)
	case req.Stage != "":
		err = s.StartStage(req.Stage, rand)
	case req.Influencer != "":
		err = s.StartInfluencer(req.Influencer, rand)
	default:
		err = s.StartChampion(rand)
	}

	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if !h.save(w, r, s) {
		return
	}

	logger.WithSession(h.logger, s.ID).Info("Encounter started",
		"zone", s.Encounter.Zone, "partner", s.Encounter.PartnerType, "mood", s.Encounter.Mood)

	w.WriteHeader(http.StatusCreated)
	h.encodeSession(w, s)
}

func (h *EncounterHandler) handlePersuade(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var req PersuadeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	effect, err := s.Persuade(encounter.Move(req.Move))
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if !h.save(w, r, s) {
		return
	}

	h.encode(w, map[string]interface{}{
		"effect":  effect,
		"session": s,
	})
}

func (h *EncounterHandler) handleOffer(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var req OfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if req.Amount <= 0 {
		writeError(w, h.logger, http.StatusBadRequest, "amount must be positive")
		return
	}

	outcome, err := s.MakeOffer(req.Amount, h.newRand())
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if !h.save(w, r, s) {
		return
	}

	h.encode(w, map[string]interface{}{
		"outcome": outcome,
		"session": s,
	})
}

func (h *EncounterHandler) handleTrade(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if req.CashAdd < 0 {
		writeError(w, h.logger, http.StatusBadRequest, "cash_add cannot be negative")
		return
	}

	outcome, err := s.ProposeTrade(req.OfferedIndices, req.CashAdd, req.WantedIndices)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if !h.save(w, r, s) {
		return
	}

	h.encode(w, map[string]interface{}{
		"outcome": outcome,
		"session": s,
	})
}

func (h *EncounterHandler) handleSaleQuote(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var req SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	amount, err := s.QuoteSale(req.Indices)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	// A quote mutates nothing, so there is nothing to save.
	h.encode(w, map[string]interface{}{
		"amount":  amount,
		"session": s,
	})
}

func (h *EncounterHandler) handleSaleConfirm(w http.ResponseWriter, r *http.Request, s *session.Session) {
	var req SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	amount, err := s.ConfirmSale(req.Indices)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if !h.save(w, r, s) {
		return
	}

	h.encode(w, map[string]interface{}{
		"amount":  amount,
		"session": s,
	})
}

func (h *EncounterHandler) handleWalkAway(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if err := s.WalkAway(); err != nil {
		h.writeEngineError(w, err)
		return
	}

	if !h.save(w, r, s) {
		return
	}

	h.encodeSession(w, s)
}

// save persists the session and reports whether the request can proceed.
func (h *EncounterHandler) save(w http.ResponseWriter, r *http.Request, s *session.Session) bool {
	if err := h.storage.SaveSession(r.Context(), s.ID, s); err != nil {
		h.logger.Error("Failed to save session", "uuid", s.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return false
	}
	return true
}

func (h *EncounterHandler) encode(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *EncounterHandler) encodeSession(w http.ResponseWriter, s *session.Session) {
	h.encode(w, map[string]interface{}{"session": s})
}

// writeEngineError maps engine sentinel errors to HTTP statuses.
func (h *EncounterHandler) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrEncounterActive):
		writeError(w, h.logger, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrNoActiveEncounter), errors.Is(err, encounter.ErrInactive):
		writeError(w, h.logger, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrMilestoneLocked):
		writeError(w, h.logger, http.StatusForbidden, err.Error())
	case errors.Is(err, session.ErrUnknownMilestone):
		writeError(w, h.logger, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrEmptySelection),
		errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrBadCardIndex),
		errors.Is(err, ledger.ErrDuplicateCardIndex),
		errors.Is(err, encounter.ErrUnknownMove):
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Unexpected engine error", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
	}
}

func validZone(z zone.Zone) bool {
	for _, known := range zone.Zones {
		if z == known {
			return true
		}
	}
	return false
}
