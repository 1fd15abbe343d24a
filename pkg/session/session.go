// Package session defines the GameSession aggregate: one player's ledger
// plus their current encounter, passed explicitly into every engine call.
// All mutating entry points live here and enforce the API-boundary
// preconditions (funds, selections, one-active-encounter) before
// delegating to the encounter state machine.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cardshow/deal-engine/pkg/encounter"
	"github.com/cardshow/deal-engine/pkg/ledger"
	"github.com/cardshow/deal-engine/pkg/rng"
)

var (
	// ErrNoActiveEncounter is returned when an encounter action is taken
	// with no live encounter.
	ErrNoActiveEncounter = errors.New("no active encounter")

	// ErrEncounterActive is returned when starting an encounter while one
	// is already live. At most one encounter is active per session.
	ErrEncounterActive = errors.New("an encounter is already active")

	// ErrEmptySelection is returned when a trade or sale names no cards
	// and no cash.
	ErrEmptySelection = errors.New("nothing selected")

	// ErrMilestoneLocked is returned when the player's level doesn't
	// clear a milestone's gate.
	ErrMilestoneLocked = errors.New("milestone is locked")

	// ErrUnknownMilestone is returned for a stage or influencer ID not in
	// the tables.
	ErrUnknownMilestone = errors.New("unknown milestone")
)

// Session is one player's full game state. It is the unit of storage and
// the natural atomicity boundary: load, mutate, save.
type Session struct {
	ID        uuid.UUID            `json:"id"`
	Player    *ledger.Ledger       `json:"player"`
	Encounter *encounter.Encounter `json:"encounter,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// New creates a session and rolls the player's collector build.
func New(name, favorite, targetCard string, r rng.Rand) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Player:    ledger.New(name, favorite, targetCard, r),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ActiveEncounter returns the live encounter, or nil.
func (s *Session) ActiveEncounter() *encounter.Encounter {
	if s.Encounter != nil && s.Encounter.Active() {
		return s.Encounter
	}
	return nil
}

// Persuade applies one persuasion move to the live encounter.
func (s *Session) Persuade(m encounter.Move) (encounter.MoveEffect, error) {
	e := s.ActiveEncounter()
	if e == nil {
		return encounter.MoveEffect{}, ErrNoActiveEncounter
	}
	return e.ApplyMove(m)
}

// MakeOffer evaluates a cash offer and, on accept, finalizes the deal.
// The funds precondition is checked here, at the boundary, before the
// classifier runs.
func (s *Session) MakeOffer(amount float64, r rng.Rand) (encounter.OfferOutcome, error) {
	e := s.ActiveEncounter()
	if e == nil {
		return encounter.OfferOutcome{}, ErrNoActiveEncounter
	}
	if amount > s.Player.Cash {
		return encounter.OfferOutcome{}, ledger.ErrInsufficientFunds
	}

	fractionAdjust, skillDiscount := s.Player.NegotiationEdge(e.PartnerType, e.Zone)
	terms := encounter.OfferTerms{FractionAdjust: fractionAdjust, SkillDiscount: skillDiscount}

	outcome, err := e.EvaluateOffer(amount, terms, r)
	if err != nil {
		return outcome, err
	}

	if outcome.Result == encounter.OfferAccept {
		if err := e.FinalizeDeal(amount, s.Player); err != nil {
			return outcome, err
		}
	}
	return outcome, nil
}

// ProposeTrade evaluates a cards-plus-cash trade against the cards the
// player wants from the table.
func (s *Session) ProposeTrade(offeredIdx []int, cashAdd float64, wantedIdx []int) (encounter.TradeOutcome, error) {
	e := s.ActiveEncounter()
	if e == nil {
		return encounter.TradeOutcome{}, ErrNoActiveEncounter
	}
	if len(offeredIdx) == 0 && cashAdd <= 0 {
		return encounter.TradeOutcome{}, ErrEmptySelection
	}
	if len(wantedIdx) == 0 {
		return encounter.TradeOutcome{}, ErrEmptySelection
	}
	if cashAdd > s.Player.Cash {
		return encounter.TradeOutcome{}, ledger.ErrInsufficientFunds
	}
	return e.EvaluateTrade(offeredIdx, cashAdd, wantedIdx, s.Player)
}

// QuoteSale returns the cash the partner would pay for the selected
// collection cards, without executing anything.
func (s *Session) QuoteSale(indices []int) (float64, error) {
	e := s.ActiveEncounter()
	if e == nil {
		return 0, ErrNoActiveEncounter
	}
	if len(indices) == 0 {
		return 0, ErrEmptySelection
	}
	cards, err := s.Player.CardsAt(indices)
	if err != nil {
		return 0, err
	}
	return e.QuoteSale(cards)
}

// ConfirmSale executes the sale of the selected collection cards.
func (s *Session) ConfirmSale(indices []int) (float64, error) {
	e := s.ActiveEncounter()
	if e == nil {
		return 0, ErrNoActiveEncounter
	}
	if len(indices) == 0 {
		return 0, ErrEmptySelection
	}
	return e.ConfirmSale(indices, s.Player)
}

// WalkAway ends the live encounter at the player's initiative.
func (s *Session) WalkAway() error {
	e := s.ActiveEncounter()
	if e == nil {
		return ErrNoActiveEncounter
	}
	return e.WalkAway()
}
