// Package encounter implements the negotiation state machine: one session
// with a single partner over a fixed basket of cards, from creation through
// a closed deal, a walkaway, or the partner running out of patience.
package encounter

import (
	"errors"
	"fmt"
	"math"

	"github.com/cardshow/deal-engine/pkg/card"
	"github.com/cardshow/deal-engine/pkg/ledger"
	"github.com/cardshow/deal-engine/pkg/partner"
	"github.com/cardshow/deal-engine/pkg/zone"
)

// ErrInactive is returned when a mutating operation is attempted against
// an encounter that has already reached a terminal state.
var ErrInactive = errors.New("encounter is not active")

// Status is the encounter lifecycle state. StatusActive is the only
// non-terminal state; there are no transitions out of the closed states.
type Status string

const (
	StatusActive      Status = "active"
	StatusDealClosed  Status = "deal_closed"
	StatusWalkedAway  Status = "walked_away"
	StatusPatienceOut Status = "patience_exhausted"
)

// ModeKind distinguishes milestone encounters from random zone encounters.
type ModeKind string

const (
	ModeStage      ModeKind = "stage"
	ModeInfluencer ModeKind = "influencer"
	ModeChampion   ModeKind = "champion"
)

// Mode tags a milestone encounter so a winning deal credits the right
// ledger entry. Nil mode means a random zone encounter.
type Mode struct {
	Kind ModeKind `json:"kind"`
	ID   string   `json:"id,omitempty"`
}

// PriceFactorFloor is the lowest the partner's price factor can be talked
// down to.
const PriceFactorFloor = 0.7

// HistoryLimit is how many log lines RecentHistory surfaces.
const HistoryLimit = 5

// Encounter is one live negotiation. It exclusively owns its cards until
// a deal or trade transfers them to the player's collection.
type Encounter struct {
	PartnerType partner.Type `json:"partner_type"`
	Mood        partner.Mood `json:"mood"`
	Zone        zone.Zone    `json:"zone"`
	Cards       []card.Card  `json:"cards"`

	Round   int      `json:"round"`
	Status  Status   `json:"status"`
	History []string `json:"history"`

	// Resistance is how hard the partner is to move off their position.
	// It starts at MaxResistance and only persuasion brings it down.
	Resistance    int `json:"resistance"`
	MaxResistance int `json:"max_resistance"`

	// PriceFactor scales the partner's effective acceptance floor.
	PriceFactor float64 `json:"price_factor"`

	// Patience counts down on aggressive actions and failed trades; at
	// zero the partner walks.
	Patience int `json:"patience"`

	Mode *Mode `json:"mode,omitempty"`
}

// New creates an active encounter. Toughness is 1.0 for ordinary zone
// encounters and scales up for milestone opponents; it sets resistance,
// price factor, and patience together.
func New(z zone.Zone, t partner.Type, mood partner.Mood, cards []card.Card, toughness float64, mode *Mode) *Encounter {
	if toughness <= 0 {
		toughness = 1.0
	}
	maxRes := int(math.Round(100 * toughness))
	e := &Encounter{
		PartnerType:   t,
		Mood:          mood,
		Zone:          z,
		Cards:         cards,
		Round:         1,
		Status:        StatusActive,
		History:       make([]string, 0, 8),
		Resistance:    maxRes,
		MaxResistance: maxRes,
		PriceFactor:   1.0 * toughness,
		Patience:      5 + int(2*toughness),
		Mode:          mode,
	}
	e.log(fmt.Sprintf("You approach a %s in %s. They seem %s.", t.DisplayName(), z.DisplayName(), mood))
	return e
}

// Active reports whether the encounter can still be acted on.
func (e *Encounter) Active() bool {
	return e.Status == StatusActive
}

// RecentHistory returns the last few log lines for display.
func (e *Encounter) RecentHistory() []string {
	if len(e.History) <= HistoryLimit {
		return e.History
	}
	return e.History[len(e.History)-HistoryLimit:]
}

// TotalTrueValue is the aggregate ground-truth value of the cards on the
// table.
func (e *Encounter) TotalTrueValue() float64 {
	return card.TotalTrueValue(e.Cards)
}

// TotalAskPrice is the aggregate asking price of the cards on the table.
func (e *Encounter) TotalAskPrice() float64 {
	return card.TotalAskPrice(e.Cards)
}

// WalkAway ends the encounter at the player's initiative. Always succeeds
// while the encounter is active.
func (e *Encounter) WalkAway() error {
	if !e.Active() {
		return ErrInactive
	}
	e.Status = StatusWalkedAway
	e.log("You thank them for their time and walk away from the table.")
	return nil
}

func (e *Encounter) log(line string) {
	e.History = append(e.History, line)
}

// clampResistance keeps resistance within [0, MaxResistance].
func (e *Encounter) clampResistance() {
	if e.Resistance < 0 {
		e.Resistance = 0
	}
	if e.Resistance > e.MaxResistance {
		e.Resistance = e.MaxResistance
	}
}

// clampPriceFactor enforces the price factor floor.
func (e *Encounter) clampPriceFactor() {
	if e.PriceFactor < PriceFactorFloor {
		e.PriceFactor = PriceFactorFloor
	}
}

// exhaustPatience transitions to the patience-exhausted terminal state if
// the partner's patience has run out.
func (e *Encounter) exhaustPatience() bool {
	if e.Patience > 0 || !e.Active() {
		return false
	}
	e.Status = StatusPatienceOut
	e.log(fmt.Sprintf("%s has had enough and walks away from the table.", e.PartnerType.DisplayName()))
	return true
}

// removeCards removes the cards at the given indices from the table and
// returns them. Indices are validated by CardsAt before calls.
func (e *Encounter) removeCards(indices []int) []card.Card {
	removed := make([]card.Card, 0, len(indices))
	keep := make([]card.Card, 0, len(e.Cards))

	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	for i, c := range e.Cards {
		if drop[i] {
			removed = append(removed, c)
		} else {
			keep = append(keep, c)
		}
	}
	e.Cards = keep
	return removed
}

// CardsAt resolves table indices to cards without removing them.
// Out-of-range and repeated indices are rejected.
func (e *Encounter) CardsAt(indices []int) ([]card.Card, error) {
	cards := make([]card.Card, 0, len(indices))
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(e.Cards) {
			return nil, fmt.Errorf("table index %d: %w", i, ledger.ErrBadCardIndex)
		}
		if seen[i] {
			return nil, fmt.Errorf("table index %d: %w", i, ledger.ErrDuplicateCardIndex)
		}
		seen[i] = true
		cards = append(cards, e.Cards[i])
	}
	return cards, nil
}
