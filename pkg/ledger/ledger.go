// Package ledger holds the player-wide progression state: cash, the owned
// card collection, experience, profit, and milestone records. The ledger is
// mutated only as a result of encounter outcomes.
package ledger

import (
	"errors"
	"sort"

	"github.com/cardshow/deal-engine/pkg/card"
	"github.com/cardshow/deal-engine/pkg/rng"
)

var (
	// ErrInsufficientFunds is returned when an operation would spend more
	// cash than the player holds. The API boundary checks this before
	// calling in; the engine checks again so cash can never go negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBadCardIndex is returned when a selection references a card that
	// is not in the collection.
	ErrBadCardIndex = errors.New("card index out of range")

	// ErrDuplicateCardIndex is returned when a selection names the same
	// card twice. Selections are sets; a repeated index would double-count
	// the card's value and remove a neighbor it never named.
	ErrDuplicateCardIndex = errors.New("duplicate card index")
)

// MaxNegotiationSkill caps the skill bump earned per closed deal.
const MaxNegotiationSkill = 5.0

// Goals is what the player is chasing this trip.
type Goals struct {
	TargetCard   string  `json:"target_card"`
	ProfitTarget float64 `json:"profit_target"`
}

// Ledger is the per-player progression record.
type Ledger struct {
	Name     string `json:"name"`
	Favorite string `json:"favorite,omitempty"`

	Archetype        Archetype `json:"archetype"`
	Cash             float64   `json:"cash"`
	Stamina          int       `json:"stamina"`
	NegotiationSkill float64   `json:"negotiation_skill"`

	// Day and TimeBlock are a flavor clock, advanced on level-up.
	Day       int    `json:"day"`
	TimeBlock string `json:"time_block"`

	XP    int `json:"xp"`
	Level int `json:"level"`

	Goals      Goals       `json:"goals"`
	Collection []card.Card `json:"collection"`
	Profit     float64     `json:"profit"`

	Stages         map[string]bool `json:"stages"`
	Influencers    map[string]bool `json:"influencers"`
	ChampionBeaten bool            `json:"champion_beaten"`
}

// New creates a fresh ledger and rolls the player's collector archetype,
// which sets starting cash, negotiation skill, and the profit target.
func New(name, favorite, targetCard string, r rng.Rand) *Ledger {
	l := &Ledger{
		Name:             name,
		Favorite:         favorite,
		Stamina:          100,
		NegotiationSkill: 1.0,
		Day:              1,
		TimeBlock:        timeBlocks[0],
		Level:            1,
		Collection:       make([]card.Card, 0),
		Stages:           make(map[string]bool),
		Influencers:      make(map[string]bool),
	}

	arch := rollArchetype(r)
	l.Archetype = arch
	l.Cash = archetypeStats[arch].cash
	l.NegotiationSkill = archetypeStats[arch].skill
	l.Goals.ProfitTarget = archetypeStats[arch].profitTarget

	if targetCard != "" {
		l.Goals.TargetCard = targetCard
	} else if favorite != "" {
		l.Goals.TargetCard = "Grail for " + favorite
	} else {
		l.Goals.TargetCard = "A true PC grail"
	}
	return l
}

// BumpSkill raises negotiation skill slightly after a closed deal, capped.
func (l *Ledger) BumpSkill() {
	l.NegotiationSkill += 0.1
	if l.NegotiationSkill > MaxNegotiationSkill {
		l.NegotiationSkill = MaxNegotiationSkill
	}
}

// CardsAt resolves collection indices to cards without removing them.
// Out-of-range and repeated indices are rejected.
func (l *Ledger) CardsAt(indices []int) ([]card.Card, error) {
	cards := make([]card.Card, 0, len(indices))
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(l.Collection) {
			return nil, ErrBadCardIndex
		}
		if seen[i] {
			return nil, ErrDuplicateCardIndex
		}
		seen[i] = true
		cards = append(cards, l.Collection[i])
	}
	return cards, nil
}

// RemoveAt removes the cards at the given collection indices and returns
// them. Indices must be valid; callers validate with CardsAt first.
func (l *Ledger) RemoveAt(indices []int) []card.Card {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	removed := make([]card.Card, 0, len(sorted))
	for _, i := range sorted {
		if i < 0 || i >= len(l.Collection) {
			continue
		}
		removed = append(removed, l.Collection[i])
		l.Collection = append(l.Collection[:i], l.Collection[i+1:]...)
	}
	return removed
}
