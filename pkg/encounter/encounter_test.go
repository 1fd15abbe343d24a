package encounter

import (
	"errors"
	"strings"
	"testing"

	"github.com/cardshow/deal-engine/pkg/card"
	"github.com/cardshow/deal-engine/pkg/ledger"
	"github.com/cardshow/deal-engine/pkg/partner"
	"github.com/cardshow/deal-engine/pkg/zone"
)

// fixedRand returns the same draw every time, so outcomes that depend on
// a uniform roll are exact in tests.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int   { return r.n % n }

func testCards() []card.Card {
	return []card.Card{
		{Name: "Star QB Rookie", Player: "Star QB", Year: 2020, Set: "Prizm", TrueValue: 60.0, AskPrice: 80.0},
		{Name: "Young Star RC", Player: "Young Star", Year: 2022, Set: "Select", TrueValue: 40.0, AskPrice: 50.0},
	}
}

func newTestEncounter(t partner.Type, mood partner.Mood) *Encounter {
	return New(zone.ModernShowcases, t, mood, testCards(), 1.0, nil)
}

func TestNew(t *testing.T) {
	e := newTestEncounter(partner.TypeDealer, partner.MoodNeutral)

	if e.Status != StatusActive {
		t.Errorf("Expected active status, got %v", e.Status)
	}
	if e.MaxResistance != 100 || e.Resistance != 100 {
		t.Errorf("Expected resistance 100/100, got %d/%d", e.Resistance, e.MaxResistance)
	}
	if e.Patience != 7 {
		t.Errorf("Expected patience 7, got %d", e.Patience)
	}
	if e.PriceFactor != 1.0 {
		t.Errorf("Expected price factor 1.0, got %v", e.PriceFactor)
	}
	if e.Round != 1 {
		t.Errorf("Expected round 1, got %d", e.Round)
	}
	if len(e.History) != 1 || !strings.Contains(e.History[0], "Dealer") {
		t.Errorf("Expected an opening history line naming the partner, got %v", e.History)
	}
}

func TestNew_Toughness(t *testing.T) {
	e := New(zone.VintageAlley, partner.TypeSupercollector, partner.MoodNeutral, testCards(), 1.6, nil)

	if e.MaxResistance != 160 {
		t.Errorf("Expected max resistance 160, got %d", e.MaxResistance)
	}
	if e.Patience != 8 {
		t.Errorf("Expected patience 8, got %d", e.Patience)
	}
	if e.PriceFactor != 1.6 {
		t.Errorf("Expected price factor 1.6, got %v", e.PriceFactor)
	}
}

func TestNew_BadToughnessDefaults(t *testing.T) {
	e := New(zone.VintageAlley, partner.TypeDealer, partner.MoodNeutral, testCards(), 0, nil)
	if e.MaxResistance != 100 {
		t.Errorf("Expected toughness to default, got max resistance %d", e.MaxResistance)
	}
}

func TestTotals(t *testing.T) {
	e := newTestEncounter(partner.TypeDealer, partner.MoodNeutral)
	if e.TotalTrueValue() != 100.0 {
		t.Errorf("Expected total true value 100, got %v", e.TotalTrueValue())
	}
	if e.TotalAskPrice() != 130.0 {
		t.Errorf("Expected total ask 130, got %v", e.TotalAskPrice())
	}
}

func TestWalkAway(t *testing.T) {
	e := newTestEncounter(partner.TypeKidCollector, partner.MoodHappy)

	if err := e.WalkAway(); err != nil {
		t.Fatalf("Expected walkaway to succeed: %v", err)
	}
	if e.Status != StatusWalkedAway {
		t.Errorf("Expected walked_away status, got %v", e.Status)
	}

	// Terminal states reject further actions
	if err := e.WalkAway(); err != ErrInactive {
		t.Errorf("Expected ErrInactive on second walkaway, got %v", err)
	}
	if _, err := e.ApplyMove(MoveBuildRapport); err != ErrInactive {
		t.Errorf("Expected ErrInactive for move after walkaway, got %v", err)
	}
}

func TestRecentHistory(t *testing.T) {
	e := newTestEncounter(partner.TypeKidCollector, partner.MoodNeutral)
	for i := 0; i < 10; i++ {
		e.log("line")
	}

	recent := e.RecentHistory()
	if len(recent) != HistoryLimit {
		t.Errorf("Expected %d recent lines, got %d", HistoryLimit, len(recent))
	}
	if len(e.History) != 11 {
		t.Errorf("Expected full history to be kept, got %d lines", len(e.History))
	}
}

func TestCardsAt(t *testing.T) {
	e := newTestEncounter(partner.TypeDealer, partner.MoodNeutral)

	cards, err := e.CardsAt([]int{1})
	if err != nil {
		t.Fatalf("Expected valid index to resolve: %v", err)
	}
	if len(cards) != 1 || cards[0].Name != "Young Star RC" {
		t.Errorf("Expected Young Star RC, got %v", cards)
	}

	if _, err := e.CardsAt([]int{2}); !errors.Is(err, ledger.ErrBadCardIndex) {
		t.Errorf("Expected ErrBadCardIndex for out-of-range table index, got %v", err)
	}
	if _, err := e.CardsAt([]int{-1}); !errors.Is(err, ledger.ErrBadCardIndex) {
		t.Errorf("Expected ErrBadCardIndex for negative table index, got %v", err)
	}
	if _, err := e.CardsAt([]int{0, 0}); !errors.Is(err, ledger.ErrDuplicateCardIndex) {
		t.Errorf("Expected ErrDuplicateCardIndex, got %v", err)
	}
}

func TestRemoveCards(t *testing.T) {
	e := newTestEncounter(partner.TypeDealer, partner.MoodNeutral)

	removed := e.removeCards([]int{0})
	if len(removed) != 1 || removed[0].Name != "Star QB Rookie" {
		t.Errorf("Expected Star QB Rookie removed, got %v", removed)
	}
	if len(e.Cards) != 1 || e.Cards[0].Name != "Young Star RC" {
		t.Errorf("Expected one card left on the table, got %v", e.Cards)
	}
}
