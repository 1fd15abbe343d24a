package session

import (
	"testing"

	"github.com/cardshow/deal-engine/pkg/card"
	"github.com/cardshow/deal-engine/pkg/encounter"
	"github.com/cardshow/deal-engine/pkg/ledger"
	"github.com/cardshow/deal-engine/pkg/partner"
	"github.com/cardshow/deal-engine/pkg/rng"
	"github.com/cardshow/deal-engine/pkg/zone"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := New("Jordan", "basketball", "", rng.New(42))
	if s.Player == nil {
		t.Fatal("Expected a rolled player ledger")
	}
	return s
}

// setEncounter installs a controlled encounter so action tests don't
// depend on random partner draws.
func setEncounter(s *Session, z zone.Zone, t partner.Type, mood partner.Mood, cards []card.Card) {
	s.Encounter = encounter.New(z, t, mood, cards, 1.0, nil)
}

func tableCards() []card.Card {
	return []card.Card{
		{Name: "Star QB Rookie", Player: "Star QB", Year: 2020, Set: "Prizm", TrueValue: 60.0, AskPrice: 80.0},
		{Name: "Young Star RC", Player: "Young Star", Year: 2022, Set: "Select", TrueValue: 40.0, AskPrice: 50.0},
	}
}

func TestNew(t *testing.T) {
	s := newTestSession(t)

	if s.ID.String() == "" {
		t.Error("Expected a session ID")
	}
	if s.Player.Name != "Jordan" {
		t.Errorf("Expected player Jordan, got %q", s.Player.Name)
	}
	if s.Encounter != nil {
		t.Error("A fresh session has no encounter")
	}
	if s.CreatedAt.IsZero() || s.UpdatedAt.IsZero() {
		t.Error("Expected timestamps set")
	}
}

func TestStartEncounter(t *testing.T) {
	s := newTestSession(t)

	if err := s.StartEncounter(zone.DollarBoxes, rng.New(7)); err != nil {
		t.Fatalf("StartEncounter failed: %v", err)
	}

	e := s.ActiveEncounter()
	if e == nil {
		t.Fatal("Expected an active encounter")
	}
	if e.Zone != zone.DollarBoxes {
		t.Errorf("Expected dollar boxes, got %v", e.Zone)
	}
	if len(e.Cards) == 0 {
		t.Error("Expected cards on the table")
	}

	if err := s.StartEncounter(zone.TradeNight, rng.New(7)); err != ErrEncounterActive {
		t.Errorf("Expected ErrEncounterActive, got %v", err)
	}
}

func TestStartEncounter_AfterClose(t *testing.T) {
	s := newTestSession(t)

	if err := s.StartEncounter(zone.DollarBoxes, rng.New(7)); err != nil {
		t.Fatalf("StartEncounter failed: %v", err)
	}
	if err := s.WalkAway(); err != nil {
		t.Fatalf("WalkAway failed: %v", err)
	}
	if s.ActiveEncounter() != nil {
		t.Fatal("Expected no active encounter after walking away")
	}

	// A closed encounter doesn't block the next one.
	if err := s.StartEncounter(zone.TradeNight, rng.New(7)); err != nil {
		t.Fatalf("Expected a fresh start to succeed, got %v", err)
	}
}

func TestActions_NoActiveEncounter(t *testing.T) {
	s := newTestSession(t)
	r := rng.New(7)

	if _, err := s.Persuade(encounter.MoveBuildRapport); err != ErrNoActiveEncounter {
		t.Errorf("Persuade: expected ErrNoActiveEncounter, got %v", err)
	}
	if _, err := s.MakeOffer(50.0, r); err != ErrNoActiveEncounter {
		t.Errorf("MakeOffer: expected ErrNoActiveEncounter, got %v", err)
	}
	if _, err := s.ProposeTrade([]int{0}, 0, []int{0}); err != ErrNoActiveEncounter {
		t.Errorf("ProposeTrade: expected ErrNoActiveEncounter, got %v", err)
	}
	if _, err := s.QuoteSale([]int{0}); err != ErrNoActiveEncounter {
		t.Errorf("QuoteSale: expected ErrNoActiveEncounter, got %v", err)
	}
	if _, err := s.ConfirmSale([]int{0}); err != ErrNoActiveEncounter {
		t.Errorf("ConfirmSale: expected ErrNoActiveEncounter, got %v", err)
	}
	if err := s.WalkAway(); err != ErrNoActiveEncounter {
		t.Errorf("WalkAway: expected ErrNoActiveEncounter, got %v", err)
	}
}

func TestPersuade(t *testing.T) {
	s := newTestSession(t)
	setEncounter(s, zone.ModernShowcases, partner.TypeDealer, partner.MoodNeutral, tableCards())

	eff, err := s.Persuade(encounter.MovePointOutFlaws)
	if err != nil {
		t.Fatalf("Persuade failed: %v", err)
	}
	if eff.ResistanceDelta != -20 {
		t.Errorf("Expected resistance delta -20, got %d", eff.ResistanceDelta)
	}
	if s.Encounter.Resistance != 80 {
		t.Errorf("Expected resistance 80, got %d", s.Encounter.Resistance)
	}
}

func TestMakeOffer_DealFlow(t *testing.T) {
	s := newTestSession(t)
	s.Player.Cash = 500.0
	setEncounter(s, zone.ModernShowcases, partner.TypeDealer, partner.MoodNeutral, tableCards())

	// The full ask always clears the acceptance threshold.
	outcome, err := s.MakeOffer(s.Encounter.TotalAskPrice(), rng.New(7))
	if err != nil {
		t.Fatalf("MakeOffer failed: %v", err)
	}
	if outcome.Result != encounter.OfferAccept {
		t.Fatalf("Expected accept, got %v", outcome.Result)
	}

	if s.Encounter.Status != encounter.StatusDealClosed {
		t.Errorf("Expected deal_closed, got %v", s.Encounter.Status)
	}
	if s.ActiveEncounter() != nil {
		t.Error("A closed deal is no longer active")
	}
	if s.Player.Cash != 500.0-130.0 {
		t.Errorf("Expected cash 370, got %v", s.Player.Cash)
	}
	if len(s.Player.Collection) != 2 {
		t.Errorf("Expected 2 cards in collection, got %d", len(s.Player.Collection))
	}
}

func TestMakeOffer_InsufficientFunds(t *testing.T) {
	s := newTestSession(t)
	s.Player.Cash = 10.0
	setEncounter(s, zone.ModernShowcases, partner.TypeDealer, partner.MoodNeutral, tableCards())

	if _, err := s.MakeOffer(50.0, rng.New(7)); err != ledger.ErrInsufficientFunds {
		t.Errorf("Expected ErrInsufficientFunds, got %v", err)
	}
	if s.Encounter.Round != 1 {
		t.Error("A rejected-at-boundary offer must not advance the round")
	}
}

func TestStartStage_Gates(t *testing.T) {
	s := newTestSession(t)
	r := rng.New(7)

	if err := s.StartStage("food_court", r); err != ErrUnknownMilestone {
		t.Errorf("Expected ErrUnknownMilestone, got %v", err)
	}
	if err := s.StartStage("vintage_titan", r); err != ErrMilestoneLocked {
		t.Errorf("Expected ErrMilestoneLocked at level 1, got %v", err)
	}

	s.Player.Level = 2
	if err := s.StartStage("vintage_titan", r); err != nil {
		t.Fatalf("StartStage failed: %v", err)
	}

	e := s.ActiveEncounter()
	if e == nil {
		t.Fatal("Expected an active stage encounter")
	}
	if e.Mode == nil || e.Mode.Kind != encounter.ModeStage || e.Mode.ID != "vintage_titan" {
		t.Errorf("Unexpected mode: %+v", e.Mode)
	}
	if e.Zone != zone.VintageAlley {
		t.Errorf("Expected vintage alley, got %v", e.Zone)
	}
	// Boss tier doubles the table value: 500 + 1500 base.
	if e.TotalTrueValue() != 4000.0 {
		t.Errorf("Expected total true value 4000, got %v", e.TotalTrueValue())
	}
	if e.MaxResistance != 130 {
		t.Errorf("Expected resistance 130, got %d", e.MaxResistance)
	}
}

func TestStartInfluencer_Gates(t *testing.T) {
	s := newTestSession(t)
	r := rng.New(7)

	if err := s.StartInfluencer("food_court", r); err != ErrUnknownMilestone {
		t.Errorf("Expected ErrUnknownMilestone, got %v", err)
	}
	if err := s.StartInfluencer("box_breaker", r); err != ErrMilestoneLocked {
		t.Errorf("Expected ErrMilestoneLocked at level 1, got %v", err)
	}

	s.Player.Level = 4
	if err := s.StartInfluencer("box_breaker", r); err != nil {
		t.Fatalf("StartInfluencer failed: %v", err)
	}

	e := s.ActiveEncounter()
	if e == nil || e.Mode == nil || e.Mode.Kind != encounter.ModeInfluencer {
		t.Fatalf("Expected an influencer encounter, got %+v", e)
	}
	if e.MaxResistance != 160 {
		t.Errorf("Expected resistance 160, got %d", e.MaxResistance)
	}
}

func TestStartChampion_Gates(t *testing.T) {
	s := newTestSession(t)
	r := rng.New(7)

	if err := s.StartChampion(r); err != ErrMilestoneLocked {
		t.Errorf("Expected ErrMilestoneLocked at level 1, got %v", err)
	}

	s.Player.Level = 8
	if err := s.StartChampion(r); err != nil {
		t.Fatalf("StartChampion failed: %v", err)
	}

	e := s.ActiveEncounter()
	if e == nil || e.Mode == nil || e.Mode.Kind != encounter.ModeChampion {
		t.Fatalf("Expected the champion encounter, got %+v", e)
	}
	if e.MaxResistance != 200 {
		t.Errorf("Expected resistance 200, got %d", e.MaxResistance)
	}
}

func TestStageWin(t *testing.T) {
	s := newTestSession(t)
	s.Player.Level = 2
	s.Player.Cash = 5000.0
	s.Player.Archetype = ledger.ArchetypePCDiehard
	s.Player.NegotiationSkill = 1.0

	if err := s.StartStage("vintage_titan", rng.New(7)); err != nil {
		t.Fatalf("StartStage failed: %v", err)
	}
	s.Encounter.Mood = partner.MoodNeutral

	// Work the boss down before offering: comps soften both the price
	// factor and resistance until the threshold bottoms out.
	for i := 0; i < 8; i++ {
		if _, err := s.Persuade(encounter.MoveShowComparables); err != nil {
			t.Fatalf("Persuade %d failed: %v", i, err)
		}
	}

	outcome, err := s.MakeOffer(3000.0, rng.New(7))
	if err != nil {
		t.Fatalf("MakeOffer failed: %v", err)
	}
	if outcome.Result != encounter.OfferAccept {
		t.Fatalf("Expected accept at threshold %v, got %v", outcome.Threshold, outcome.Result)
	}

	if !s.Player.Stages["vintage_titan"] {
		t.Error("Winning the stage under true value must credit it")
	}
	if s.Player.Cash != 2000.0 {
		t.Errorf("Expected cash 2000, got %v", s.Player.Cash)
	}
	if s.Player.Profit != 1000.0 {
		t.Errorf("Expected profit 1000, got %v", s.Player.Profit)
	}
}

func TestProposeTrade(t *testing.T) {
	s := newTestSession(t)
	s.Player.Cash = 100.0
	s.Player.Collection = []card.Card{{Name: "PC Parallel", TrueValue: 100.0}}
	setEncounter(s, zone.TradeNight, partner.TypeKidCollector, partner.MoodNeutral, tableCards())

	if _, err := s.ProposeTrade(nil, 0, []int{0}); err != ErrEmptySelection {
		t.Errorf("Expected ErrEmptySelection for empty offer, got %v", err)
	}
	if _, err := s.ProposeTrade([]int{0}, 0, nil); err != ErrEmptySelection {
		t.Errorf("Expected ErrEmptySelection for no wanted cards, got %v", err)
	}
	if _, err := s.ProposeTrade([]int{0}, 500.0, []int{0}); err != ledger.ErrInsufficientFunds {
		t.Errorf("Expected ErrInsufficientFunds, got %v", err)
	}

	// 100 in trade value against the 60-value Star QB Rookie: accepted.
	outcome, err := s.ProposeTrade([]int{0}, 0, []int{0})
	if err != nil {
		t.Fatalf("ProposeTrade failed: %v", err)
	}
	if outcome.Result != encounter.TradeAccept {
		t.Fatalf("Expected accept, got %v", outcome.Result)
	}
	if len(s.Player.Collection) != 1 || s.Player.Collection[0].Name != "Star QB Rookie" {
		t.Errorf("Expected the traded-for card, got %v", s.Player.Collection)
	}
	if s.ActiveEncounter() != nil {
		t.Error("An accepted trade closes the encounter")
	}
}

func TestSaleFlow(t *testing.T) {
	s := newTestSession(t)
	s.Player.Collection = []card.Card{{Name: "PC Parallel", TrueValue: 100.0}}
	cashBefore := s.Player.Cash
	setEncounter(s, zone.TradeNight, partner.TypeKidCollector, partner.MoodNeutral, tableCards())

	if _, err := s.QuoteSale(nil); err != ErrEmptySelection {
		t.Errorf("Expected ErrEmptySelection, got %v", err)
	}
	if _, err := s.ConfirmSale(nil); err != ErrEmptySelection {
		t.Errorf("Expected ErrEmptySelection, got %v", err)
	}
	if _, err := s.QuoteSale([]int{5}); err != ledger.ErrBadCardIndex {
		t.Errorf("Expected ErrBadCardIndex, got %v", err)
	}

	quote, err := s.QuoteSale([]int{0})
	if err != nil {
		t.Fatalf("QuoteSale failed: %v", err)
	}
	if quote != 75.0 {
		t.Errorf("Expected quote 75, got %v", quote)
	}
	if len(s.Player.Collection) != 1 || s.Player.Cash != cashBefore {
		t.Error("A quote must not move cards or cash")
	}

	amount, err := s.ConfirmSale([]int{0})
	if err != nil {
		t.Fatalf("ConfirmSale failed: %v", err)
	}
	if amount != quote {
		t.Errorf("Expected confirmed amount %v, got %v", quote, amount)
	}
	if s.Player.Cash != cashBefore+75.0 {
		t.Errorf("Expected cash %v, got %v", cashBefore+75.0, s.Player.Cash)
	}
	if len(s.Player.Collection) != 0 {
		t.Errorf("Expected empty collection, got %v", s.Player.Collection)
	}
	if s.ActiveEncounter() == nil {
		t.Error("Selling must leave the encounter open")
	}
}
