package ledger

import (
	"testing"

	"github.com/cardshow/deal-engine/pkg/zone"
)

func TestAddXP_Levels(t *testing.T) {
	l := New("Jordan", "", "", pickRand{0})

	if l.AddXP(49) {
		t.Error("49 XP must not level up")
	}
	if l.Level != 1 {
		t.Errorf("Expected level 1, got %d", l.Level)
	}

	if !l.AddXP(1) {
		t.Error("Reaching 50 XP must level up")
	}
	if l.Level != 2 {
		t.Errorf("Expected level 2, got %d", l.Level)
	}

	// A big award can jump multiple levels at once.
	if !l.AddXP(700) {
		t.Error("Reaching 750 XP must level up")
	}
	if l.Level != 6 {
		t.Errorf("Expected level 6, got %d", l.Level)
	}
}

func TestAddXP_NonPositive(t *testing.T) {
	l := New("Jordan", "", "", pickRand{0})

	if l.AddXP(0) || l.AddXP(-10) {
		t.Error("Non-positive XP must be ignored")
	}
	if l.XP != 0 {
		t.Errorf("Expected 0 XP, got %d", l.XP)
	}
}

func TestAddXP_AdvancesClock(t *testing.T) {
	l := New("Jordan", "", "", pickRand{0})

	l.AddXP(50) // level 2
	if l.TimeBlock != "Afternoon" || l.Day != 1 {
		t.Errorf("Expected day 1 Afternoon, got day %d %s", l.Day, l.TimeBlock)
	}

	l.AddXP(100) // level 3
	if l.TimeBlock != "Evening" || l.Day != 1 {
		t.Errorf("Expected day 1 Evening, got day %d %s", l.Day, l.TimeBlock)
	}

	l.AddXP(150) // level 4, the clock wraps to a new day
	if l.TimeBlock != "Morning" || l.Day != 2 {
		t.Errorf("Expected day 2 Morning, got day %d %s", l.Day, l.TimeBlock)
	}
}

func TestAwardDealXP(t *testing.T) {
	tests := []struct {
		name   string
		zone   zone.Zone
		margin float64
		kind   DealKind
		want   int
	}{
		{"purchase dollar boxes", zone.DollarBoxes, 100.0, DealPurchase, 8},
		{"trade bonus", zone.DollarBoxes, 100.0, DealTrade, 10},
		{"sale rate", zone.DollarBoxes, 100.0, DealSale, 7},
		{"vintage teaches more", zone.VintageAlley, 100.0, DealPurchase, 13},
		{"margin capped", zone.DollarBoxes, 10000.0, DealPurchase, 36},
		{"negative margin still pays base", zone.DollarBoxes, -50.0, DealPurchase, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New("Jordan", "", "", pickRand{0})
			got := l.AwardDealXP(tt.zone, tt.margin, tt.kind)
			if got != tt.want {
				t.Errorf("Expected %d XP, got %d", tt.want, got)
			}
			if l.XP != tt.want {
				t.Errorf("Expected XP recorded on the ledger, got %d", l.XP)
			}
		})
	}
}

func TestCreditStage(t *testing.T) {
	l := New("Jordan", "", "", pickRand{0})

	if !l.CreditStage("vintage_titan") {
		t.Error("First credit must report newly credited")
	}
	if l.XP != 50 {
		t.Errorf("Expected 50 XP, got %d", l.XP)
	}

	if l.CreditStage("vintage_titan") {
		t.Error("Second credit must be a no-op")
	}
	if l.XP != 50 {
		t.Errorf("Expected XP unchanged, got %d", l.XP)
	}
}

func TestCreditInfluencer(t *testing.T) {
	l := New("Jordan", "", "", pickRand{0})

	if !l.CreditInfluencer("box_breaker") {
		t.Error("First credit must report newly credited")
	}
	if l.XP != 75 {
		t.Errorf("Expected 75 XP, got %d", l.XP)
	}
	if l.CreditInfluencer("box_breaker") {
		t.Error("Second credit must be a no-op")
	}
}

func TestCreditChampion(t *testing.T) {
	l := New("Jordan", "", "", pickRand{0})

	if !l.CreditChampion() {
		t.Error("First credit must report newly credited")
	}
	if l.XP != 100 {
		t.Errorf("Expected 100 XP, got %d", l.XP)
	}
	if !l.ChampionBeaten {
		t.Error("Expected champion flag set")
	}
	if l.CreditChampion() {
		t.Error("Second credit must be a no-op")
	}
}
