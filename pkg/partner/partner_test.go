package partner

import (
	"testing"

	"github.com/cardshow/deal-engine/pkg/rng"
)

func TestProfileFor(t *testing.T) {
	tests := []struct {
		partner Type
		want    Profile
	}{
		{TypeDealer, Profile{OveraskLo: 1.2, OveraskHi: 1.4, MinAcceptFraction: 0.90, BuyPercentage: 0.65}},
		{TypeKidCollector, Profile{OveraskLo: 1.0, OveraskHi: 1.2, MinAcceptFraction: 0.80, BuyPercentage: 0.70}},
		{TypeFlipper, Profile{OveraskLo: 1.25, OveraskHi: 1.5, MinAcceptFraction: 0.95, BuyPercentage: 0.60}},
		{TypeSupercollector, Profile{OveraskLo: 1.15, OveraskHi: 1.3, MinAcceptFraction: 0.85, BuyPercentage: 0.75}},
	}

	for _, tt := range tests {
		if got := ProfileFor(tt.partner); got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.partner, got, tt.want)
		}
	}

	if got := ProfileFor(Type("janitor")); got != DefaultProfile {
		t.Errorf("Expected default profile for unknown type, got %+v", got)
	}
}

func TestHardnosed(t *testing.T) {
	if !TypeDealer.Hardnosed() || !TypeFlipper.Hardnosed() {
		t.Error("Dealers and flippers negotiate professionally")
	}
	if TypeKidCollector.Hardnosed() || TypeSupercollector.Hardnosed() {
		t.Error("Kids and supercollectors are agreeable")
	}
}

func TestDisplayName(t *testing.T) {
	if TypeSupercollector.DisplayName() != "PC Supercollector" {
		t.Errorf("Unexpected name %q", TypeSupercollector.DisplayName())
	}
	if Type("janitor").DisplayName() != "janitor" {
		t.Error("Unknown types fall back to the raw value")
	}
}

func TestMoodAdjusts(t *testing.T) {
	tests := []struct {
		mood     Mood
		wantFrac float64
		wantBuy  float64
	}{
		{MoodHappy, -0.05, 0.05},
		{MoodNeutral, 0, 0},
		{MoodGrumpy, 0.05, -0.05},
	}

	for _, tt := range tests {
		if got := tt.mood.MinFractionAdjust(); got != tt.wantFrac {
			t.Errorf("%s: expected fraction adjust %v, got %v", tt.mood, tt.wantFrac, got)
		}
		if got := tt.mood.BuyAdjust(); got != tt.wantBuy {
			t.Errorf("%s: expected buy adjust %v, got %v", tt.mood, tt.wantBuy, got)
		}
	}
}

func TestEscalate(t *testing.T) {
	m := MoodHappy
	if m = m.Escalate(); m != MoodNeutral {
		t.Errorf("Expected neutral, got %v", m)
	}
	if m = m.Escalate(); m != MoodGrumpy {
		t.Errorf("Expected grumpy, got %v", m)
	}
	if m = m.Escalate(); m != MoodGrumpy {
		t.Errorf("Grumpy is terminal, got %v", m)
	}
}

func TestRandomDraws(t *testing.T) {
	r := rng.New(3)
	for i := 0; i < 20; i++ {
		pt := RandomType(r)
		found := false
		for _, known := range Types {
			if pt == known {
				found = true
			}
		}
		if !found {
			t.Fatalf("RandomType returned unknown type %v", pt)
		}

		m := RandomMood(r)
		if m != MoodHappy && m != MoodNeutral && m != MoodGrumpy {
			t.Fatalf("RandomMood returned unknown mood %v", m)
		}
	}
}
