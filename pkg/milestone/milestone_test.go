package milestone

import (
	"testing"

	"github.com/cardshow/deal-engine/pkg/zone"
)

func TestStageByID(t *testing.T) {
	s, ok := StageByID("vintage_titan")
	if !ok {
		t.Fatal("Expected vintage_titan to exist")
	}
	if s.Zone != zone.VintageAlley || s.RequiredLevel != 2 {
		t.Errorf("Unexpected stage: %+v", s)
	}

	if _, ok := StageByID("food_court"); ok {
		t.Error("Expected lookup miss for unknown stage")
	}
}

func TestInfluencerByID(t *testing.T) {
	inf, ok := InfluencerByID("box_breaker")
	if !ok {
		t.Fatal("Expected box_breaker to exist")
	}
	if inf.RequiredLevel != 4 {
		t.Errorf("Expected required level 4, got %d", inf.RequiredLevel)
	}

	if _, ok := InfluencerByID("food_court"); ok {
		t.Error("Expected lookup miss for unknown influencer")
	}
}

func TestUnlocked(t *testing.T) {
	if Unlocked(2, 1) {
		t.Error("Level 1 must not clear a level 2 gate")
	}
	if !Unlocked(2, 2) || !Unlocked(2, 5) {
		t.Error("Meeting or exceeding the gate unlocks it")
	}
}

func TestTables(t *testing.T) {
	if len(Stages) != 4 {
		t.Errorf("Expected 4 stages, got %d", len(Stages))
	}
	if len(Influencers) != 4 {
		t.Errorf("Expected 4 influencers, got %d", len(Influencers))
	}

	// Gates rise through the influencer ladder to the champion.
	prev := 0
	for _, inf := range Influencers {
		if inf.RequiredLevel <= prev {
			t.Errorf("Influencer %s gate %d does not rise past %d", inf.ID, inf.RequiredLevel, prev)
		}
		prev = inf.RequiredLevel
	}
	if Champion.RequiredLevel <= prev {
		t.Errorf("Champion gate %d does not top the ladder", Champion.RequiredLevel)
	}
}
