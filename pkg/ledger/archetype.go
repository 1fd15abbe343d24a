package ledger

import (
	"github.com/cardshow/deal-engine/pkg/partner"
	"github.com/cardshow/deal-engine/pkg/rng"
	"github.com/cardshow/deal-engine/pkg/zone"
)

// Archetype is the collector build rolled at the start of a trip. Each
// build trades starting cash against negotiation skill and carries
// negotiation affinities for certain zones or partner types.
type Archetype string

const (
	ArchetypeBudgetGrinder     Archetype = "budget_grinder"
	ArchetypePCDiehard         Archetype = "pc_diehard"
	ArchetypeFlipperInTraining Archetype = "flipper_in_training"
)

// Archetypes lists all rollable builds, in draw order.
var Archetypes = []Archetype{ArchetypeBudgetGrinder, ArchetypePCDiehard, ArchetypeFlipperInTraining}

// DisplayName returns a human-readable build name.
func (a Archetype) DisplayName() string {
	switch a {
	case ArchetypeBudgetGrinder:
		return "Budget Grinder"
	case ArchetypePCDiehard:
		return "PC Diehard"
	case ArchetypeFlipperInTraining:
		return "Flipper-in-Training"
	default:
		return string(a)
	}
}

// Summary returns the build's title and flavor description.
func (a Archetype) Summary() (title, description string) {
	switch a {
	case ArchetypeBudgetGrinder:
		return "The Spreadsheet Warrior",
			"You plan every show like a spreadsheet: budget dialed in, comps memorized, and a firm rule that the hobby must fund itself."
	case ArchetypePCDiehard:
		return "The True Believer",
			"You're obsessed with one story told in cardboard: your player, your team, your era. Profit is nice, but the real win is going home saying you finally found it."
	case ArchetypeFlipperInTraining:
		return "The Hustle Apprentice",
			"You see the hobby as a living market. You chase comps, edges, and arbitrage, dreaming of turning a small case into a big story."
	default:
		return "", ""
	}
}

var archetypeStats = map[Archetype]struct {
	cash         float64
	skill        float64
	profitTarget float64
}{
	ArchetypeBudgetGrinder:     {cash: 1500.0, skill: 0.8, profitTarget: 400.0},
	ArchetypePCDiehard:         {cash: 800.0, skill: 1.0, profitTarget: 200.0},
	ArchetypeFlipperInTraining: {cash: 1000.0, skill: 1.4, profitTarget: 600.0},
}

func rollArchetype(r rng.Rand) Archetype {
	return Archetypes[r.IntN(len(Archetypes))]
}

// NegotiationEdge returns the player's discounts against a specific
// partner in a specific zone: a fraction adjustment applied to the
// partner's mood-adjusted acceptance floor, and a flat skill discount
// subtracted from the effective fraction. Both terms are pluggable
// strategy parameters consumed by the offer classifier.
func (l *Ledger) NegotiationEdge(t partner.Type, z zone.Zone) (fractionAdjust, skillDiscount float64) {
	if l.Archetype == ArchetypeBudgetGrinder && z == zone.DollarBoxes {
		fractionAdjust -= 0.03
	}
	if l.Archetype == ArchetypeFlipperInTraining && (t == partner.TypeDealer || t == partner.TypeFlipper) {
		fractionAdjust -= 0.03
	}
	skillDiscount = 0.03 * (l.NegotiationSkill - 1)
	return fractionAdjust, skillDiscount
}
