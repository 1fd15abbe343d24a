package encounter

import (
	"fmt"
)

// Move is a persuasion action the player can take during a round.
type Move string

const (
	MoveBuildRapport    Move = "build_rapport"
	MovePointOutFlaws   Move = "point_out_flaws"
	MoveLowballProbe    Move = "lowball_probe"
	MoveShowComparables Move = "show_comparables"
)

// Moves lists all persuasion moves.
var Moves = []Move{MoveBuildRapport, MovePointOutFlaws, MoveLowballProbe, MoveShowComparables}

// ErrUnknownMove is returned for a move not in the table. Moves mutate
// state, so unknown values fail hard rather than falling back.
var ErrUnknownMove = fmt.Errorf("unknown persuasion move")

// MoveEffect is the outcome of one persuasion action, after clamping.
type MoveEffect struct {
	ResistanceDelta  int     `json:"resistance_delta"`
	PriceFactorDelta float64 `json:"price_factor_delta"`
	PatienceDelta    int     `json:"patience_delta"`
	Line             string  `json:"line"`
}

// ApplyMove applies exactly one persuasion action. The effect depends on
// the move and the partner type: hardnosed partners respect flaw-spotting
// and tolerate lowballs, agreeable partners open up to rapport and take
// lowballs personally. Resistance and price factor are clamped; if the
// partner's patience runs out, the encounter ends.
func (e *Encounter) ApplyMove(m Move) (MoveEffect, error) {
	if !e.Active() {
		return MoveEffect{}, ErrInactive
	}

	eff, err := moveEffect(m, e)
	if err != nil {
		return MoveEffect{}, err
	}

	e.Resistance += eff.ResistanceDelta
	e.clampResistance()
	e.PriceFactor += eff.PriceFactorDelta
	e.clampPriceFactor()
	e.Patience += eff.PatienceDelta
	e.log(eff.Line)

	e.exhaustPatience()
	return eff, nil
}

func moveEffect(m Move, e *Encounter) (MoveEffect, error) {
	name := e.PartnerType.DisplayName()

	switch m {
	case MoveBuildRapport:
		if e.PartnerType.Hardnosed() {
			return MoveEffect{
				ResistanceDelta:  -5,
				PriceFactorDelta: 0.05,
				Line:             fmt.Sprintf("%s: 'Sure, but let's not waste time.' (They nudge their ask up slightly.)", name),
			}, nil
		}
		return MoveEffect{
			ResistanceDelta: -15,
			Line:            fmt.Sprintf("%s: 'Haha, love talking cards. I can work with you a bit.' (Deal resistance drops.)", name),
		}, nil

	case MovePointOutFlaws:
		if e.PartnerType.Hardnosed() {
			return MoveEffect{
				ResistanceDelta:  -20,
				PriceFactorDelta: -0.08,
				Line:             fmt.Sprintf("%s: 'Fair point on the centering. I can come down some.' (Price softens.)", name),
			}, nil
		}
		return MoveEffect{
			ResistanceDelta: 10,
			Line:            fmt.Sprintf("%s: 'Hey, I love this card. Don't knock it.' (They get a bit defensive.)", name),
		}, nil

	case MoveLowballProbe:
		if e.PartnerType.Hardnosed() {
			return MoveEffect{
				ResistanceDelta:  -10,
				PriceFactorDelta: 0.05,
				PatienceDelta:    -1,
				Line:             fmt.Sprintf("%s: 'That's low, but now we're talking numbers.' (They get a bit annoyed; ask creeps up.)", name),
			}, nil
		}
		return MoveEffect{
			ResistanceDelta: 15,
			PatienceDelta:   -2,
			Line:            fmt.Sprintf("%s: 'That feels disrespectful.' (They might walk sooner.)", name),
		}, nil

	case MoveShowComparables:
		return MoveEffect{
			ResistanceDelta:  -12,
			PriceFactorDelta: -0.05,
			Line:             fmt.Sprintf("%s: 'Okay, those comps are solid.' (Ask comes down a bit.)", name),
		}, nil
	}

	return MoveEffect{}, ErrUnknownMove
}
