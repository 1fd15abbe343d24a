package encounter

import (
	"fmt"
	"math"

	"github.com/cardshow/deal-engine/pkg/ledger"
	"github.com/cardshow/deal-engine/pkg/partner"
	"github.com/cardshow/deal-engine/pkg/rng"
)

// OfferResult classifies a cash offer. The ordering reject < counter <
// accept is monotonic in the offer amount for fixed encounter state.
type OfferResult string

const (
	OfferAccept  OfferResult = "accept"
	OfferCounter OfferResult = "counter"
	OfferReject  OfferResult = "reject"
)

// OfferTerms are the player-side discounts folded into the acceptance
// threshold. FractionAdjust shifts the partner's mood-adjusted floor
// (archetype and zone affinities); SkillDiscount is subtracted from the
// effective fraction. Both come from the ledger, keeping the classifier
// parameterized instead of duplicating per-build formulas.
type OfferTerms struct {
	FractionAdjust float64
	SkillDiscount  float64
}

// OfferOutcome is the classification of one cash offer.
type OfferOutcome struct {
	Result       OfferResult `json:"result"`
	Threshold    float64     `json:"threshold"`
	CounterOffer float64     `json:"counter_offer,omitempty"`
}

const (
	// thresholdFloor bounds how far discounts can push the acceptance
	// fraction down.
	thresholdFloor = 0.6
	// counterBand is the fraction of threshold above which the partner
	// counters instead of rejecting outright.
	counterBand = 0.8
	// resistanceFloorRatio bounds how much worn-down resistance can
	// soften the threshold.
	resistanceFloorRatio = 0.5

	counterLo = 1.05
	counterHi = 1.15
)

// OfferThreshold computes the minimum cash offer the partner accepts in
// the current state. The partner's profile floor is adjusted by mood and
// the player's terms, scaled by the price factor and remaining
// resistance, and bounded below by thresholdFloor.
func (e *Encounter) OfferThreshold(terms OfferTerms) float64 {
	profile := partner.ProfileFor(e.PartnerType)
	base := profile.MinAcceptFraction + e.Mood.MinFractionAdjust() + terms.FractionAdjust

	hpFactor := math.Max(resistanceFloorRatio, float64(e.Resistance)/float64(e.MaxResistance))
	effective := base * e.PriceFactor * hpFactor

	return e.TotalTrueValue() * math.Max(thresholdFloor, effective-terms.SkillDiscount)
}

// EvaluateOffer classifies a cash offer against the current encounter
// state. It never touches the player's cash: an accept is finalized
// separately via FinalizeDeal. A counter rolls the partner's counter
// price and advances the round; a reject advances the round and sours
// the partner's mood one step.
func (e *Encounter) EvaluateOffer(offer float64, terms OfferTerms, r rng.Rand) (OfferOutcome, error) {
	if !e.Active() {
		return OfferOutcome{}, ErrInactive
	}

	threshold := e.OfferThreshold(terms)

	switch {
	case offer >= threshold:
		e.log(fmt.Sprintf("You offer $%.2f. They accept.", offer))
		return OfferOutcome{Result: OfferAccept, Threshold: threshold}, nil

	case offer >= threshold*counterBand:
		counter := rng.Round2(offer * rng.Uniform(r, counterLo, counterHi))
		e.Round++
		e.log(fmt.Sprintf("You offer $%.2f. They counter at $%.2f.", offer, counter))
		return OfferOutcome{Result: OfferCounter, Threshold: threshold, CounterOffer: counter}, nil

	default:
		e.Round++
		e.Mood = e.Mood.Escalate()
		e.log(fmt.Sprintf("You offer $%.2f. They reject and seem annoyed.", offer))
		return OfferOutcome{Result: OfferReject, Threshold: threshold}, nil
	}
}

// FinalizeDeal closes the encounter as a purchase at pricePaid. The cards
// on the table transfer to the player's collection, cash and profit are
// settled, negotiation skill bumps, and experience is awarded on the
// margin. If this is a milestone encounter and the player didn't overpay,
// the milestone is credited exactly once.
func (e *Encounter) FinalizeDeal(pricePaid float64, l *ledger.Ledger) error {
	if !e.Active() {
		return ErrInactive
	}
	if pricePaid > l.Cash {
		return ledger.ErrInsufficientFunds
	}

	totalTrue := e.TotalTrueValue()
	margin := totalTrue - pricePaid

	l.Cash -= pricePaid
	l.Profit += margin
	l.Collection = append(l.Collection, e.Cards...)
	e.Cards = nil
	l.BumpSkill()

	e.Status = StatusDealClosed
	e.log(fmt.Sprintf("Deal done at $%.2f. Estimated value $%.2f.", pricePaid, totalTrue))

	l.AwardDealXP(e.Zone, margin, ledger.DealPurchase)

	if e.Mode != nil && margin >= 0 {
		switch e.Mode.Kind {
		case ModeStage:
			l.CreditStage(e.Mode.ID)
		case ModeInfluencer:
			l.CreditInfluencer(e.Mode.ID)
		case ModeChampion:
			l.CreditChampion()
		}
	}
	return nil
}
