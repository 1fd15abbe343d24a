package encounter

import (
	"fmt"

	"github.com/cardshow/deal-engine/pkg/card"
	"github.com/cardshow/deal-engine/pkg/ledger"
	"github.com/cardshow/deal-engine/pkg/partner"
	"github.com/cardshow/deal-engine/pkg/rng"
	"github.com/cardshow/deal-engine/pkg/zone"
)

const (
	buyPctMin = 0.4
	buyPctMax = 0.9
)

// BuyPercentage is the fraction of true value this partner pays when
// buying from the player, after mood and zone adjustments, clamped to
// [0.4, 0.9].
func (e *Encounter) BuyPercentage() float64 {
	pct := partner.ProfileFor(e.PartnerType).BuyPercentage
	pct += e.Mood.BuyAdjust()
	pct += zone.SaleAdjust(e.Zone)

	if pct < buyPctMin {
		pct = buyPctMin
	}
	if pct > buyPctMax {
		pct = buyPctMax
	}
	return pct
}

// QuoteSale computes the cash the partner would pay for the given cards.
// Pure: nothing changes until the player confirms.
func (e *Encounter) QuoteSale(cards []card.Card) (float64, error) {
	if !e.Active() {
		return 0, ErrInactive
	}
	return rng.Round2(card.TotalTrueValue(cards) * e.BuyPercentage()), nil
}

// ConfirmSale executes a previously quoted sale: the cards at the given
// collection indices go to the partner, the quoted amount is added to the
// player's cash, and sale-rate experience is awarded on the margin. The
// encounter stays active; selling doesn't cost the partner any patience.
func (e *Encounter) ConfirmSale(indices []int, l *ledger.Ledger) (float64, error) {
	if !e.Active() {
		return 0, ErrInactive
	}

	cards, err := l.CardsAt(indices)
	if err != nil {
		return 0, err
	}

	trueSold := card.TotalTrueValue(cards)
	amount := rng.Round2(trueSold * e.BuyPercentage())

	l.RemoveAt(indices)
	l.Cash += amount

	e.log(fmt.Sprintf("You sell %d card(s) for $%.2f (est value $%.2f).", len(cards), amount, trueSold))
	l.AwardDealXP(e.Zone, amount-trueSold, ledger.DealSale)

	return amount, nil
}
