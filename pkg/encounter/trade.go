package encounter

import (
	"fmt"

	"github.com/cardshow/deal-engine/pkg/card"
	"github.com/cardshow/deal-engine/pkg/ledger"
)

// TradeResult classifies a card-plus-cash trade offer.
type TradeResult string

const (
	TradeAccept  TradeResult = "accept"
	TradeCounter TradeResult = "counter"
	TradeReject  TradeResult = "reject"
)

// TradeOutcome is the classification of one trade offer.
type TradeOutcome struct {
	Result       TradeResult `json:"result"`
	OfferedValue float64     `json:"offered_value"`
	TargetValue  float64     `json:"target_value"`
}

const (
	tradeAcceptRatio  = 0.9
	tradeCounterRatio = 0.7
)

// EvaluateTrade evaluates the player's cards (by collection index) plus
// cash against the wanted cards on the table (by table index). On accept
// the swap executes: offered cards leave the collection, wanted cards
// join it, the cash sweetener is deducted, trade-rate experience is
// awarded, and the encounter closes. A counter stiffens the partner's
// price factor and resistance; a reject costs patience and can end the
// encounter. Index bounds and funds are validated by the caller.
func (e *Encounter) EvaluateTrade(offeredIdx []int, cashAdd float64, wantedIdx []int, l *ledger.Ledger) (TradeOutcome, error) {
	if !e.Active() {
		return TradeOutcome{}, ErrInactive
	}
	if cashAdd > l.Cash {
		return TradeOutcome{}, ledger.ErrInsufficientFunds
	}

	offered, err := l.CardsAt(offeredIdx)
	if err != nil {
		return TradeOutcome{}, err
	}
	wanted, err := e.CardsAt(wantedIdx)
	if err != nil {
		return TradeOutcome{}, err
	}

	offeredValue := card.TotalTrueValue(offered) + cashAdd
	targetValue := card.TotalTrueValue(wanted)

	e.log(fmt.Sprintf("You offer %d card(s) + $%.2f for %d of their card(s) (your offer est $%.2f vs their est $%.2f).",
		len(offered), cashAdd, len(wanted), offeredValue, targetValue))

	outcome := TradeOutcome{OfferedValue: offeredValue, TargetValue: targetValue}

	switch {
	case offeredValue >= targetValue*tradeAcceptRatio:
		outcome.Result = TradeAccept

		l.RemoveAt(offeredIdx)
		taken := e.removeCards(wantedIdx)
		l.Collection = append(l.Collection, taken...)
		l.Cash -= cashAdd

		e.Status = StatusDealClosed
		e.log("They like the trade and shake on it.")
		l.AwardDealXP(e.Zone, targetValue-offeredValue, ledger.DealTrade)

	case offeredValue >= targetValue*tradeCounterRatio:
		outcome.Result = TradeCounter
		e.PriceFactor += 0.05
		e.Resistance += 10
		e.clampResistance()
		e.Round++
		e.log(fmt.Sprintf("%s: 'You're close, but I'd need more to move these.'", e.PartnerType.DisplayName()))

	default:
		outcome.Result = TradeReject
		e.Resistance += 15
		e.clampResistance()
		e.Patience--
		e.Round++
		e.log(fmt.Sprintf("%s: 'That trade's not even close.' (They get tougher.)", e.PartnerType.DisplayName()))
		e.exhaustPatience()
	}

	return outcome, nil
}
