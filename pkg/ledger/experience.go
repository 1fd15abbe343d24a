package ledger

import "github.com/cardshow/deal-engine/pkg/zone"

// DealKind selects the experience rate for a closed deal.
type DealKind int

const (
	DealPurchase DealKind = iota
	DealTrade
	DealSale
)

// levelThresholds maps cumulative XP to level. Level n is reached at
// levelThresholds[n-1]; the table is monotonic non-decreasing.
var levelThresholds = []int{0, 50, 150, 300, 500, 750}

// timeBlocks is the flavor clock advanced on level-up.
var timeBlocks = []string{"Morning", "Afternoon", "Evening"}

const (
	xpBase       = 5
	xpMarginDiv  = 20.0
	xpMarginCap  = 40.0
	xpTradeBonus = 1.3
	xpSaleBonus  = 0.9
	stageXP      = 50
	influencerXP = 75
	championXP   = 100
)

// AddXP adds experience and recomputes the level from the threshold
// table. Returns true if the player leveled up; level-ups advance the
// flavor clock.
func (l *Ledger) AddXP(amount int) bool {
	if amount <= 0 {
		return false
	}
	l.XP += amount

	newLevel := l.Level
	for i, t := range levelThresholds {
		if l.XP >= t {
			newLevel = i + 1
		}
	}
	if newLevel <= l.Level {
		return false
	}
	l.Level = newLevel
	l.advanceClock()
	return true
}

// AwardDealXP grants experience for a closed deal. The award scales with
// margin (clamped), the zone's XP factor, and the deal kind. Returns the
// XP granted.
func (l *Ledger) AwardDealXP(z zone.Zone, margin float64, kind DealKind) int {
	marginXP := margin / xpMarginDiv
	if marginXP < 0 {
		marginXP = 0
	}
	if marginXP > xpMarginCap {
		marginXP = xpMarginCap
	}

	bonus := 1.0
	switch kind {
	case DealTrade:
		bonus = xpTradeBonus
	case DealSale:
		bonus = xpSaleBonus
	}

	total := int((float64(xpBase) + marginXP) * zone.XPFactor(z) * bonus)
	if total > 0 {
		l.AddXP(total)
	}
	return total
}

// CreditStage records a big-stage win. Idempotent: the flat XP bonus is
// granted only the first time. Returns true if newly credited.
func (l *Ledger) CreditStage(id string) bool {
	if l.Stages[id] {
		return false
	}
	l.Stages[id] = true
	l.AddXP(stageXP)
	return true
}

// CreditInfluencer records an influencer win. Idempotent.
func (l *Ledger) CreditInfluencer(id string) bool {
	if l.Influencers[id] {
		return false
	}
	l.Influencers[id] = true
	l.AddXP(influencerXP)
	return true
}

// CreditChampion records beating the champion. Idempotent.
func (l *Ledger) CreditChampion() bool {
	if l.ChampionBeaten {
		return false
	}
	l.ChampionBeaten = true
	l.AddXP(championXP)
	return true
}

func (l *Ledger) advanceClock() {
	for i, b := range timeBlocks {
		if b == l.TimeBlock {
			if i < len(timeBlocks)-1 {
				l.TimeBlock = timeBlocks[i+1]
			} else {
				l.TimeBlock = timeBlocks[0]
				l.Day++
			}
			return
		}
	}
	l.TimeBlock = timeBlocks[0]
}
