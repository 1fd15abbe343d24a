// Package partner holds the behavior model for negotiation partners:
// partner types, moods, and the per-type constants the encounter engine
// consults when pricing and classifying offers.
package partner

import "github.com/cardshow/deal-engine/pkg/rng"

// Type identifies a kind of negotiation partner.
type Type string

const (
	TypeDealer         Type = "dealer"
	TypeKidCollector   Type = "kid_collector"
	TypeFlipper        Type = "flipper"
	TypeSupercollector Type = "supercollector"
)

// Types lists all known partner types, in draw order.
var Types = []Type{TypeDealer, TypeKidCollector, TypeFlipper, TypeSupercollector}

// DisplayName returns a human-readable name for the partner type.
func (t Type) DisplayName() string {
	switch t {
	case TypeDealer:
		return "Dealer"
	case TypeKidCollector:
		return "Kid Collector"
	case TypeFlipper:
		return "Flipper"
	case TypeSupercollector:
		return "PC Supercollector"
	default:
		return string(t)
	}
}

// Hardnosed reports whether the partner negotiates professionally.
// Hardnosed partners respond to flaw-spotting and lowballs; agreeable
// partners respond to rapport and take lowballs personally.
func (t Type) Hardnosed() bool {
	return t == TypeDealer || t == TypeFlipper
}

// Profile is the constant behavior data for one partner type.
type Profile struct {
	// OveraskLo and OveraskHi bound the multiplier applied to a card's
	// true value when rolling its initial asking price.
	OveraskLo float64 `json:"overask_lo"`
	OveraskHi float64 `json:"overask_hi"`
	// MinAcceptFraction is the floor fraction of aggregate true value the
	// partner will accept in a cash offer.
	MinAcceptFraction float64 `json:"min_accept_fraction"`
	// BuyPercentage is the base fraction of true value the partner pays
	// when buying cards from the player.
	BuyPercentage float64 `json:"buy_percentage"`
}

// profiles is the behavior table. Aggressive overaskers hold firmer floors.
var profiles = map[Type]Profile{
	TypeDealer:         {OveraskLo: 1.2, OveraskHi: 1.4, MinAcceptFraction: 0.90, BuyPercentage: 0.65},
	TypeKidCollector:   {OveraskLo: 1.0, OveraskHi: 1.2, MinAcceptFraction: 0.80, BuyPercentage: 0.70},
	TypeFlipper:        {OveraskLo: 1.25, OveraskHi: 1.5, MinAcceptFraction: 0.95, BuyPercentage: 0.60},
	TypeSupercollector: {OveraskLo: 1.15, OveraskHi: 1.3, MinAcceptFraction: 0.85, BuyPercentage: 0.75},
}

// DefaultProfile is used when a partner type is not in the table, so new
// content degrades gracefully instead of erroring.
var DefaultProfile = Profile{OveraskLo: 1.1, OveraskHi: 1.4, MinAcceptFraction: 0.85, BuyPercentage: 0.65}

// ProfileFor looks up the behavior profile for a partner type, falling
// back to DefaultProfile for unknown types.
func ProfileFor(t Type) Profile {
	if p, ok := profiles[t]; ok {
		return p
	}
	return DefaultProfile
}

// RandomType draws a partner type for a random encounter.
func RandomType(r rng.Rand) Type {
	return Types[r.IntN(len(Types))]
}
