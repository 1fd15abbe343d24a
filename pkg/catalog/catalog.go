// Package catalog generates the basket of cards a partner brings to an
// encounter. Each zone has a fixed table of card tuples; asking prices are
// rolled from the partner's overask range at generation time.
package catalog

import (
	"github.com/cardshow/deal-engine/pkg/card"
	"github.com/cardshow/deal-engine/pkg/partner"
	"github.com/cardshow/deal-engine/pkg/rng"
	"github.com/cardshow/deal-engine/pkg/zone"
)

// seed is one row of a zone's card table: identity plus ground-truth value.
type seed struct {
	name      string
	player    string
	year      int
	set       string
	trueValue float64
}

var zoneSeeds = map[zone.Zone][]seed{
	zone.VintageAlley: {
		{"HOF RB Rookie", "Legend RB", 1958, "Topps", 500.0},
		{"Iconic OF RC", "Legend OF", 1952, "Topps", 1500.0},
	},
	zone.ModernShowcases: {
		{"Star QB Rookie", "Star QB", 2020, "Prizm", 250.0},
		{"Young Star RC", "Young Star", 2022, "Select", 120.0},
	},
	zone.DollarBoxes: {
		{"Sleeper WR", "WR Prospect", 2023, "Donruss", 5.0},
		{"Bench Shooter", "Role Player", 2021, "Hoops", 2.0},
	},
	zone.CorporatePavilion: {
		{"Show Exclusive", "Promo Player", 2025, "National Promo", 40.0},
	},
	zone.TradeNight: {
		{"PC Parallel", "Your PC Guy", 2019, "Optic", 80.0},
		{"Random RC", "Random Rookie", 2021, "Mosaic", 25.0},
	},
}

// defaultSeeds backs unknown zones so new content degrades gracefully.
var defaultSeeds = zoneSeeds[zone.TradeNight]

// Generate produces the cards a partner of the given type offers in a
// zone. True values come from the zone table; each asking price is
// rolled as trueValue x uniform(lo, hi) from the partner's profile.
func Generate(z zone.Zone, t partner.Type, r rng.Rand) []card.Card {
	seeds, ok := zoneSeeds[z]
	if !ok {
		seeds = defaultSeeds
	}

	profile := partner.ProfileFor(t)
	cards := make([]card.Card, 0, len(seeds))
	for _, s := range seeds {
		ask := rng.Round2(s.trueValue * rng.Uniform(r, profile.OveraskLo, profile.OveraskHi))
		cards = append(cards, card.Card{
			Name:      s.name,
			Player:    s.player,
			Year:      s.year,
			Set:       s.set,
			TrueValue: s.trueValue,
			AskPrice:  ask,
		})
	}
	return cards
}
