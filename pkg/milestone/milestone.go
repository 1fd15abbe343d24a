// Package milestone defines the big-stage, influencer, and champion
// opponents and their level gates. The tables are static content; the
// session layer checks gates and applies the boss-tier card transforms.
package milestone

import "github.com/cardshow/deal-engine/pkg/zone"

// Stage is a big-stage table: a named boss in a fixed zone, unlocked at a
// level.
type Stage struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Boss          string    `json:"boss"`
	Zone          zone.Zone `json:"zone"`
	RequiredLevel int       `json:"required_level"`
	Description   string    `json:"description"`
}

// Stages lists the four big stages.
var Stages = []Stage{
	{
		ID:            "vintage_titan",
		Name:          "Vintage Titan Table",
		Boss:          "Vintage Titan",
		Zone:          zone.VintageAlley,
		RequiredLevel: 2,
		Description:   "A legendary vintage dealer who only respects sharp negotiation on 50s and 60s cardboard.",
	},
	{
		ID:            "chrome_master",
		Name:          "Chrome Master Showcase",
		Boss:          "Chrome Master",
		Zone:          zone.ModernShowcases,
		RequiredLevel: 2,
		Description:   "A slab-heavy modern guru with cases full of Prizm, Select, and Optic.",
	},
	{
		ID:            "dollar_box_duke",
		Name:          "Dollar Box Gauntlet",
		Boss:          "Dollar Box Duke",
		Zone:          zone.DollarBoxes,
		RequiredLevel: 3,
		Description:   "The master of value boxes, where sleepers hide and margins are made.",
	},
	{
		ID:            "trade_night_boss",
		Name:          "Trade Night Main Event",
		Boss:          "Trade Night Boss",
		Zone:          zone.TradeNight,
		RequiredLevel: 3,
		Description:   "Runs the biggest trade night; binder-for-binder deals only.",
	},
}

// StageByID looks up a stage definition.
func StageByID(id string) (Stage, bool) {
	for _, s := range Stages {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// Influencer is one of the four elite opponents between the stages and
// the champion.
type Influencer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Boss          string `json:"boss"`
	RequiredLevel int    `json:"required_level"`
	Description   string `json:"description"`
}

// Influencers lists the elite four, in intended order.
var Influencers = []Influencer{
	{
		ID:            "box_breaker",
		Name:          "Influencer 1: Box Breaker",
		Boss:          "Box Breaker",
		RequiredLevel: 4,
		Description:   "A streamer who wants you to buy wax instead of singles. Can you negotiate a fair rip?",
	},
	{
		ID:            "content_flipper",
		Name:          "Influencer 2: Content Flipper",
		Boss:          "Content Flipper",
		RequiredLevel: 5,
		Description:   "Lives by comps and thumbnails; can you get a real deal past the content?",
	},
	{
		ID:            "analytics_nerd",
		Name:          "Influencer 3: Analytics Nerd",
		Boss:          "Analytics Nerd",
		RequiredLevel: 6,
		Description:   "Charts, pop reports, and spreadsheets. Your every move is being modeled.",
	},
	{
		ID:            "show_vlogger",
		Name:          "Influencer 4: Show Vlogger",
		Boss:          "Show Vlogger",
		RequiredLevel: 7,
		Description:   "Cares about the story of the deal more than the margin; style matters.",
	},
}

// InfluencerByID looks up an influencer definition.
func InfluencerByID(id string) (Influencer, bool) {
	for _, inf := range Influencers {
		if inf.ID == id {
			return inf, true
		}
	}
	return Influencer{}, false
}

// Champion is the final opponent.
var Champion = Influencer{
	ID:            "national_whale",
	Name:          "The National Whale",
	Boss:          "The National Whale",
	RequiredLevel: 8,
	Description:   "The biggest buyer in the room with impossible showcases and zero tolerance for weak deals.",
}

// Unlocked reports whether a player level clears a milestone's gate.
func Unlocked(requiredLevel, playerLevel int) bool {
	return playerLevel >= requiredLevel
}
