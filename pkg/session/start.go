package session

import (
	"fmt"

	"github.com/cardshow/deal-engine/pkg/card"
	"github.com/cardshow/deal-engine/pkg/catalog"
	"github.com/cardshow/deal-engine/pkg/encounter"
	"github.com/cardshow/deal-engine/pkg/milestone"
	"github.com/cardshow/deal-engine/pkg/partner"
	"github.com/cardshow/deal-engine/pkg/rng"
	"github.com/cardshow/deal-engine/pkg/zone"
)

// Toughness multipliers per milestone tier.
const (
	stageToughness      = 1.3
	influencerToughness = 1.6
	championToughness   = 2.0
)

// StartEncounter walks the player into a zone and opens a random
// encounter: random partner type, random mood, zone catalog.
func (s *Session) StartEncounter(z zone.Zone, r rng.Rand) error {
	if s.ActiveEncounter() != nil {
		return ErrEncounterActive
	}

	t := partner.RandomType(r)
	mood := partner.RandomMood(r)
	cards := catalog.Generate(z, t, r)

	s.Encounter = encounter.New(z, t, mood, cards, 1.0, nil)
	return nil
}

// StartStage opens a big-stage encounter. The stage's boss doubles the
// catalog's true values and re-rolls asking prices in a tighter, higher
// band before the encounter engine sees the cards.
func (s *Session) StartStage(id string, r rng.Rand) error {
	if s.ActiveEncounter() != nil {
		return ErrEncounterActive
	}

	stage, ok := milestone.StageByID(id)
	if !ok {
		return ErrUnknownMilestone
	}
	if !milestone.Unlocked(stage.RequiredLevel, s.Player.Level) {
		return ErrMilestoneLocked
	}

	t := partner.TypeSupercollector
	mood := partner.RandomMood(r)
	cards := catalog.Generate(stage.Zone, t, r)
	scaleCards(cards, 2, 1.1, 1.3, r)

	mode := &encounter.Mode{Kind: encounter.ModeStage, ID: stage.ID}
	s.Encounter = encounter.New(stage.Zone, t, mood, cards, stageToughness, mode)
	s.Encounter.History[0] = fmt.Sprintf("You sit down at the %s with %s.", stage.Name, stage.Boss)
	return nil
}

// StartInfluencer opens an elite influencer encounter: a neutral Dealer
// in Modern Showcases with triple-value cards.
func (s *Session) StartInfluencer(id string, r rng.Rand) error {
	if s.ActiveEncounter() != nil {
		return ErrEncounterActive
	}

	inf, ok := milestone.InfluencerByID(id)
	if !ok {
		return ErrUnknownMilestone
	}
	if !milestone.Unlocked(inf.RequiredLevel, s.Player.Level) {
		return ErrMilestoneLocked
	}

	t := partner.TypeDealer
	cards := catalog.Generate(zone.ModernShowcases, t, r)
	scaleCards(cards, 3, 1.05, 1.25, r)

	mode := &encounter.Mode{Kind: encounter.ModeInfluencer, ID: inf.ID}
	s.Encounter = encounter.New(zone.ModernShowcases, t, partner.MoodNeutral, cards, influencerToughness, mode)
	s.Encounter.History[0] = fmt.Sprintf("You're on camera with %s (%s).", inf.Boss, inf.Name)
	return nil
}

// StartChampion opens the final encounter against the National Whale.
func (s *Session) StartChampion(r rng.Rand) error {
	if s.ActiveEncounter() != nil {
		return ErrEncounterActive
	}

	champ := milestone.Champion
	if !milestone.Unlocked(champ.RequiredLevel, s.Player.Level) {
		return ErrMilestoneLocked
	}

	t := partner.TypeSupercollector
	cards := catalog.Generate(zone.ModernShowcases, t, r)
	scaleCards(cards, 4, 1.05, 1.2, r)

	mode := &encounter.Mode{Kind: encounter.ModeChampion, ID: champ.ID}
	s.Encounter = encounter.New(zone.ModernShowcases, t, partner.MoodNeutral, cards, championToughness, mode)
	s.Encounter.History[0] = fmt.Sprintf("You approach %s - the biggest buyer in the room.", champ.Boss)
	return nil
}

// scaleCards applies the boss-tier transform: true values scale up and
// asking prices re-roll in a tighter, higher band. Runs before the
// encounter is created; the encounter engine never rescales cards.
func scaleCards(cards []card.Card, factor float64, askLo, askHi float64, r rng.Rand) {
	for i := range cards {
		cards[i].TrueValue *= factor
		cards[i].AskPrice = rng.Round2(cards[i].TrueValue * rng.Uniform(r, askLo, askHi))
	}
}
