package partner

import "github.com/cardshow/deal-engine/pkg/rng"

// Mood is the partner's current temperament. It shifts the acceptance
// floor and the price paid when buying from the player.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodGrumpy  Mood = "grumpy"
)

// Moods lists all moods, in draw order.
var Moods = []Mood{MoodHappy, MoodNeutral, MoodGrumpy}

// MinFractionAdjust is added to the profile's MinAcceptFraction. Happy
// partners settle for a little less, grumpy ones hold out for more.
func (m Mood) MinFractionAdjust() float64 {
	switch m {
	case MoodHappy:
		return -0.05
	case MoodGrumpy:
		return 0.05
	default:
		return 0
	}
}

// BuyAdjust is added to the profile's BuyPercentage when the partner buys
// cards from the player.
func (m Mood) BuyAdjust() float64 {
	switch m {
	case MoodHappy:
		return 0.05
	case MoodGrumpy:
		return -0.05
	default:
		return 0
	}
}

// Escalate steps the mood one notch toward grumpy. Grumpy is terminal.
func (m Mood) Escalate() Mood {
	switch m {
	case MoodHappy:
		return MoodNeutral
	case MoodNeutral:
		return MoodGrumpy
	default:
		return m
	}
}

// RandomMood draws a mood for a random encounter.
func RandomMood(r rng.Rand) Mood {
	return Moods[r.IntN(len(Moods))]
}
