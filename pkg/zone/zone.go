// Package zone enumerates the show-floor zones and their per-zone tuning.
package zone

// Zone is a themed area of the show floor.
type Zone string

const (
	VintageAlley      Zone = "vintage_alley"
	ModernShowcases   Zone = "modern_showcases"
	DollarBoxes       Zone = "dollar_boxes"
	CorporatePavilion Zone = "corporate_pavilion"
	TradeNight        Zone = "trade_night"
)

// Zones lists all zones a player can walk to.
var Zones = []Zone{VintageAlley, ModernShowcases, DollarBoxes, CorporatePavilion, TradeNight}

// DisplayName returns a human-readable zone name.
func (z Zone) DisplayName() string {
	switch z {
	case VintageAlley:
		return "Vintage Alley"
	case ModernShowcases:
		return "Modern Showcases"
	case DollarBoxes:
		return "Dollar Boxes"
	case CorporatePavilion:
		return "Corporate Pavilion"
	case TradeNight:
		return "Trade Night"
	default:
		return string(z)
	}
}

// xpFactors scales experience earned per zone. Cheap zones teach less,
// vintage deals teach more.
var xpFactors = map[Zone]float64{
	DollarBoxes:       0.8,
	VintageAlley:      1.3,
	ModernShowcases:   1.1,
	CorporatePavilion: 1.0,
	TradeNight:        1.2,
}

// XPFactor returns the experience multiplier for a zone, defaulting to 1.0
// for unknown zones.
func XPFactor(z Zone) float64 {
	if f, ok := xpFactors[z]; ok {
		return f
	}
	return 1.0
}

// saleAdjusts shifts the partner's buy percentage per zone.
var saleAdjusts = map[Zone]float64{
	DollarBoxes: -0.05,
	TradeNight:  0.05,
}

// SaleAdjust returns the buy-percentage adjustment for selling in a zone.
func SaleAdjust(z Zone) float64 {
	return saleAdjusts[z]
}
