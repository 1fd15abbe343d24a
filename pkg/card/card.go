// Package card defines the collectible card model traded in encounters.
package card

// Card is a single collectible card. Identity fields and TrueValue are
// fixed at generation. AskPrice is rolled at generation from the partner's
// overask range; negotiation discounts apply to an encounter's aggregate
// price, never to the card itself.
type Card struct {
	Name      string  `json:"name"`
	Player    string  `json:"player"`
	Year      int     `json:"year"`
	Set       string  `json:"set"`
	TrueValue float64 `json:"true_value"`
	AskPrice  float64 `json:"ask_price"`
}

// TotalTrueValue sums the ground-truth value of a set of cards.
func TotalTrueValue(cards []Card) float64 {
	var total float64
	for _, c := range cards {
		total += c.TrueValue
	}
	return total
}

// TotalAskPrice sums the partner's asking prices for a set of cards.
func TotalAskPrice(cards []Card) float64 {
	var total float64
	for _, c := range cards {
		total += c.AskPrice
	}
	return total
}
