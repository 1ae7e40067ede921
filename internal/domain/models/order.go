package models

import "time"

// OrderLine is a Card committed to a delivery slip plus order-specific
// fields. Positional indices within a slip are not stable identities;
// they shift on removal.
type OrderLine struct {
	Card
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
	IsManual bool      `json:"isManual"`
}

// NewLineFromCard copies each card field into a fresh order line so the
// stored line never aliases the displayed search result.
func NewLineFromCard(card Card, quantity int, addedAt time.Time) OrderLine {
	return OrderLine{
		Card: Card{
			Number:      card.Number,
			Name:        card.Name,
			Rarity:      card.Rarity,
			Type:        card.Type,
			Description: card.Description,
			Price:       card.Price,
			Image:       card.Image,
		},
		Quantity: quantity,
		AddedAt:  addedAt,
		IsManual: false,
	}
}

// OrderTotals aggregates a whole slip. Amounts are derived by digit
// extraction from each line's textual price.
type OrderTotals struct {
	TotalQuantity int   `json:"totalQuantity"`
	TotalAmount   int64 `json:"totalAmount"`
}

// LineView is the editable projection of one line: the stored data plus
// the unit price and subtotal derived from it.
type LineView struct {
	OrderLine
	UnitPrice int64 `json:"unitPrice"`
	Subtotal  int64 `json:"subtotal"`
}

// OrderView is the editable projection of a slip.
type OrderView struct {
	Lines  []LineView  `json:"lines"`
	Totals OrderTotals `json:"totals"`
}

// PrintLine carries pre-formatted amounts for the fixed print view.
type PrintLine struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

// PrintSheet is the print projection of a slip: ordered lines, grouped
// totals and the moment the sheet was generated.
type PrintSheet struct {
	GeneratedAt   time.Time   `json:"generatedAt"`
	Lines         []PrintLine `json:"lines"`
	TotalQuantity string      `json:"totalQuantity"`
	TotalAmount   string      `json:"totalAmount"`
}
