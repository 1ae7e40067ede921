package models

// SelectionUpdateRequest dials the pending quantity for one card in the
// latest search result set.
type SelectionUpdateRequest struct {
	Version  string `json:"version"`
	Position int    `json:"position"`
	Quantity int    `json:"quantity"`
}

// CommitSelectionRequest turns a pending quantity into an order line.
type CommitSelectionRequest struct {
	Version  string `json:"version"`
	Position int    `json:"position"`
}

// ManualLineRequest is a hand-entered order line.
type ManualLineRequest struct {
	Name     string `json:"name"`
	Number   string `json:"number"`
	Rarity   string `json:"rarity"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// PriceUpdateRequest replaces a line's price. A pointer distinguishes an
// explicit zero from an absent field.
type PriceUpdateRequest struct {
	Price *int `json:"price"`
}

// SearchResponse pairs a result set with the version selection calls
// must echo back.
type SearchResponse struct {
	Version string `json:"version"`
	Cards   []Card `json:"cards"`
}
