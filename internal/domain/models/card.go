package models

// Card is a normalized catalog entry produced from one spreadsheet row.
// Every field is always present; a source column that cannot be resolved
// yields an empty string, never a missing key.
type Card struct {
	Number      string `json:"number"`
	Name        string `json:"name"`
	Rarity      string `json:"rarity"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}
