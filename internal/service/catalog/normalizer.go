package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"cardslip/internal/domain/models"
)

// Column synonym tables for the seven logical card fields, ordered by
// priority. The catalog sheet is maintained by hand, so headers drift
// between Japanese and English labels.
var (
	numberColumns      = []string{"番号", "number", "No", "カード番号"}
	nameColumns        = []string{"名前", "カード名", "name", "ポケモン名"}
	rarityColumns      = []string{"レアリティ", "rarity", "レア度"}
	typeColumns        = []string{"タイプ", "type", "属性"}
	descriptionColumns = []string{"説明", "description", "効果", "テキスト"}
	priceColumns       = []string{"価格", "price", "値段", "金額"}
	imageColumns       = []string{"画像", "image", "URL", "イメージ"}
)

var imageFormulaPattern = regexp.MustCompile(`IMAGE\("([^"]+)"\)`)

// FindColumn returns the index of the first header whose text contains
// any of the candidate names as a case-insensitive substring. Candidates
// are tried in order, so the list doubles as a priority ranking.
// Returns -1 when nothing matches.
func FindColumn(headers []string, candidates []string) int {
	for _, candidate := range candidates {
		needle := strings.ToLower(candidate)
		for i, header := range headers {
			if header == "" {
				continue
			}
			if strings.Contains(strings.ToLower(header), needle) {
				return i
			}
		}
	}
	return -1
}

// Normalize maps one raw spreadsheet row onto a Card using the synonym
// tables. A column that cannot be resolved, or a row too short to reach
// it, leaves the field empty rather than failing.
func Normalize(headers []string, row []string) models.Card {
	card := models.Card{
		Number:      cellAt(headers, row, numberColumns),
		Name:        cellAt(headers, row, nameColumns),
		Rarity:      cellAt(headers, row, rarityColumns),
		Type:        cellAt(headers, row, typeColumns),
		Description: cellAt(headers, row, descriptionColumns),
		Price:       cellAt(headers, row, priceColumns),
		Image:       cellAt(headers, row, imageColumns),
	}

	// IMAGE("url") formula cells become the bare URL; a wrapper the
	// pattern cannot parse becomes no image at all.
	if strings.Contains(card.Image, "IMAGE(") {
		if m := imageFormulaPattern.FindStringSubmatch(card.Image); m != nil {
			card.Image = m[1]
		} else {
			card.Image = ""
		}
	}

	return card
}

func cellAt(headers []string, row []string, candidates []string) string {
	idx := FindColumn(headers, candidates)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Search filters snapshot rows whose number cell contains query and
// normalizes the survivors. The query match is deliberately
// case-sensitive: card numbers are formatted codes, unlike headers.
// No matches is an empty result, not an error.
func Search(snap Snapshot, query string) ([]models.Card, error) {
	if len(snap.Headers) == 0 && len(snap.Rows) == 0 {
		return []models.Card{}, nil
	}

	numberIdx := FindColumn(snap.Headers, numberColumns)
	if numberIdx < 0 {
		return nil, &models.SchemaError{Column: "number"}
	}

	cards := make([]models.Card, 0)
	for _, row := range snap.Rows {
		var number string
		if numberIdx < len(row) {
			number = row[numberIdx]
		}
		if !strings.Contains(number, query) {
			continue
		}
		cards = append(cards, Normalize(snap.Headers, row))
	}

	return cards, nil
}

// cellString renders one raw sheet cell as text. The Sheets API decodes
// numeric cells as float64; FormatFloat keeps large card prices out of
// scientific notation.
func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func stringRow(row []interface{}) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = cellString(cell)
	}
	return out
}
