package pricing

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var jp = message.NewPrinter(language.Japanese)

// Amount extracts the integer value of a price written as free text.
// Every rune that is not a decimal digit is dropped before parsing, so
// "￥1,200" and "1200円" both read as 1200. Text with no digits reads
// as 0. Arithmetic on prices must always go through here; the raw text
// is kept only for display.
func Amount(text string) int64 {
	digits := make([]rune, 0, len(text))
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 0 {
		return 0
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Format renders an amount with ja-JP digit grouping.
func Format(n int64) string {
	return jp.Sprintf("%d", n)
}

// FormatYen prefixes the grouped amount with the yen sign used across
// the delivery-slip views.
func FormatYen(n int64) string {
	return "￥" + Format(n)
}
