package parser

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errEmptyPrice = errors.New("empty price text")

// Strips the currency sign and every whitespace flavor stores put around it,
// including non-breaking spaces.
var brlCleaner = strings.NewReplacer("R$", "", " ", "", " ", "", "\t", "", "\n", "")

// ParseBRL converts a Brazilian-formatted price ("R$ 1.234,56") into a
// decimal. Thousands dots are dropped and the decimal comma becomes a dot.
func ParseBRL(text string) (decimal.Decimal, error) {
	cleaned := brlCleaner.Replace(text)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return decimal.Zero, errEmptyPrice
	}
	return decimal.NewFromString(cleaned)
}
