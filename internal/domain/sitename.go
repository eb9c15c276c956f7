package domain

import "strings"

// NormalizeSiteName removes every occurrence of "Beach" and then "Park".
// Surrounding whitespace is left alone, so "Kona Beach" becomes "Kona ".
func NormalizeSiteName(raw string) string {
	return strings.ReplaceAll(strings.ReplaceAll(raw, "Beach", ""), "Park", "")
}
