package extract

import (
	"strings"
	"unicode"
)

// Signature builds the sanitized "brand|product" key that identifies a
// pricing request for caching and decision history.
func Signature(brand, productName string) string {
	return sanitize(brand) + "|" + sanitize(productName)
}

func sanitize(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		if r == '\'' || r == '’' {
			return -1
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
