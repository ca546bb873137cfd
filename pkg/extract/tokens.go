package extract

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "the": {}, "of": {}, "for": {}, "with": {},
	"in": {}, "by": {}, "to": {}, "on": {}, "at": {}, "or": {}, "from": {},
}

// measureWords are unit and packaging words that carry no product identity.
var measureWords = map[string]struct{}{
	"oz": {}, "fl": {}, "floz": {}, "fluid": {}, "ounce": {}, "ounces": {},
	"ml": {}, "milliliter": {}, "milliliters": {}, "l": {}, "liter": {}, "liters": {},
	"litre": {}, "litres": {}, "g": {}, "gr": {}, "gram": {}, "grams": {},
	"kg": {}, "kilogram": {}, "kilograms": {}, "lb": {}, "lbs": {}, "pound": {},
	"pounds": {}, "ct": {}, "count": {}, "pack": {}, "packs": {}, "pk": {},
	"set": {}, "x": {}, "case": {}, "twin": {},
}

// measureTokenRegex matches tokens like "16oz", "2pk", "500ml" or bare numbers.
var measureTokenRegex = regexp.MustCompile(
	`^\d+(oz|floz|ml|l|g|gr|kg|lb|lbs|ct|pk|pack|count)?$`,
)

// Tokenize lowercases text, drops apostrophes, and splits on anything that is
// not a letter or digit.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	text = strings.NewReplacer("'", "", "’", "").Replace(text)
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// isNoiseToken reports whether tok carries no identity signal.
func isNoiseToken(tok string) bool {
	if len(tok) < 2 {
		return true
	}
	if _, ok := stopwords[tok]; ok {
		return true
	}
	if _, ok := measureWords[tok]; ok {
		return true
	}
	return measureTokenRegex.MatchString(tok)
}

// keywords returns the ordered, de-duplicated identity tokens of a product
// title, excluding brand tokens and noise.
func keywords(productName string, brandTokens []string) []string {
	var out []string
	for _, tok := range Tokenize(productName) {
		if isNoiseToken(tok) || slices.Contains(brandTokens, tok) {
			continue
		}
		if slices.Contains(out, tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// TokenSet builds a lookup set from tokens.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
