package extract

import (
	"strings"
)

// corporateSuffixes are trailing brand tokens that do not identify a brand.
var corporateSuffixes = map[string]struct{}{
	"inc": {}, "incorporated": {}, "llc": {}, "llp": {}, "lp": {}, "ltd": {},
	"limited": {}, "co": {}, "corp": {}, "corporation": {}, "company": {},
	"plc": {}, "gmbh": {}, "ag": {}, "sa": {},
}

// NormalizeBrand lowercases a brand, strips trailing corporate suffixes such
// as Inc/LLC/Ltd, and collapses whitespace. "Burt's Bees, Inc." becomes
// "burt's bees".
func NormalizeBrand(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.NewReplacer(",", " ", ".", " ", "’", "'").Replace(s)
	fields := strings.Fields(s)

	for len(fields) > 1 {
		if _, ok := corporateSuffixes[fields[len(fields)-1]]; !ok {
			break
		}
		fields = fields[:len(fields)-1]
	}

	return strings.Join(fields, " ")
}

// BrandTokens returns the match tokens of a normalized brand. Single
// characters are dropped; a brand made only of single characters ("P&G")
// collapses to one joined token ("pg").
func BrandTokens(normalizedBrand string) []string {
	all := Tokenize(normalizedBrand)

	var out []string
	for _, tok := range all {
		if len(tok) < 2 {
			continue
		}
		if _, ok := stopwords[tok]; ok {
			continue
		}
		out = append(out, tok)
	}

	if len(out) == 0 && len(all) > 0 {
		out = append(out, strings.Join(all, ""))
	}
	return out
}
