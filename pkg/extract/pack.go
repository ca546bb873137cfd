package extract

import (
	"regexp"
	"strconv"
)

const (
	// maxCountAsPack is the largest "N count" read as a pack count. Larger
	// counts (e.g. "120 count" tablets) describe unit contents, not packs.
	maxCountAsPack = 24
	maxPackCount   = 1000
)

type packPattern struct {
	re *regexp.Regexp
	// accept filters a parsed count; nil accepts everything.
	accept func(n int) bool
}

// packPatterns are tried in order; the first accepted match wins.
var packPatterns = []packPattern{
	{re: regexp.MustCompile(`(?i)\bpack\s+of\s+(\d+)\b`)},
	{re: regexp.MustCompile(`(?i)\bset\s+of\s+(\d+)\b`)},
	{re: regexp.MustCompile(`(?i)\bcase\s+of\s+(\d+)\b`)},
	{re: regexp.MustCompile(`(?i)\b(\d+)\s*-?\s*(?:packs?|pk)\b`)},
	{
		re:     regexp.MustCompile(`(?i)\b(\d+)\s*-?\s*(?:count|ct)\b`),
		accept: func(n int) bool { return n >= 2 && n <= maxCountAsPack },
	},
	{re: regexp.MustCompile(`(?i)\b(\d+)\s*x\s*\d`)},
}

var twinPackRegex = regexp.MustCompile(`(?i)\btwin\s*-?\s*pack\b`)

// ExtractPackCount detects multi-unit packaging ("3-pack", "pack of 6",
// "set of 2", "4 count", "2 x 16 oz", "twin pack") and defaults to 1.
func ExtractPackCount(title string) int {
	for _, p := range packPatterns {
		for _, m := range p.re.FindAllStringSubmatch(title, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 || n > maxPackCount {
				continue
			}
			if p.accept != nil && !p.accept(n) {
				continue
			}
			return n
		}
	}

	if twinPackRegex.MatchString(title) {
		return 2
	}

	return 1
}
