package match

import (
	"fmt"
	"math"
	"regexp"
	"slices"

	"github.com/donaldgifford/comp-pricer/pkg/extract"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// Outcome is the result of evaluating one rule against a candidate.
type Outcome string

// Outcome constants.
const (
	OutcomePass    Outcome = "pass"
	OutcomeFail    Outcome = "fail"
	OutcomeUnknown Outcome = "unknown"
	OutcomeSkip    Outcome = "skip"
)

// Input is everything a rule may inspect. Candidate-side attributes are
// parsed once per candidate before the rules run.
type Input struct {
	Identity          domain.CanonicalIdentity
	Candidate         domain.CompCandidate
	Tokens            map[string]struct{}
	Size              *domain.Size
	PackCount         int
	MinKeywordOverlap int
}

// Rule is one additive-penalty check. Penalty applies on OutcomeFail and
// UnknownPenalty on OutcomeUnknown. Eval returns a short detail appended to
// the reason string.
type Rule struct {
	Name           string
	Penalty        int
	UnknownPenalty int
	Eval           func(in *Input) (Outcome, string)
}

// SizeTolerance is the maximum relative size difference still considered the
// same product.
const SizeTolerance = 0.03

const sizeEpsilon = 1e-9

// DefaultRules returns the standard rule table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "condition", Penalty: 100, Eval: evalCondition},
		{Name: "pack", Penalty: 100, Eval: evalPack},
		{Name: "size", Penalty: 100, UnknownPenalty: 10, Eval: evalSize},
		{Name: "brand", Penalty: 100, Eval: evalBrand},
		{Name: "keywords", Penalty: 80, Eval: evalKeywords},
		{Name: "bundle", Penalty: 100, Eval: evalBundle},
	}
}

func evalCondition(in *Input) (Outcome, string) {
	if in.Candidate.Condition == "" {
		return OutcomeSkip, "unstated"
	}
	got := extract.NormalizeCondition(in.Candidate.Condition)
	if got != in.Identity.Condition {
		return OutcomeFail, fmt.Sprintf("%s!=%s", got, in.Identity.Condition)
	}
	return OutcomePass, string(got)
}

func evalPack(in *Input) (Outcome, string) {
	want := max(in.Identity.PackCount, 1)
	if in.PackCount != want {
		return OutcomeFail, fmt.Sprintf("%d!=%d", in.PackCount, want)
	}
	return OutcomePass, fmt.Sprintf("%d", in.PackCount)
}

func evalSize(in *Input) (Outcome, string) {
	want, got := in.Identity.Size, in.Size
	switch {
	case want == nil && got == nil:
		return OutcomePass, "none"
	case want == nil || got == nil:
		return OutcomeUnknown, "missing"
	case !extract.UnitsCompatible(want.Unit, got.Unit):
		return OutcomeUnknown, fmt.Sprintf("units %s/%s", got.Unit, want.Unit)
	}

	diff := math.Abs(got.Value-want.Value) / want.Value
	detail := fmt.Sprintf("%.2f%%", diff*100)
	if diff > SizeTolerance+sizeEpsilon {
		return OutcomeFail, detail
	}
	return OutcomePass, detail
}

func evalBrand(in *Input) (Outcome, string) {
	if len(in.Identity.BrandTokens) == 0 {
		return OutcomeSkip, "no brand"
	}
	for _, tok := range in.Identity.BrandTokens {
		if _, ok := in.Tokens[tok]; ok {
			return OutcomePass, tok
		}
	}
	return OutcomeFail, "absent"
}

func evalKeywords(in *Input) (Outcome, string) {
	threshold := min(in.MinKeywordOverlap, len(in.Identity.Keywords))

	overlap := 0
	for _, kw := range in.Identity.Keywords {
		if _, ok := in.Tokens[kw]; ok {
			overlap++
		}
	}

	detail := fmt.Sprintf("%d/%d", overlap, threshold)
	if overlap < threshold {
		return OutcomeFail, detail
	}
	return OutcomePass, detail
}

// bundleRegex matches phrases that mark a listing as more than one unit.
var bundleRegex = regexp.MustCompile(
	`(?i)\b(bundle|bundles|lot|lots|kit|kits|wholesale|variety|assortment|assorted|` +
		`combo|set of|case of|multipack|multi-pack|multi pack|bulk)\b`,
)

func evalBundle(in *Input) (Outcome, string) {
	if in.Identity.PackCount > 1 {
		return OutcomeSkip, "multi-pack identity"
	}
	for _, m := range bundleRegex.FindAllString(in.Candidate.Title, -1) {
		phrase := extract.Tokenize(m)
		// Phrases that are part of the product's own name ("first aid kit")
		// are not bundle indicators.
		if len(phrase) == 1 && slices.Contains(in.Identity.Keywords, phrase[0]) {
			continue
		}
		return OutcomeFail, m
	}
	return OutcomePass, "none"
}
