// Package match classifies comp candidates against a canonical product
// identity using an ordered table of additive-penalty rules.
package match

import (
	"strings"

	"github.com/donaldgifford/comp-pricer/pkg/extract"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

const (
	startScore = 100
	matchScore = 80

	// DefaultMinKeywordOverlap is the default keyword overlap threshold.
	DefaultMinKeywordOverlap = 2
)

// Matcher applies a rule table to candidates. It holds no mutable state and
// is safe for concurrent use.
type Matcher struct {
	rules             []Rule
	minKeywordOverlap int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithMinKeywordOverlap sets the keyword overlap threshold.
func WithMinKeywordOverlap(n int) Option {
	return func(m *Matcher) {
		if n >= 0 {
			m.minKeywordOverlap = n
		}
	}
}

// WithRules replaces the rule table.
func WithRules(rules ...Rule) Option {
	return func(m *Matcher) {
		m.rules = rules
	}
}

// New creates a Matcher with the default rule table.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		rules:             DefaultRules(),
		minKeywordOverlap: DefaultMinKeywordOverlap,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultMatcher = New()

// Classify classifies one candidate with the default matcher.
func Classify(id domain.CanonicalIdentity, c domain.CompCandidate) domain.MatchResult {
	return defaultMatcher.Classify(id, c)
}

// ClassifyAll classifies candidates with the default matcher.
func ClassifyAll(id domain.CanonicalIdentity, cs []domain.CompCandidate) []domain.MatchResult {
	return defaultMatcher.ClassifyAll(id, cs)
}

// Classify runs every rule against c and derives a verdict: a score at or
// below zero rejects; a score of at least 80 with no unknowns matches;
// anything else is ambiguous.
func (m *Matcher) Classify(id domain.CanonicalIdentity, c domain.CompCandidate) domain.MatchResult {
	in := &Input{
		Identity:          id,
		Candidate:         c,
		Tokens:            candidateTokens(c.Title),
		Size:              extract.ExtractSize(c.Title),
		PackCount:         extract.ExtractPackCount(c.Title),
		MinKeywordOverlap: m.minKeywordOverlap,
	}

	res := domain.MatchResult{
		Candidate:         c,
		Score:             startScore,
		Reasons:           make([]string, 0, len(m.rules)),
		InferredPackCount: in.PackCount,
		InferredSize:      in.Size,
	}

	for _, r := range m.rules {
		outcome, detail := r.Eval(in)
		switch outcome {
		case OutcomeFail:
			res.Score -= r.Penalty
		case OutcomeUnknown:
			res.Score -= r.UnknownPenalty
			res.Unknowns = append(res.Unknowns, r.Name)
		}
		res.Reasons = append(res.Reasons, reason(r.Name, outcome, detail))
	}

	switch {
	case res.Score <= 0:
		res.Verdict = domain.VerdictReject
	case res.Score >= matchScore && len(res.Unknowns) == 0:
		res.Verdict = domain.VerdictMatch
	default:
		res.Verdict = domain.VerdictAmbiguous
	}

	return res
}

// ClassifyAll classifies each candidate, preserving input order.
func (m *Matcher) ClassifyAll(id domain.CanonicalIdentity, cs []domain.CompCandidate) []domain.MatchResult {
	out := make([]domain.MatchResult, 0, len(cs))
	for _, c := range cs {
		out = append(out, m.Classify(id, c))
	}
	return out
}

// Accepted returns the matched results. When fewer than minSamples matched,
// ambiguous results are included as well. Rejects are never returned.
func Accepted(results []domain.MatchResult, minSamples int) []domain.MatchResult {
	var matched, widened []domain.MatchResult
	for _, r := range results {
		switch r.Verdict {
		case domain.VerdictMatch:
			matched = append(matched, r)
			widened = append(widened, r)
		case domain.VerdictAmbiguous:
			widened = append(widened, r)
		}
	}
	if len(matched) >= minSamples {
		return matched
	}
	return widened
}

// Count tallies results by verdict.
func Count(results []domain.MatchResult) map[domain.Verdict]int {
	counts := make(map[domain.Verdict]int, 3)
	for _, r := range results {
		counts[r.Verdict]++
	}
	return counts
}

func reason(name string, outcome Outcome, detail string) string {
	if detail == "" {
		return name + ":" + string(outcome)
	}
	return name + ":" + string(outcome) + " (" + detail + ")"
}

// candidateTokens tokenizes a title and adds the concatenation of each run
// of single-character tokens, so "P&G" also yields "pg".
func candidateTokens(title string) map[string]struct{} {
	tokens := extract.Tokenize(title)
	set := extract.TokenSet(tokens)

	var run strings.Builder
	flush := func() {
		if run.Len() > 1 {
			set[run.String()] = struct{}{}
		}
		run.Reset()
	}
	for _, tok := range tokens {
		if len(tok) == 1 {
			run.WriteString(tok)
			continue
		}
		flush()
	}
	flush()

	return set
}
