// Package validate checks generated dashboards and rules for PromQL that
// does not parse or that references metrics the service never exports.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/comp-pricer/tools/dashgen/rules"
)

// histogramSuffixes are the series a histogram exposes under its base name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation problems. Errors make the artifact unusable;
// warnings are style issues.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// Expr parses a single PromQL expression and checks every selector's metric
// name against known.
func Expr(expr string, known map[string]bool) Result {
	var res Result
	if strings.TrimSpace(expr) == "" {
		res.Errors = append(res.Errors, "empty expression")
		return res
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("parse %q: %v", expr, err))
		return res
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !isKnown(vs.Name, known) {
			res.Errors = append(res.Errors, fmt.Sprintf("unknown metric %q in %q", vs.Name, expr))
		}
		return nil
	})
	return res
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Dashboard validates every "expr" field found in the dashboard's JSON
// form, so it works for any panel type the SDK produces.
func Dashboard(dash any, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	exprs := collectExprs(doc, nil)
	if len(exprs) == 0 {
		res.Warnings = append(res.Warnings, "dashboard has no queries")
	}
	for _, e := range exprs {
		res.merge(Expr(e, known))
	}
	return res
}

func collectExprs(v any, out []string) []string {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := t[k].(string); ok && k == "expr" {
				out = append(out, s)
				continue
			}
			out = collectExprs(t[k], out)
		}
	case []any:
		for _, item := range t {
			out = collectExprs(item, out)
		}
	}
	return out
}

// Rules validates a PrometheusRule CR. Recording rule names defined in the
// CR count as known metrics for the rest of it.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result

	all := make(map[string]bool, len(known))
	for k, v := range known {
		all[k] = v
	}
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			if r.Record != "" {
				all[r.Record] = true
			}
		}
	}

	for _, g := range cr.Spec.Groups {
		if len(g.Rules) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("group %s has no rules", g.Name))
		}
		for _, r := range g.Rules {
			switch {
			case r.Record == "" && r.Alert == "":
				res.Errors = append(res.Errors, fmt.Sprintf("group %s: rule has neither record nor alert", g.Name))
			case r.Alert != "" && r.Labels["severity"] == "":
				res.Warnings = append(res.Warnings, fmt.Sprintf("alert %s has no severity label", r.Alert))
			}
			res.merge(Expr(r.Expr, all))
		}
	}
	return res
}
