package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// productOrderings maps the public order_by values to ORDER BY clauses.
// Anything else falls back to newest first. Every ordering ends on id so
// OFFSET pages stay stable when the sort columns tie.
var productOrderings = map[string]string{
	"created_at":     "created_at DESC, id DESC",
	"brand":          "brand ASC, product_name ASC, id ASC",
	"last_priced_at": "last_priced_at ASC NULLS FIRST, id ASC",
}

// predicates accumulates AND-ed conditions with numbered placeholders.
type predicates struct {
	conds []string
	args  []any
}

// add appends cond, replacing each "?" with the next $n placeholder.
func (p *predicates) add(cond string, args ...any) {
	for _, a := range args {
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(p.args)+1), 1)
		p.args = append(p.args, a)
	}
	p.conds = append(p.conds, cond)
}

func (p *predicates) where() string {
	if len(p.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.conds, " AND ")
}

// ToSQL renders the page query and the matching count query. Both take the
// returned args.
func (q *ProductQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var p predicates
	if q.EnabledOnly {
		p.add("enabled")
	}
	if q.Brand != nil {
		p.add("lower(brand) = lower(?)", *q.Brand)
	}
	if q.Condition != nil {
		p.add("condition = ?", string(*q.Condition))
	}
	if q.Search != nil {
		p.add("product_name ILIKE ?", "%"+escapeLike(*q.Search)+"%")
	}

	order, ok := productOrderings[q.OrderBy]
	if !ok {
		order = productOrderings["created_at"]
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)

	where := p.where()
	dataSQL = fmt.Sprintf("SELECT %s\nFROM tracked_products%s ORDER BY %s LIMIT %d OFFSET %d",
		productColumns, where, order, limit, max(q.Offset, 0))
	countSQL = "SELECT COUNT(*) FROM tracked_products" + where
	return dataSQL, countSQL, p.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
