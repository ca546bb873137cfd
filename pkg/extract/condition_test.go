package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/comp-pricer/pkg/extract"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

func TestNormalizeCondition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want domain.Condition
	}{
		// new
		{name: "New", raw: "New", want: domain.ConditionNew},
		{name: "Brand New", raw: "Brand New", want: domain.ConditionNew},
		{name: "Factory Sealed", raw: "Factory Sealed", want: domain.ConditionNew},
		{name: "new with tags", raw: "New with tags", want: domain.ConditionNew},
		{name: "condition id", raw: "1000", want: domain.ConditionNew},
		// other
		{name: "Open Box", raw: "Open Box", want: domain.ConditionOther},
		{name: "New (Other)", raw: "New (Other)", want: domain.ConditionOther},
		{name: "Like New", raw: "Like New", want: domain.ConditionOther},
		{name: "Used", raw: "Used", want: domain.ConditionOther},
		{name: "Pre-Owned", raw: "Pre-Owned", want: domain.ConditionOther},
		{
			name: "Manufacturer Refurbished",
			raw:  "Manufacturer Refurbished",
			want: domain.ConditionOther,
		},
		{name: "For parts", raw: "For parts or not working", want: domain.ConditionOther},
		{name: "empty", raw: "", want: domain.ConditionOther},
		{name: "whitespace", raw: "   ", want: domain.ConditionOther},
		{name: "unknown", raw: "Good", want: domain.ConditionOther},
		{name: "newer is not new", raw: "Newer model", want: domain.ConditionOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extract.NormalizeCondition(tt.raw))
		})
	}
}
