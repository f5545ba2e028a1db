package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		include []string
		exact   []string
		exclude []string
	}{
		{
			name:    "plain terms",
			raw:     "main py",
			include: []string{"main", "py"},
		},
		{
			name:  "exact term",
			raw:   "'main",
			exact: []string{"main"},
		},
		{
			name:    "exclude term",
			raw:     "!readme",
			exclude: []string{"readme"},
		},
		{
			name:    "mixed groups preserve order",
			raw:     "src 'main.py !bak test",
			include: []string{"src", "test"},
			exact:   []string{"main.py"},
			exclude: []string{"bak"},
		},
		{
			name:    "bare sigils dropped",
			raw:     "' ! main",
			include: []string{"main"},
		},
		{
			name:    "anchors kept verbatim on include terms",
			raw:     "^main$ mid^dle",
			include: []string{"^main$", "mid^dle"},
		},
		{
			name: "whitespace only",
			raw:  "   \t  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := ParseQuery(tt.raw)
			assert.Equal(t, tt.include, spec.Include)
			assert.Equal(t, tt.exact, spec.Exact)
			assert.Equal(t, tt.exclude, spec.Exclude)
		})
	}
}

func TestSplitAnchor(t *testing.T) {
	tests := []struct {
		term  string
		start bool
		end   bool
		core  string
	}{
		{"main", false, false, "main"},
		{"^main", true, false, "main"},
		{"main$", false, true, "main"},
		{"^main$", true, true, "main"},
		{"^", true, false, ""},
		{"$", false, true, ""},
		{"^$", true, true, ""},
	}

	for _, tt := range tests {
		start, end, core := splitAnchor(tt.term)
		assert.Equal(t, tt.start, start, tt.term)
		assert.Equal(t, tt.end, end, tt.term)
		assert.Equal(t, tt.core, core, tt.term)
	}
}
