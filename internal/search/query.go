// Package search ranks index entries against a small structured query
// language: plain terms fuzzy-match, 'term requires an anchored literal
// match, !term excludes, and ^/$ anchor to the start/end of the text.
package search

import "strings"

// Spec is a parsed query. Term order within each group follows the raw
// query. Terms keep their original case; matching lowercases both sides.
type Spec struct {
	Include []string
	Exact   []string
	Exclude []string
}

// ParseQuery tokenizes a raw query on whitespace and classifies each token
// by its leading sigil: ' marks an exact term, ! an exclusion, anything else
// is a fuzzy include term (kept verbatim, including any ^/$). A bare sigil
// with nothing after it produces no term. There is no escaping; a literal
// leading ' or ! cannot be searched for.
func ParseQuery(raw string) Spec {
	var spec Spec
	for _, token := range strings.Fields(raw) {
		switch {
		case strings.HasPrefix(token, "'"):
			if len(token) > 1 {
				spec.Exact = append(spec.Exact, token[1:])
			}
		case strings.HasPrefix(token, "!"):
			if len(token) > 1 {
				spec.Exclude = append(spec.Exclude, token[1:])
			}
		default:
			spec.Include = append(spec.Include, token)
		}
	}
	return spec
}

// splitAnchor strips ^/$ sigils from a term and reports which were present.
func splitAnchor(term string) (anchoredStart, anchoredEnd bool, core string) {
	core = term
	if strings.HasPrefix(core, "^") {
		anchoredStart = true
		core = core[1:]
	}
	if strings.HasSuffix(core, "$") {
		anchoredEnd = true
		core = core[:len(core)-1]
	}
	return anchoredStart, anchoredEnd, core
}
