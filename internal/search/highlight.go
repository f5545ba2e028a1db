package search

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// DisplayPath returns path relative to root when it lies under root, else
// the path unchanged.
func DisplayPath(path, root string) string {
	return DisplayPathMode(path, root, true)
}

// DisplayPathMode is DisplayPath with relative display made optional.
func DisplayPathMode(path, root string, preferRelative bool) string {
	if !preferRelative {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func runesEqualFold(a, b rune) bool {
	return unicode.ToLower(a) == unicode.ToLower(b)
}

// MatchPositions locates term within text case-insensitively and returns the
// rune indices to highlight. A contiguous substring occurrence wins (first
// occurrence only); failing that, a greedy left-to-right subsequence match is
// attempted. If the term cannot be fully consumed the result is empty — no
// partial highlights.
func MatchPositions(text, term string) map[int]bool {
	positions := make(map[int]bool)
	if term == "" {
		return positions
	}

	textRunes := []rune(text)
	termRunes := []rune(term)

	if len(termRunes) <= len(textRunes) {
		for start := 0; start <= len(textRunes)-len(termRunes); start++ {
			matched := true
			for i, q := range termRunes {
				if !runesEqualFold(textRunes[start+i], q) {
					matched = false
					break
				}
			}
			if matched {
				for i := start; i < start+len(termRunes); i++ {
					positions[i] = true
				}
				return positions
			}
		}
	}

	qi := 0
	for i, ch := range textRunes {
		if qi < len(termRunes) && runesEqualFold(ch, termRunes[qi]) {
			positions[i] = true
			qi++
		}
	}
	if qi == len(termRunes) {
		return positions
	}
	return make(map[int]bool)
}

// regexMatchPositions returns the rune indices covered by all non-empty
// matches of pattern in text. A pattern that fails to compile highlights
// nothing.
func regexMatchPositions(text, pattern string) map[int]bool {
	positions := make(map[int]bool)
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return positions
	}

	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		start := len([]rune(text[:loc[0]]))
		length := len([]rune(text[loc[0]:loc[1]]))
		for i := start; i < start+length; i++ {
			positions[i] = true
		}
	}
	return positions
}

// HighlightTerms extracts the terms worth highlighting from a raw query:
// exclusions are skipped, the exact sigil is stripped, and in fuzzy mode the
// ^/$ anchors are stripped too. Regex-mode include terms are kept verbatim
// so their pattern stays intact.
func HighlightTerms(query string, useRegex bool) []string {
	var terms []string
	for _, token := range strings.Fields(query) {
		if strings.HasPrefix(token, "!") {
			continue
		}
		isExact := strings.HasPrefix(token, "'")
		if isExact {
			token = token[1:]
		}
		if useRegex && !isExact {
			if token != "" {
				terms = append(terms, token)
			}
			continue
		}
		_, _, core := splitAnchor(token)
		if core != "" {
			terms = append(terms, core)
		}
	}
	return terms
}

// MatchPositionsForPath computes highlight positions over the display text of
// path. Each term is tried against the basename first; basename hits are
// offset to their position at the tail of the display text, and only when a
// term misses the basename entirely does the full display text contribute.
func MatchPositionsForPath(path, root, query string, preferRelative, useRegex bool) map[int]bool {
	positions := make(map[int]bool)
	display := DisplayPathMode(path, root, preferRelative)
	name := filepath.Base(path)
	nameStart := len([]rune(display)) - len([]rune(name))
	if nameStart < 0 {
		nameStart = 0
	}

	for _, term := range HighlightTerms(query, useRegex) {
		var hits map[int]bool
		if useRegex {
			hits = regexMatchPositions(name, term)
		} else {
			hits = MatchPositions(name, term)
		}
		if len(hits) > 0 {
			for pos := range hits {
				positions[nameStart+pos] = true
			}
			continue
		}
		if useRegex {
			hits = regexMatchPositions(display, term)
		} else {
			hits = MatchPositions(display, term)
		}
		for pos := range hits {
			positions[pos] = true
		}
	}
	return positions
}

// HasVisibleMatch reports whether highlighting the query against path's
// display text would mark anything. Queries with no highlightable terms
// (blank, or exclusion-only — already filtered upstream) count as visible.
func HasVisibleMatch(path, root, query string, preferRelative bool) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	if len(HighlightTerms(query, false)) == 0 {
		return true
	}
	return len(MatchPositionsForPath(path, root, query, preferRelative, false)) > 0
}
