package search

import (
	"path/filepath"
	"regexp"
	"strings"
)

// isSubsequence reports whether the runes of query appear in order within
// text.
func isSubsequence(query, text string) bool {
	q := []rune(query)
	qi := 0
	for _, ch := range text {
		if qi < len(q) && ch == q[qi] {
			qi++
		}
	}
	return qi == len(q)
}

// isFuzzyMatch reports whether query occurs in text as a substring or as an
// ordered subsequence, case-insensitively.
func isFuzzyMatch(query, text string) bool {
	q := strings.ToLower(query)
	t := strings.ToLower(text)
	return strings.Contains(t, q) || isSubsequence(q, t)
}

// matchesAnchoredLiteral applies exact-term anchoring: ^ pins the start,
// $ pins the end, both demand full equality, neither means plain substring.
// The term is expected to be lowercased already.
func matchesAnchoredLiteral(term, text string) bool {
	anchoredStart, anchoredEnd, core := splitAnchor(term)
	if core == "" {
		return false
	}
	switch {
	case anchoredStart && anchoredEnd:
		return text == core
	case anchoredStart:
		return strings.HasPrefix(text, core)
	case anchoredEnd:
		return strings.HasSuffix(text, core)
	default:
		return strings.Contains(text, core)
	}
}

func matchesExactTerm(term, name, full string) bool {
	t := strings.ToLower(term)
	return matchesAnchoredLiteral(t, name) || matchesAnchoredLiteral(t, full)
}

func matchesExcludeTerm(term, name, full string) bool {
	t := strings.ToLower(term)
	return matchesAnchoredLiteral(t, name) || matchesAnchoredLiteral(t, full)
}

// matchesIncludeTerm checks one include term against the lowercased basename
// and full path. In regex mode the term is compiled case-insensitively and a
// term that fails to compile never matches. In fuzzy mode the stripped core
// must fuzzy-match, and ^/$ act only as soft single-character anchors: the
// first (or last) character of the core must match the first (or last)
// character of the basename or full path. This is deliberately weaker than
// exact-term anchoring.
func matchesIncludeTerm(term, name, full string, useRegex bool) bool {
	if useRegex {
		re, err := regexp.Compile("(?i)" + term)
		if err != nil {
			return false
		}
		return re.MatchString(name) || re.MatchString(full)
	}

	t := strings.ToLower(term)
	anchoredStart, anchoredEnd, core := splitAnchor(t)
	if core == "" {
		return false
	}

	runes := []rune(core)
	if anchoredStart {
		first := string(runes[0])
		if !strings.HasPrefix(name, first) && !strings.HasPrefix(full, first) {
			return false
		}
	}
	if anchoredEnd {
		last := string(runes[len(runes)-1])
		if !strings.HasSuffix(name, last) && !strings.HasSuffix(full, last) {
			return false
		}
	}

	return isFuzzyMatch(core, name) || isFuzzyMatch(core, full)
}

// matchesSpec runs the staged filter pipeline for one candidate: exclusions
// drop it outright, every exact term must hold, then every include term.
func matchesSpec(spec Spec, path string, useRegex bool) bool {
	name := strings.ToLower(filepath.Base(path))
	full := strings.ToLower(path)

	for _, term := range spec.Exclude {
		if matchesExcludeTerm(term, name, full) {
			return false
		}
	}
	for _, term := range spec.Exact {
		if !matchesExactTerm(term, name, full) {
			return false
		}
	}
	for _, term := range spec.Include {
		if !matchesIncludeTerm(term, name, full, useRegex) {
			return false
		}
	}
	return true
}
