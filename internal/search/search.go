package search

import (
	"path/filepath"
	"sort"
	"strings"
)

// Scored pairs an entry with its final score. Boosts are additive, so scores
// can exceed the base scorer's 0-100 range.
type Scored struct {
	Path  string
	Score float64
}

const (
	boostBasenameEquals = 1000
	boostPathEquals     = 900
	boostExactTerm      = 800
)

// Search filters and ranks entries against query, returning at most limit
// results ordered by score descending. Equal scores keep the order in which
// candidates survived filtering. A blank query or non-positive limit yields
// no results; listing everything on an empty query is the presentation
// layer's job.
func Search(query string, entries []string, limit int, useRegex bool) []Scored {
	return SearchWith(query, entries, limit, useRegex, WeightedScorer{})
}

// SearchWith is Search with an explicit scorer.
func SearchWith(query string, entries []string, limit int, useRegex bool, scorer Scorer) []Scored {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	spec := ParseQuery(query)

	var filtered []string
	for _, path := range entries {
		if matchesSpec(spec, path, useRegex) {
			filtered = append(filtered, path)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	// The scoring query joins the include terms verbatim, anchors included:
	// an anchored term never equals a basename, so it never earns the
	// equality boosts. Exclusions never score and exact terms only stand in
	// when no include term exists.
	q := strings.ToLower(strings.Join(spec.Include, " "))
	if q == "" && len(spec.Exact) > 0 {
		q = strings.ToLower(spec.Exact[0])
	}

	scored := make([]Scored, 0, len(filtered))
	for _, path := range filtered {
		name := strings.ToLower(filepath.Base(path))
		full := strings.ToLower(path)

		scoreQuery := q
		if scoreQuery == "" {
			scoreQuery = full
		}
		score := scorer.Score(scoreQuery, full)

		if q != "" && name == q {
			score += boostBasenameEquals
		} else if q != "" && full == q {
			score += boostPathEquals
		}
		for _, term := range spec.Exact {
			if matchesExactTerm(term, name, full) {
				score += boostExactTerm
			}
		}

		scored = append(scored, Scored{Path: path, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
