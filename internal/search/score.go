package search

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Scorer rates how well a query resembles a candidate text. Scores feed the
// ranking before boosts are applied; implementations only need to agree on
// relative ordering, not on exact values.
type Scorer interface {
	Score(query, text string) float64
}

// RatioScorer is the built-in scorer: an LCS similarity ratio scaled to
// 0-100, with flat bonuses when the query is a substring or prefix of the
// text.
type RatioScorer struct{}

func (RatioScorer) Score(query, text string) float64 {
	if query == "" {
		return 0
	}
	q := strings.ToLower(query)
	t := strings.ToLower(text)

	qLen := len([]rune(q))
	tLen := len([]rune(t))
	score := 0.0
	if qLen+tLen > 0 {
		lcs := edlib.LCS(q, t)
		score = 2 * float64(lcs) / float64(qLen+tLen) * 100
	}

	if strings.Contains(t, q) {
		score += 25
	}
	if strings.HasPrefix(t, q) {
		score += 30
	}
	return score
}

// WeightedScorer is the preferred scorer: the Jaro-Winkler similarity scaled
// to 0-100, used as-is. The substring and prefix bonuses belong to the ratio
// formula only. It falls back to the ratio scorer when the similarity
// computation fails.
type WeightedScorer struct {
	fallback RatioScorer
}

func (s WeightedScorer) Score(query, text string) float64 {
	if query == "" {
		return 0
	}
	q := strings.ToLower(query)
	t := strings.ToLower(text)

	sim, err := edlib.StringsSimilarity(q, t, edlib.JaroWinkler)
	if err != nil {
		return s.fallback.Score(query, text)
	}
	return float64(sim) * 100
}
