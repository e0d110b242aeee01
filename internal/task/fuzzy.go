package task

import "strings"

// MatchContext tunes the fuzzy term matcher for a term domain. Keywords
// and flow names use different awards and thresholds: flow names demand
// higher precision because there are fewer of them and they name whole
// workflows.
type MatchContext struct {
	SubstringAward  float64 // awarded when one term contains the other
	SimilarityAward float64 // awarded on an edit-distance near-match
	SimilarityMin   float64 // exclusive threshold for the near-match tier
}

// Keywords is the matching context for task keyword sets.
var Keywords = MatchContext{
	SubstringAward:  0.7,
	SimilarityAward: 0.5,
	SimilarityMin:   0.8,
}

// Flows is the matching context for flow-name sets.
var Flows = MatchContext{
	SubstringAward:  0.8,
	SimilarityAward: 0.6,
	SimilarityMin:   0.85,
}

// termAward scores a single (query, candidate) pair through the tiers:
// exact 1.0, substring either direction, then edit-distance similarity.
// Both terms must already be normalized.
func (c MatchContext) termAward(q, cand string) float64 {
	switch {
	case q == cand:
		return 1.0
	case strings.Contains(q, cand) || strings.Contains(cand, q):
		return c.SubstringAward
	case Similarity(q, cand) > c.SimilarityMin:
		return c.SimilarityAward
	}
	return 0
}

// Score computes the aggregate match score in [0,1] between a query
// term set and a candidate term set. Every pair contributes its tier
// award; the sum is divided by the larger set size and capped at 1.
// Either side empty scores 0.
func (c MatchContext) Score(query, candidates []string) float64 {
	q := normalizeTerms(query)
	cand := normalizeTerms(candidates)
	if len(q) == 0 || len(cand) == 0 {
		return 0
	}

	total := 0.0
	for _, qt := range q {
		for _, ct := range cand {
			total += c.termAward(qt, ct)
		}
	}

	denom := len(q)
	if len(cand) > denom {
		denom = len(cand)
	}
	score := total / float64(denom)
	if score > 1 {
		return 1
	}
	return score
}

// MatchedTerms returns the candidate terms (original casing) that earn
// a nonzero award against any query term. It shares termAward with the
// scorer, so the "why it matched" list can never disagree with Score.
func (c MatchContext) MatchedTerms(query, candidates []string) []string {
	q := normalizeTerms(query)
	if len(q) == 0 {
		return nil
	}

	var matched []string
	seen := make(map[string]bool)
	for _, raw := range candidates {
		ct := normalizeTerm(raw)
		if ct == "" || seen[ct] {
			continue
		}
		for _, qt := range q {
			if c.termAward(qt, ct) > 0 {
				matched = append(matched, raw)
				seen[ct] = true
				break
			}
		}
	}
	return matched
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeTerms lowercases and trims every term, dropping empties.
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := normalizeTerm(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}
