package scoring

import "strings"

// normalize lowercases and trims surrounding whitespace.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ExactMatch reports whether two answers are equal after case and whitespace
// normalization. This is the fast accept check on every scoring path.
func ExactMatch(expected, actual string) bool {
	return normalize(expected) == normalize(actual)
}

// OverlapScorer is the deterministic fallback matcher: a boolean gate over
// substring containment and token overlap, not a graded score. It handles
// short answers and any case where the semantic delegate is unavailable.
type OverlapScorer struct {
	refusals  Vocabulary
	threshold float64
}

// NewOverlapScorer builds a scorer with the given refusal profile (the
// lenient, prediction-side one) and acceptance threshold.
func NewOverlapScorer(refusals Vocabulary, threshold float64) *OverlapScorer {
	return &OverlapScorer{refusals: refusals, threshold: threshold}
}

// Score returns 1.0 when the answers are considered equivalent, else 0.0.
//
// Checks run in order: normalized equality (covers both empty), the refusal
// branch (a refusal-shaped expectation is satisfied only by a refusal-shaped
// answer, never by token overlap), bidirectional substring containment, and
// finally token-set overlap measured against the expected answer's tokens.
func (s *OverlapScorer) Score(expected, actual string) float64 {
	e := normalize(expected)
	a := normalize(actual)

	if e == a {
		return 1.0
	}

	if s.refusals.Matches(e) {
		if s.refusals.Matches(a) {
			return 1.0
		}
		return 0.0
	}

	if strings.Contains(a, e) || strings.Contains(e, a) {
		return 1.0
	}

	expectedTokens := tokenSet(e)
	if len(expectedTokens) == 0 {
		return 0.0
	}
	actualTokens := tokenSet(a)

	overlap := 0
	for tok := range expectedTokens {
		if actualTokens[tok] {
			overlap++
		}
	}
	if float64(overlap)/float64(len(expectedTokens)) >= s.threshold {
		return 1.0
	}
	return 0.0
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool, 16)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}
