package scoring

import "testing"

func TestExactMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     bool
	}{
		{"identical", "lambda", "lambda", true},
		{"case differs", "Lambda", "lambda", true},
		{"surrounding whitespace", "  tuples \n", "tuples", true},
		{"both empty", "", "", true},
		{"different", "lambda", "def", false},
		{"internal whitespace differs", "a  b", "a b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExactMatch(tt.expected, tt.actual); got != tt.want {
				t.Errorf("ExactMatch(%q, %q) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

func TestOverlapScorer(t *testing.T) {
	scorer := NewOverlapScorer(PredictionRefusalPhrases(), 0.80)

	tests := []struct {
		name     string
		expected string
		actual   string
		want     float64
	}{
		{"exact", "lambda", "lambda", 1.0},
		{"normalized exact", "  Lambda ", "lambda", 1.0},
		{"both empty", "", "", 1.0},
		{"expected inside actual", "@", "the @ symbol", 1.0},
		{"actual inside expected", "the @ symbol", "@", 1.0},
		{"containment long form", "Python lists are mutable sequences", "Python lists are mutable", 1.0},
		{"overlap exactly at threshold", "alpha beta gamma delta epsilon", "delta gamma beta alpha zeta", 1.0},
		{"overlap below threshold", "alpha beta gamma delta epsilon", "alpha beta eta theta iota", 0.0},
		{"unrelated answers", "Python is a great language", "I like pizza", 0.0},
		{"refusal matches refusal", "Not provided in context", "Don't know", 1.0},
		{"refusal versus substantive answer", "Not provided in context", "Use a metaclass with type()", 0.0},
		{"refusal wording never piggybacks on overlap", "not mentioned here at all", "the words mentioned here at all", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scorer.Score(tt.expected, tt.actual); got != tt.want {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

// Equivalence checks must give the same result no matter how often they run.
func TestOverlapScorerIdempotent(t *testing.T) {
	scorer := NewOverlapScorer(PredictionRefusalPhrases(), 0.80)

	pairs := [][2]string{
		{"lambda", "lambda"},
		{"alpha beta gamma delta epsilon", "delta gamma beta alpha zeta"},
		{"Not provided", "Not in context"},
	}

	for _, pair := range pairs {
		first := scorer.Score(pair[0], pair[1])
		for i := 0; i < 3; i++ {
			if got := scorer.Score(pair[0], pair[1]); got != first {
				t.Errorf("Score(%q, %q) changed between calls: %v then %v", pair[0], pair[1], first, got)
			}
		}
	}
}
