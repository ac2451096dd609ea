// Package scoring implements the heuristic metrics used to grade
// context-grounded question answering: refusal classification, normalized
// matching, token overlap, and an optional semantic equivalence delegate,
// combined by a hallucination-aware dispatcher.
package scoring

import "context"

// Example is a gold dataset entry. Answer is ground truth and is consumed
// only by scoring, never shown to the prediction step.
type Example struct {
	Context  string
	Question string
	Answer   string
}

// Prediction is a model output. Reasoning is carried for display and is
// ignored by every scorer.
type Prediction struct {
	Answer    string
	Reasoning string
}

// Trace holds execution-trace data passed through by optimizer callbacks.
// Scorers accept it for interface compatibility and ignore it.
type Trace struct {
	Steps []TraceStep
}

// TraceStep records a single module invocation within a trace.
type TraceStep struct {
	Name   string
	Inputs map[string]any
	Output any
	Err    error
}

// ScoreWithFeedback pairs a numeric score in [0,1] with a human-readable
// diagnostic.
type ScoreWithFeedback struct {
	Score    float64
	Feedback string
}

// Metric scores a prediction against a gold example. Implementations must be
// safe for concurrent use and must not return errors: scoring failures
// degrade to a deterministic fallback score instead.
type Metric interface {
	Score(ctx context.Context, gold Example, pred Prediction, trace *Trace) ScoreWithFeedback
}

// Thresholds collects the tunable constants of the metric suite.
type Thresholds struct {
	// SemanticMinLength is the minimum normalized length, required of both
	// answers, for routing to the semantic delegate. Shorter answers use
	// the overlap scorer.
	SemanticMinLength int

	// OverlapThreshold is the token-overlap ratio at which the overlap
	// scorer accepts. The boundary is inclusive.
	OverlapThreshold float64

	// Truncation lengths for hallucination diagnostics.
	DiagQuestionLen int
	DiagExpectedLen int
	DiagActualLen   int
}

// DefaultThresholds returns the production defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SemanticMinLength: 50,
		OverlapThreshold:  0.80,
		DiagQuestionLen:   40,
		DiagExpectedLen:   60,
		DiagActualLen:     80,
	}
}
