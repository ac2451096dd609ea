package scoring

import (
	"context"
	"fmt"
	"log/slog"
)

// Dispatcher is the top-level hallucination-aware metric. Each call is a
// pure function of its arguments; the only side effects are log records for
// hallucinations and delegate failures. Safe for concurrent use.
type Dispatcher struct {
	goldRefusals Vocabulary
	predRefusals Vocabulary
	thresholds   Thresholds
	scorer       SemanticScorer
	logger       *slog.Logger

	overlap  *OverlapScorer
	semantic *SemanticAdapter
}

// DispatcherOption customizes a Dispatcher at construction time.
type DispatcherOption func(*Dispatcher)

// WithSemanticScorer installs the semantic-equivalence delegate. Without it,
// answers above the length gate fall through to the overlap scorer.
func WithSemanticScorer(s SemanticScorer) DispatcherOption {
	return func(d *Dispatcher) { d.scorer = s }
}

// WithVocabularies overrides the refusal profiles. Gold stays strict and
// pred stays lenient; callers supplying custom profiles keep that split.
func WithVocabularies(gold, pred Vocabulary) DispatcherOption {
	return func(d *Dispatcher) {
		d.goldRefusals = gold
		d.predRefusals = pred
	}
}

// WithLogger sets the logger used for hallucination diagnostics.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// NewDispatcher builds a dispatcher with the default refusal profiles and
// the given thresholds.
func NewDispatcher(th Thresholds, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		goldRefusals: GoldRefusalPhrases(),
		predRefusals: PredictionRefusalPhrases(),
		thresholds:   th,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.overlap = NewOverlapScorer(d.predRefusals, th.OverlapThreshold)
	d.semantic = NewSemanticAdapter(d.scorer, th.SemanticMinLength)
	return d
}

// Score routes a gold/prediction pair to the appropriate strategy and
// returns a score in [0,1]. The trace argument exists for optimizer
// callback compatibility and is ignored.
func (d *Dispatcher) Score(ctx context.Context, gold Example, pred Prediction, trace *Trace) ScoreWithFeedback {
	_ = trace

	if d.goldRefusals.Matches(gold.Answer) {
		return d.scoreRefusal(gold, pred)
	}
	return d.scoreAnswer(ctx, gold, pred)
}

// scoreRefusal grades negative examples: all or nothing, no partial credit.
// An answered question where a refusal was expected is a hallucination.
func (d *Dispatcher) scoreRefusal(gold Example, pred Prediction) ScoreWithFeedback {
	if d.predRefusals.Matches(pred.Answer) {
		return ScoreWithFeedback{Score: 1.0, Feedback: "correctly refused"}
	}

	expected := truncate(gold.Answer, d.thresholds.DiagExpectedLen)
	actual := truncate(pred.Answer, d.thresholds.DiagActualLen)

	d.logger.Warn("hallucination: model answered where a refusal was expected",
		"question", truncate(gold.Question, d.thresholds.DiagQuestionLen),
		"expected", expected,
		"actual", actual,
	)

	return ScoreWithFeedback{
		Score:    0.0,
		Feedback: fmt.Sprintf("hallucination: expected refusal %q, got %q", expected, actual),
	}
}

// scoreAnswer grades positive examples: exact match first, then either the
// overlap scorer or the semantic delegate depending on answer length.
func (d *Dispatcher) scoreAnswer(ctx context.Context, gold Example, pred Prediction) ScoreWithFeedback {
	if ExactMatch(gold.Answer, pred.Answer) {
		return ScoreWithFeedback{Score: 1.0, Feedback: "exact match"}
	}

	if !d.semantic.Eligible(gold.Answer, pred.Answer) {
		return d.overlapResult(gold, pred)
	}

	result := d.semantic.Score(ctx, gold, pred)
	if result.Err != nil {
		d.logger.Warn("semantic delegate failed, using overlap scorer",
			"error", result.Err,
			"question", truncate(gold.Question, d.thresholds.DiagQuestionLen),
		)
		return d.overlapResult(gold, pred)
	}

	return ScoreWithFeedback{
		Score:    result.Score,
		Feedback: fmt.Sprintf("semantic equivalence %.2f", result.Score),
	}
}

func (d *Dispatcher) overlapResult(gold Example, pred Prediction) ScoreWithFeedback {
	if score := d.overlap.Score(gold.Answer, pred.Answer); score >= 1.0 {
		return ScoreWithFeedback{Score: score, Feedback: "overlap match"}
	}
	return ScoreWithFeedback{
		Score: 0.0,
		Feedback: fmt.Sprintf("mismatch: expected %q, got %q",
			truncate(gold.Answer, d.thresholds.DiagExpectedLen),
			truncate(pred.Answer, d.thresholds.DiagActualLen)),
	}
}

// truncate shortens s to at most n runes. Cutting on rune boundaries keeps
// diagnostics valid UTF-8 when answers contain multibyte text.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
