package scoring

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Record carries the field names the external semantic-equivalence scorer
// expects. The delegate reads Response where the rest of this system says
// Answer; the adapter performs the remap.
type Record struct {
	Question string
	Response string
}

// SemanticScorer is the external semantic-equivalence collaborator. A nil
// score pointer means "no score" and is treated as 0.0. Implementations may
// fail for any reason; callers degrade to the overlap scorer on error.
type SemanticScorer interface {
	Score(ctx context.Context, gold, pred Record) (*float64, error)
}

// DelegateResult is the explicit outcome of a delegate invocation. A non-nil
// Err means Score is unusable and the caller must fall back.
type DelegateResult struct {
	Score float64
	Err   error
}

// SemanticAdapter remaps a gold/prediction pair into the delegate's field
// names and converts delegate failures into a value the dispatcher can
// branch on.
type SemanticAdapter struct {
	scorer SemanticScorer
	minLen int
}

// NewSemanticAdapter wraps the given scorer. A nil scorer yields an adapter
// whose Score always reports an error, which routes callers to the fallback.
func NewSemanticAdapter(scorer SemanticScorer, minLen int) *SemanticAdapter {
	return &SemanticAdapter{scorer: scorer, minLen: minLen}
}

// Eligible reports whether both answers are long enough, after
// normalization, for semantic decomposition to be reliable.
func (a *SemanticAdapter) Eligible(expected, actual string) bool {
	return len(normalize(expected)) >= a.minLen && len(normalize(actual)) >= a.minLen
}

// Score invokes the delegate with remapped field names. The gold record
// keeps the question so the delegate can judge relevance; the prediction
// record carries only the candidate response.
func (a *SemanticAdapter) Score(ctx context.Context, gold Example, pred Prediction) DelegateResult {
	if a.scorer == nil {
		return DelegateResult{Err: fmt.Errorf("no semantic scorer configured")}
	}

	goldRec := Record{Question: gold.Question, Response: gold.Answer}
	predRec := Record{Response: pred.Answer}

	score, err := a.scorer.Score(ctx, goldRec, predRec)
	if err != nil {
		return DelegateResult{Err: fmt.Errorf("semantic delegate: %w", err)}
	}
	if score == nil {
		return DelegateResult{Score: 0.0}
	}
	return DelegateResult{Score: clamp01(*score)}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// ChatFunc issues a single prompt to a language model and returns its text.
type ChatFunc func(ctx context.Context, prompt string) (string, error)

// EquivalenceJudge scores semantic equivalence by asking a language model to
// decompose the expected answer into claims and check each against the
// candidate. It implements SemanticScorer.
type EquivalenceJudge struct {
	chat ChatFunc
}

// NewEquivalenceJudge builds a judge on top of the given chat function.
func NewEquivalenceJudge(chat ChatFunc) *EquivalenceJudge {
	return &EquivalenceJudge{chat: chat}
}

const judgePromptTemplate = `Compare the expected answer with the candidate answer to the same question.

Question: %s

Expected answer: %s

Candidate answer: %s

Break the expected answer into its individual factual claims. For each claim, decide whether the candidate answer states or entails it. The score is the fraction of claims the candidate covers, reduced for claims the candidate asserts that contradict the expected answer.

Respond in exactly this format:
REASONING: <one or two sentences>
SCORE: <number between 0.0 and 1.0>`

// Score prompts the model and parses the SCORE line from its reply.
func (j *EquivalenceJudge) Score(ctx context.Context, gold, pred Record) (*float64, error) {
	prompt := fmt.Sprintf(judgePromptTemplate, gold.Question, gold.Response, pred.Response)

	reply, err := j.chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("judge request failed: %w", err)
	}

	score, ok := parseJudgeScore(reply)
	if !ok {
		return nil, fmt.Errorf("judge reply has no parseable SCORE line: %.80q", reply)
	}
	return &score, nil
}

// parseJudgeScore extracts the numeric value of the first SCORE: line.
func parseJudgeScore(content string) (float64, bool) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "SCORE:") {
			continue
		}
		raw := strings.TrimSpace(strings.TrimPrefix(line, "SCORE:"))
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		return clamp01(score), true
	}
	return 0, false
}
