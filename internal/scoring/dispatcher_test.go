package scoring

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDispatcher(opts ...DispatcherOption) *Dispatcher {
	opts = append([]DispatcherOption{WithLogger(quietLogger())}, opts...)
	return NewDispatcher(DefaultThresholds(), opts...)
}

func TestDispatcherRefusalAccepted(t *testing.T) {
	d := newTestDispatcher()
	gold := Example{
		Question: "How do you create a metaclass in Python?",
		Answer:   "This information is not provided in the context",
	}

	variants := []string{
		"This information is not provided in the context",
		"Not mentioned in the provided context",
		"Cannot answer from the given context",
		"This is not stated in the context",
		"Not in context",
		"Don't know",
		"Not provided",
	}

	for _, answer := range variants {
		got := d.Score(context.Background(), gold, Prediction{Answer: answer}, nil)
		if got.Score != 1.0 {
			t.Errorf("refusal %q scored %v, want 1.0 (%s)", answer, got.Score, got.Feedback)
		}
	}
}

func TestDispatcherHallucination(t *testing.T) {
	d := newTestDispatcher()
	gold := Example{
		Question: "What is the Global Interpreter Lock?",
		Answer:   "This information is not provided in the context",
	}
	pred := Prediction{Answer: "The GIL is a mutex that protects access to Python objects."}

	got := d.Score(context.Background(), gold, pred, nil)
	if got.Score != 0.0 {
		t.Errorf("hallucinated answer scored %v, want 0.0", got.Score)
	}
	if !strings.Contains(got.Feedback, "hallucination") {
		t.Errorf("feedback %q should name the hallucination", got.Feedback)
	}
}

// A refusal expectation is all or nothing: overlapping words with the gold
// refusal earn no partial credit.
func TestDispatcherRefusalNoPartialCredit(t *testing.T) {
	d := newTestDispatcher()
	gold := Example{Answer: "This information is not provided in the context"}
	pred := Prediction{Answer: "The information about this is that metaclasses use type()"}

	got := d.Score(context.Background(), gold, pred, nil)
	if got.Score != 0.0 {
		t.Errorf("near-miss refusal scored %v, want 0.0", got.Score)
	}
}

func TestDispatcherExactMatch(t *testing.T) {
	d := newTestDispatcher()
	gold := Example{Question: "What keyword defines a lambda?", Answer: "lambda"}
	pred := Prediction{Answer: "  Lambda "}

	got := d.Score(context.Background(), gold, pred, nil)
	if got.Score != 1.0 {
		t.Errorf("exact match scored %v, want 1.0", got.Score)
	}
}

func TestDispatcherShortAnswersUseOverlap(t *testing.T) {
	fake := &fakeScorer{score: floatPtr(0.0)}
	d := newTestDispatcher(WithSemanticScorer(fake))

	gold := Example{Question: "What is a tuple?", Answer: "@"}
	pred := Prediction{Answer: "the @ symbol"}

	got := d.Score(context.Background(), gold, pred, nil)
	if got.Score != 1.0 {
		t.Errorf("substring containment scored %v, want 1.0", got.Score)
	}
	if len(fake.calls) != 0 {
		t.Error("semantic delegate must not run for answers below the length gate")
	}
}

func TestDispatcherLengthRouting(t *testing.T) {
	long := strings.Repeat("x", 60)
	justShort := strings.Repeat("y", 49)

	tests := []struct {
		name       string
		expected   string
		actual     string
		wantCalled bool
	}{
		{"both long routes to delegate", long, strings.Repeat("z", 60), true},
		{"short expected stays local", justShort, strings.Repeat("z", 60), false},
		{"short actual stays local", long, justShort, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeScorer{score: floatPtr(0.75)}
			d := newTestDispatcher(WithSemanticScorer(fake))

			got := d.Score(context.Background(), Example{Answer: tt.expected}, Prediction{Answer: tt.actual}, nil)

			if called := len(fake.calls) > 0; called != tt.wantCalled {
				t.Fatalf("delegate called = %v, want %v", called, tt.wantCalled)
			}
			if tt.wantCalled && got.Score != 0.75 {
				t.Errorf("delegate score %v not propagated, got %v", 0.75, got.Score)
			}
		})
	}
}

func TestDispatcherDelegateFailureFallsBack(t *testing.T) {
	fake := &fakeScorer{err: errors.New("judge offline")}
	d := newTestDispatcher(WithSemanticScorer(fake))

	// Long enough for the delegate, and containment makes the fallback
	// succeed.
	answer := "A data descriptor defines both __get__ and __set__ methods on the class."
	gold := Example{Question: "What is a data descriptor?", Answer: answer}
	pred := Prediction{Answer: "Right: " + answer}

	got := d.Score(context.Background(), gold, pred, nil)
	if got.Score != 1.0 {
		t.Errorf("fallback after delegate failure scored %v, want 1.0", got.Score)
	}
	if len(fake.calls) == 0 {
		t.Error("delegate should have been attempted")
	}
}

func TestDispatcherNoDelegateConfigured(t *testing.T) {
	d := newTestDispatcher()

	answer := "The @property decorator turns a method into attribute-style access."
	gold := Example{Answer: answer}
	pred := Prediction{Answer: answer + " It also supports setters."}

	got := d.Score(context.Background(), gold, pred, nil)
	if got.Score != 1.0 {
		t.Errorf("overlap fallback without a delegate scored %v, want 1.0", got.Score)
	}
}

func TestDispatcherIgnoresTrace(t *testing.T) {
	d := newTestDispatcher()
	gold := Example{Answer: "tuples"}
	pred := Prediction{Answer: "tuples"}

	withNil := d.Score(context.Background(), gold, pred, nil)
	withTrace := d.Score(context.Background(), gold, pred, &Trace{Steps: []TraceStep{{Name: "generate_answer"}}})

	if withNil != withTrace {
		t.Errorf("trace changed the result: %+v vs %+v", withNil, withTrace)
	}
}

func TestTruncateOnRuneBoundaries(t *testing.T) {
	long := strings.Repeat("日本語テキスト", 20)
	for _, n := range []int{1, 5, 40, 80} {
		got := truncate(long, n)
		if !utf8.ValidString(got) {
			t.Errorf("truncate(_, %d) produced invalid UTF-8: %q", n, got)
		}
		if want := n + len("..."); utf8.RuneCountInString(got) != want {
			t.Errorf("truncate(_, %d) kept %d runes, want %d", n, utf8.RuneCountInString(got), want)
		}
	}

	if got := truncate("héllo", 80); got != "héllo" {
		t.Errorf("short string should pass through, got %q", got)
	}
	if got := truncate("héllo", 0); got != "héllo" {
		t.Errorf("non-positive limit should pass through, got %q", got)
	}
}

func TestDispatcherDiagnosticsStayValidUTF8(t *testing.T) {
	d := newTestDispatcher()
	gold := Example{
		Question: strings.Repeat("データ記述子とは何ですか？", 10),
		Answer:   "This information is not provided in the context",
	}
	pred := Prediction{Answer: strings.Repeat("記述子は__get__と__set__を定義します。", 10)}

	got := d.Score(context.Background(), gold, pred, nil)
	if got.Score != 0.0 {
		t.Fatalf("hallucinated answer scored %v, want 0.0", got.Score)
	}
	if !utf8.ValidString(got.Feedback) {
		t.Errorf("feedback contains invalid UTF-8: %q", got.Feedback)
	}
}

func TestDispatcherIdempotent(t *testing.T) {
	d := newTestDispatcher()
	gold := Example{Question: "What must dictionary keys be?", Answer: "immutable"}
	pred := Prediction{Answer: "Keys must be immutable"}

	first := d.Score(context.Background(), gold, pred, nil)
	for i := 0; i < 3; i++ {
		if got := d.Score(context.Background(), gold, pred, nil); got != first {
			t.Fatalf("score changed between calls: %+v then %+v", first, got)
		}
	}
}
