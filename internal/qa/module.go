package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/XiaoConstantine/dspy-go/pkg/modules"

	"github.com/longregen/ctxqa/internal/scoring"
)

// Module is the chain-of-thought QA program. It owns the few-shot
// demonstrations selected by training; when present they are folded into
// the context input on every call.
type Module struct {
	cot   *modules.ChainOfThought
	demos []scoring.Example
}

// NewModule creates an untrained QA module.
func NewModule() *Module {
	return &Module{
		cot: modules.NewChainOfThought(GenerateAnswerSignature()),
	}
}

// SetDemos replaces the demonstrations used on subsequent calls.
func (m *Module) SetDemos(demos []scoring.Example) {
	m.demos = append([]scoring.Example(nil), demos...)
}

// Demos returns a copy of the current demonstrations.
func (m *Module) Demos() []scoring.Example {
	return append([]scoring.Example(nil), m.demos...)
}

// Answer generates an answer for the question grounded in the given
// context text.
func (m *Module) Answer(ctx context.Context, contextText, question string) (scoring.Prediction, error) {
	inputs := map[string]any{
		"context":  m.renderContext(contextText),
		"question": question,
	}

	outputs, err := m.cot.Process(ctx, inputs)
	if err != nil {
		return scoring.Prediction{}, fmt.Errorf("generate answer failed: %w", err)
	}

	return predictionFromOutputs(outputs), nil
}

// renderContext prepends worked examples to the raw context text.
func (m *Module) renderContext(contextText string) string {
	if len(m.demos) == 0 {
		return contextText
	}

	var b strings.Builder
	b.WriteString("Worked examples:\n\n")
	for i, demo := range m.demos {
		fmt.Fprintf(&b, "Example %d:\nContext: %s\nQuestion: %s\nAnswer: %s\n\n",
			i+1, demo.Context, demo.Question, demo.Answer)
	}
	b.WriteString("---\n\n")
	b.WriteString(contextText)
	return b.String()
}

// Program wraps the module in a core.Program for use with dspy-go
// optimizers.
func (m *Module) Program() core.Program {
	mods := map[string]core.Module{
		"generate_answer": m.cot,
	}

	forward := func(ctx context.Context, inputs map[string]interface{}) (map[string]interface{}, error) {
		outputs, err := m.cot.Process(ctx, inputs)
		if err != nil {
			return nil, err
		}
		return outputs, nil
	}

	return core.NewProgram(mods, forward)
}

// predictionFromOutputs extracts the answer and optional rationale from a
// module or program output map.
func predictionFromOutputs(outputs map[string]any) scoring.Prediction {
	pred := scoring.Prediction{}
	if v, ok := outputs["answer"]; ok {
		pred.Answer = coerceString(v)
	}
	if v, ok := outputs["rationale"]; ok {
		pred.Reasoning = coerceString(v)
	}
	return pred
}

// coerceString renders an output value as a string. Missing or non-string
// values degrade to their printed form instead of failing scoring.
func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}
