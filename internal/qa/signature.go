// Package qa wires the context-grounded question answering program: the
// signature, the chain-of-thought module, the embedded dataset, the adapters
// that bridge into dspy-go, optimizer driving, and artifact persistence.
package qa

import (
	"github.com/XiaoConstantine/dspy-go/pkg/core"
)

// answerInstruction mandates context-only answers. The refusal sentence is
// the one the prediction-side refusal vocabulary is tuned to detect.
const answerInstruction = `Answer questions using ONLY the information provided in the context.

Rules:
1. Answer using only the information in the context.
2. If the answer is not in the context, reply exactly: "This information is not provided in the context."
3. Do not use outside knowledge and do not make up information.`

// GenerateAnswerSignature builds the context, question -> answer signature.
func GenerateAnswerSignature() core.Signature {
	inputs := []core.InputField{
		{Field: core.NewField("context")},
		{Field: core.NewField("question")},
	}
	outputs := []core.OutputField{
		{Field: core.NewField("answer")},
	}

	return core.NewSignature(inputs, outputs).WithInstruction(answerInstruction)
}
