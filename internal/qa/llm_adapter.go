package qa

import (
	"context"
	"fmt"

	"github.com/XiaoConstantine/dspy-go/pkg/core"

	"github.com/longregen/ctxqa/internal/llm"
	"github.com/longregen/ctxqa/internal/scoring"
)

// ChatClient is the slice of the HTTP client the adapter needs.
type ChatClient interface {
	Chat(ctx context.Context, messages []llm.ChatMessage) (*llm.ChatCompletionResponse, error)
	Model() string
}

// LLMAdapter exposes the chat client through dspy-go's core.LLM interface.
// Only Generate is exercised by the Predict/ChainOfThought modules and the
// optimizers this harness drives; the remaining methods report themselves
// unimplemented.
type LLMAdapter struct {
	client ChatClient
}

// NewLLMAdapter creates a new adapter over the given client.
func NewLLMAdapter(client ChatClient) *LLMAdapter {
	return &LLMAdapter{client: client}
}

// Generate implements the dspy-go LLM interface
func (a *LLMAdapter) Generate(ctx context.Context, prompt string, opts ...core.GenerateOption) (*core.LLMResponse, error) {
	resp, err := a.client.Chat(ctx, []llm.ChatMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return &core.LLMResponse{
		Content: resp.Choices[0].Message.Content,
	}, nil
}

func (a *LLMAdapter) GenerateWithJSON(ctx context.Context, prompt string, opts ...core.GenerateOption) (map[string]interface{}, error) {
	return nil, fmt.Errorf("GenerateWithJSON not implemented: the QA program uses plain text generation")
}

func (a *LLMAdapter) GenerateWithFunctions(ctx context.Context, prompt string, functions []map[string]interface{}, opts ...core.GenerateOption) (map[string]interface{}, error) {
	return nil, fmt.Errorf("GenerateWithFunctions not implemented: the QA program does not call tools")
}

func (a *LLMAdapter) CreateEmbedding(ctx context.Context, input string, opts ...core.EmbeddingOption) (*core.EmbeddingResult, error) {
	return nil, fmt.Errorf("CreateEmbedding not implemented: scoring uses text heuristics, not embeddings")
}

func (a *LLMAdapter) CreateEmbeddings(ctx context.Context, inputs []string, opts ...core.EmbeddingOption) (*core.BatchEmbeddingResult, error) {
	return nil, fmt.Errorf("CreateEmbeddings not implemented: scoring uses text heuristics, not embeddings")
}

func (a *LLMAdapter) StreamGenerate(ctx context.Context, prompt string, opts ...core.GenerateOption) (*core.StreamResponse, error) {
	return nil, fmt.Errorf("StreamGenerate not implemented: training and evaluation run in batch mode")
}

func (a *LLMAdapter) GenerateWithContent(ctx context.Context, content []core.ContentBlock, opts ...core.GenerateOption) (*core.LLMResponse, error) {
	return nil, fmt.Errorf("GenerateWithContent not implemented: the QA program is text only")
}

func (a *LLMAdapter) StreamGenerateWithContent(ctx context.Context, content []core.ContentBlock, opts ...core.GenerateOption) (*core.StreamResponse, error) {
	return nil, fmt.Errorf("StreamGenerateWithContent not implemented: the QA program is text only")
}

// ProviderName returns the provider name
func (a *LLMAdapter) ProviderName() string {
	return "ctxqa"
}

// ModelID returns the model identifier
func (a *LLMAdapter) ModelID() string {
	return a.client.Model()
}

// Capabilities returns the capabilities of this LLM
func (a *LLMAdapter) Capabilities() []core.Capability {
	return []core.Capability{core.CapabilityChat, core.CapabilityCompletion}
}

// DatasetAdapter presents a []scoring.Example as dspy-go's core.Dataset.
type DatasetAdapter struct {
	examples []scoring.Example
	index    int
}

// NewDatasetAdapter creates a new dataset adapter
func NewDatasetAdapter(examples []scoring.Example) *DatasetAdapter {
	return &DatasetAdapter{examples: examples}
}

// Next returns the next example in the dataset
func (d *DatasetAdapter) Next() (core.Example, bool) {
	if d.index >= len(d.examples) {
		return core.Example{}, false
	}
	ex := d.examples[d.index]
	d.index++

	return core.Example{
		Inputs: map[string]interface{}{
			"context":  ex.Context,
			"question": ex.Question,
		},
		Outputs: map[string]interface{}{
			"answer": ex.Answer,
		},
	}, true
}

// Reset resets the dataset iterator
func (d *DatasetAdapter) Reset() {
	d.index = 0
}

// exampleFromMap rebuilds a gold example from an optimizer callback map.
func exampleFromMap(m map[string]interface{}) scoring.Example {
	return scoring.Example{
		Context:  coerceString(m["context"]),
		Question: coerceString(m["question"]),
		Answer:   coerceString(m["answer"]),
	}
}

// predictionFromMap rebuilds a prediction from an optimizer callback map.
func predictionFromMap(m map[string]interface{}) scoring.Prediction {
	pred := scoring.Prediction{}
	if v, ok := m["answer"]; ok {
		pred.Answer = coerceString(v)
	}
	if v, ok := m["rationale"]; ok {
		pred.Reasoning = coerceString(v)
	}
	return pred
}

// coreMetric converts a scoring metric into dspy-go's metric callback.
func coreMetric(metric scoring.Metric) core.Metric {
	return func(expected, actual map[string]interface{}) float64 {
		gold := exampleFromMap(expected)
		pred := predictionFromMap(actual)
		return metric.Score(context.Background(), gold, pred, nil).Score
	}
}
