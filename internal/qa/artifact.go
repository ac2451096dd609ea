package qa

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/longregen/ctxqa/internal/scoring"
)

// Artifact is the persisted record of a training run: the signature
// metadata and the demonstrations selected by the optimizer. Loading an
// artifact into a fresh module reproduces the trained behavior without
// rerunning optimization.
type Artifact struct {
	Version    int           `json:"version"`
	Optimizer  string        `json:"optimizer"`
	Signature  SignatureMeta `json:"signature"`
	Demos      []Demo        `json:"demos"`
	MeanScore  float64       `json:"mean_score"`
	TrainedAt  time.Time     `json:"trained_at"`
	DurationMs int64         `json:"duration_ms"`
}

// SignatureMeta describes the program signature the demos were trained for.
type SignatureMeta struct {
	Inputs      []string `json:"inputs"`
	Outputs     []string `json:"outputs"`
	Instruction string   `json:"instruction"`
}

// Demo is one persisted demonstration.
type Demo struct {
	Context  string `json:"context"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

const artifactVersion = 1

// NewArtifact records a training result for persistence.
func NewArtifact(kind OptimizerKind, result *TrainResult) *Artifact {
	demos := make([]Demo, len(result.Demos))
	for i, d := range result.Demos {
		demos[i] = Demo{Context: d.Context, Question: d.Question, Answer: d.Answer}
	}

	return &Artifact{
		Version:   artifactVersion,
		Optimizer: string(kind),
		Signature: SignatureMeta{
			Inputs:      []string{"context", "question"},
			Outputs:     []string{"answer"},
			Instruction: answerInstruction,
		},
		Demos:      demos,
		MeanScore:  result.MeanScore,
		TrainedAt:  time.Now().UTC(),
		DurationMs: result.Duration.Milliseconds(),
	}
}

// Examples converts the persisted demos back into scoring examples.
func (a *Artifact) Examples() []scoring.Example {
	out := make([]scoring.Example, len(a.Demos))
	for i, d := range a.Demos {
		out[i] = scoring.Example{Context: d.Context, Question: d.Question, Answer: d.Answer}
	}
	return out
}

// SaveArtifact writes the artifact as indented JSON, creating the parent
// directory if needed.
func SaveArtifact(path string, a *Artifact) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create artifact dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads an artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("unsupported artifact version %d in %s", a.Version, path)
	}
	return &a, nil
}

// LoadModule builds a QA module primed with the artifact's demonstrations.
func LoadModule(path string) (*Module, *Artifact, error) {
	artifact, err := LoadArtifact(path)
	if err != nil {
		return nil, nil, err
	}

	module := NewModule()
	module.SetDemos(artifact.Examples())
	return module, artifact, nil
}
