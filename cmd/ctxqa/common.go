package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/longregen/ctxqa/internal/config"
	"github.com/longregen/ctxqa/internal/llm"
	"github.com/longregen/ctxqa/internal/qa"
	"github.com/longregen/ctxqa/internal/scoring"
)

// Version information (set via ldflags)
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// Shared global variables
var (
	cfg       *config.Config
	llmClient *llm.Client
)

// newMetric builds the hallucination-aware dispatcher from the loaded
// configuration, wiring in the LLM equivalence judge when enabled.
func newMetric() *scoring.Dispatcher {
	thresholds := scoring.DefaultThresholds()
	thresholds.SemanticMinLength = cfg.Scoring.SemanticMinLength
	thresholds.OverlapThreshold = cfg.Scoring.OverlapThreshold

	opts := []scoring.DispatcherOption{}
	if cfg.Scoring.UseJudge {
		judge := scoring.NewEquivalenceJudge(llmClient.Complete)
		opts = append(opts, scoring.WithSemanticScorer(judge))
	}

	return scoring.NewDispatcher(thresholds, opts...)
}

// artifactPath maps an optimizer kind to its trained model file.
func artifactPath(kind qa.OptimizerKind) string {
	if kind == qa.OptimizerMIPRO {
		return cfg.MIPROArtifactPath()
	}
	return cfg.BootstrapArtifactPath()
}

// loadTrainedModule loads a module from the given path, or from the
// bootstrap artifact when path is empty.
func loadTrainedModule(path string) (*qa.Module, *qa.Artifact, error) {
	if path == "" {
		path = cfg.BootstrapArtifactPath()
	}
	module, artifact, err := qa.LoadModule(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load trained model (run 'ctxqa train' first): %w", err)
	}
	return module, artifact, nil
}

// evaluate runs the module over the examples and scores each prediction.
func evaluate(ctx context.Context, module *qa.Module, metric scoring.Metric, examples []scoring.Example) (mean float64, exact int, err error) {
	var total float64
	for _, ex := range examples {
		pred, err := module.Answer(ctx, ex.Context, ex.Question)
		if err != nil {
			return 0, 0, fmt.Errorf("prediction failed for %q: %w", ex.Question, err)
		}
		result := metric.Score(ctx, ex, pred, nil)
		total += result.Score
		if result.Score >= 1.0 {
			exact++
		}
	}
	if len(examples) > 0 {
		mean = total / float64(len(examples))
	}
	return mean, exact, nil
}

// printHeader prints a section banner.
func printHeader(title string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 63))
	fmt.Printf("  %s\n", title)
	fmt.Println(strings.Repeat("=", 63))
}

// maskSecret masks a secret string for display
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "(set)"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// snippet shortens a string to at most n runes for table display.
func snippet(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// passMark renders a pass/fail marker.
func passMark(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
