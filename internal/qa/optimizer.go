package qa

import (
	"context"
	"fmt"
	"time"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/XiaoConstantine/dspy-go/pkg/optimizers"

	"github.com/longregen/ctxqa/internal/scoring"
)

// OptimizerKind selects the external optimizer driven by Train.
type OptimizerKind string

const (
	OptimizerBootstrap OptimizerKind = "bootstrap"
	OptimizerMIPRO     OptimizerKind = "mipro"
)

// AutoMode maps to MIPRO's search effort presets.
type AutoMode string

const (
	AutoLight  AutoMode = "light"
	AutoMedium AutoMode = "medium"
	AutoHeavy  AutoMode = "heavy"
)

// TrainConfig holds the optimizer selection and demonstration budgets.
type TrainConfig struct {
	Kind                 OptimizerKind
	Auto                 AutoMode
	MaxBootstrappedDemos int
	MaxLabeledDemos      int
}

// DefaultTrainConfig returns the production training budgets.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Kind:                 OptimizerBootstrap,
		Auto:                 AutoLight,
		MaxBootstrappedDemos: 4,
		MaxLabeledDemos:      6,
	}
}

// TrainResult carries the optimized program, the demonstrations selected
// for persistence, and summary statistics.
type TrainResult struct {
	Program   core.Program
	Demos     []scoring.Example
	MeanScore float64
	Duration  time.Duration
}

// Train drives an external optimizer over the training set, then re-scores
// the set under the optimized program to derive the demonstrations worth
// persisting.
func Train(ctx context.Context, cfg TrainConfig, module *Module, adapter *LLMAdapter, trainset []scoring.Example, metric scoring.Metric) (*TrainResult, error) {
	if len(trainset) == 0 {
		return nil, fmt.Errorf("training set is empty")
	}

	core.SetDefaultLLM(adapter)

	program := module.Program()
	dataset := NewDatasetAdapter(trainset)

	optimizer, err := newOptimizer(cfg, metric)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	optimized, err := optimizer.Compile(ctx, program, dataset, coreMetric(metric))
	if err != nil {
		return nil, fmt.Errorf("optimizer compile failed: %w", err)
	}

	demos, mean := selectDemos(ctx, optimized, trainset, metric, cfg.MaxLabeledDemos)
	module.SetDemos(demos)

	return &TrainResult{
		Program:   optimized,
		Demos:     demos,
		MeanScore: mean,
		Duration:  time.Since(started),
	}, nil
}

func newOptimizer(cfg TrainConfig, metric scoring.Metric) (core.Optimizer, error) {
	switch cfg.Kind {
	case OptimizerMIPRO:
		mode, err := miproMode(cfg.Auto)
		if err != nil {
			return nil, err
		}
		// MIPRO exposes no bootstrapped-demo budget; that knob only
		// applies to BootstrapFewShot.
		return optimizers.NewMIPRO(
			floatMetric(metric),
			optimizers.WithMode(mode),
			optimizers.WithMaxLabeledDemos(cfg.MaxLabeledDemos),
		), nil
	case OptimizerBootstrap, "":
		return optimizers.NewBootstrapFewShot(boolMetric(metric), cfg.MaxBootstrappedDemos), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q", cfg.Kind)
	}
}

func miproMode(auto AutoMode) (optimizers.RunMode, error) {
	switch auto {
	case AutoLight, "":
		return optimizers.LightMode, nil
	case AutoMedium:
		return optimizers.MediumMode, nil
	case AutoHeavy:
		return optimizers.HeavyMode, nil
	default:
		return optimizers.LightMode, fmt.Errorf("unknown auto mode %q", auto)
	}
}

// floatMetric adapts the scoring metric to MIPRO's graded callback.
func floatMetric(metric scoring.Metric) func(expected, actual map[string]interface{}, ctx context.Context) float64 {
	return func(expected, actual map[string]interface{}, ctx context.Context) float64 {
		gold := exampleFromMap(expected)
		pred := predictionFromMap(actual)
		return metric.Score(ctx, gold, pred, nil).Score
	}
}

// boolMetric adapts the scoring metric to BootstrapFewShot's pass/fail
// callback. Only perfect scores qualify an example as a demonstration.
func boolMetric(metric scoring.Metric) func(expected, actual map[string]interface{}, ctx context.Context) bool {
	return func(expected, actual map[string]interface{}, ctx context.Context) bool {
		gold := exampleFromMap(expected)
		pred := predictionFromMap(actual)
		return metric.Score(ctx, gold, pred, nil).Score >= 1.0
	}
}

// selectDemos re-scores the training set under the optimized program and
// keeps the examples it answers perfectly, up to the labeled-demo budget.
func selectDemos(ctx context.Context, program core.Program, trainset []scoring.Example, metric scoring.Metric, budget int) ([]scoring.Example, float64) {
	var demos []scoring.Example
	var total float64
	scored := 0

	for _, ex := range trainset {
		outputs, err := program.Execute(ctx, map[string]interface{}{
			"context":  ex.Context,
			"question": ex.Question,
		})
		if err != nil {
			continue
		}

		pred := predictionFromOutputs(outputs)
		result := metric.Score(ctx, ex, pred, nil)
		total += result.Score
		scored++

		if result.Score >= 1.0 && len(demos) < budget {
			demos = append(demos, ex)
		}
	}

	mean := 0.0
	if scored > 0 {
		mean = total / float64(scored)
	}
	return demos, mean
}
