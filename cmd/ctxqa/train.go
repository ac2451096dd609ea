package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/longregen/ctxqa/internal/qa"
)

// trainCmd runs few-shot optimization and saves the trained model.
func trainCmd() *cobra.Command {
	var optimizer string
	var auto string
	var output string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Optimize the QA program and save the trained model",
		Long: `Run an external optimizer (bootstrap or mipro) over the embedded
training set, select few-shot demonstrations, and save them as a trained
model artifact.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			kind := qa.OptimizerKind(optimizer)
			trainCfg := qa.TrainConfig{
				Kind:                 kind,
				Auto:                 qa.AutoMode(auto),
				MaxBootstrappedDemos: cfg.Train.MaxBootstrappedDemos,
				MaxLabeledDemos:      cfg.Train.MaxLabeledDemos,
			}

			trainset := qa.Trainset()
			printHeader(fmt.Sprintf("Training with %s optimizer", kind))
			fmt.Printf("Training set: %d examples (%d positive, %d negative)\n",
				len(trainset), len(qa.Positives(trainset)), len(qa.Negatives(trainset)))
			fmt.Printf("Model: %s at %s\n\n", cfg.LLM.Model, cfg.LLM.URL)

			module := qa.NewModule()
			adapter := qa.NewLLMAdapter(llmClient)
			metric := newMetric()

			result, err := qa.Train(ctx, trainCfg, module, adapter, trainset, metric)
			if err != nil {
				return fmt.Errorf("training failed: %w", err)
			}

			path := output
			if path == "" {
				path = artifactPath(kind)
			}
			artifact := qa.NewArtifact(kind, result)
			if err := qa.SaveArtifact(path, artifact); err != nil {
				return fmt.Errorf("failed to save trained model: %w", err)
			}

			fmt.Printf("Training finished in %s\n", result.Duration.Round(10*time.Millisecond))
			fmt.Printf("Mean training score: %.2f\n", result.MeanScore)
			fmt.Printf("Saved %d demonstrations to %s\n\n", len(result.Demos), path)

			if len(result.Demos) > 0 {
				fmt.Println("Selected demonstrations:")
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "  #\tQUESTION\tANSWER")
				for i, demo := range result.Demos {
					fmt.Fprintf(w, "  %d\t%s\t%s\n", i+1, snippet(demo.Question, 50), snippet(demo.Answer, 40))
				}
				w.Flush()
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&optimizer, "optimizer", "o", "bootstrap", "Optimizer to use: bootstrap or mipro")
	cmd.Flags().StringVar(&auto, "auto", "light", "MIPRO search effort: light, medium or heavy")
	cmd.Flags().StringVar(&output, "output", "", "Trained model path (defaults to the artifacts dir)")

	return cmd
}
