package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/longregen/ctxqa/internal/qa"
)

type comparison struct {
	kind      qa.OptimizerKind
	demos     int
	trainMean float64
	testMean  float64
	exact     int
}

// compareCmd evaluates the bootstrap and MIPRO artifacts side by side.
func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare trained models from different optimizers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			metric := newMetric()
			trainset := qa.Trainset()
			testset := qa.Testset()

			var rows []comparison
			for _, kind := range []qa.OptimizerKind{qa.OptimizerBootstrap, qa.OptimizerMIPRO} {
				path := artifactPath(kind)
				module, artifact, err := qa.LoadModule(path)
				if err != nil {
					fmt.Printf("Skipping %s: no trained model at %s\n", kind, path)
					continue
				}

				printHeader(fmt.Sprintf("Evaluating %s model", kind))
				trainMean, _, err := evaluate(ctx, module, metric, trainset)
				if err != nil {
					return fmt.Errorf("%s training-set evaluation failed: %w", kind, err)
				}
				testMean, exact, err := evaluate(ctx, module, metric, testset)
				if err != nil {
					return fmt.Errorf("%s test-set evaluation failed: %w", kind, err)
				}

				fmt.Printf("  Train mean: %.2f   Test mean: %.2f\n", trainMean, testMean)
				rows = append(rows, comparison{
					kind:      kind,
					demos:     len(artifact.Demos),
					trainMean: trainMean,
					testMean:  testMean,
					exact:     exact,
				})
			}

			if len(rows) == 0 {
				return fmt.Errorf("no trained models found: run 'ctxqa train' and 'ctxqa train -o mipro' first")
			}

			printHeader("Comparison")
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "  OPTIMIZER\tDEMOS\tTRAIN MEAN\tTEST MEAN\tTEST EXACT")
			for _, row := range rows {
				fmt.Fprintf(w, "  %s\t%d\t%.2f\t%.2f\t%d/%d\n",
					row.kind, row.demos, row.trainMean, row.testMean, row.exact, len(testset))
			}
			w.Flush()

			if len(rows) == 2 {
				fmt.Println()
				best := rows[0]
				if rows[1].testMean > best.testMean {
					best = rows[1]
				}
				if rows[0].testMean == rows[1].testMean {
					fmt.Println("Both optimizers generalize equally well on the held-out set.")
				} else {
					fmt.Printf("Recommendation: %s (higher held-out mean score)\n", best.kind)
				}
			}

			return nil
		},
	}
}
