package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/longregen/ctxqa/internal/qa"
)

// askCmd runs a single question through the QA module.
func askCmd() *cobra.Command {
	var contextText string
	var question string
	var modelPath string
	var untrained bool

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Answer one question from a given context",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var module *qa.Module
			if untrained {
				module = qa.NewModule()
			} else {
				var err error
				module, _, err = loadTrainedModule(modelPath)
				if err != nil {
					fmt.Printf("%v\nFalling back to an untrained module.\n\n", err)
					module = qa.NewModule()
				}
			}

			pred, err := module.Answer(ctx, contextText, question)
			if err != nil {
				return fmt.Errorf("failed to answer: %w", err)
			}

			if pred.Reasoning != "" {
				fmt.Printf("Reasoning: %s\n\n", pred.Reasoning)
			}
			fmt.Println(pred.Answer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&contextText, "context", "c", "", "Context to ground the answer in")
	cmd.Flags().StringVarP(&question, "question", "q", "", "Question to answer")
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "Trained model path (defaults to the bootstrap artifact)")
	cmd.Flags().BoolVar(&untrained, "untrained", false, "Use an untrained module")
	cmd.MarkFlagRequired("question")

	return cmd
}
