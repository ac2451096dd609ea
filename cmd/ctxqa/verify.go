package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/longregen/ctxqa/internal/llm"
	"github.com/longregen/ctxqa/internal/qa"
)

// verifyCmd checks the environment end to end: configuration, endpoint,
// dataset, trained model, and optionally an interactive demo.
func verifyCmd() *cobra.Command {
	var demo bool
	var reportPath string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the setup: config, endpoint, dataset and trained model",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			report := []string{fmt.Sprintf("ctxqa verification %s", time.Now().Format(time.RFC3339))}
			note := func(format string, args ...any) {
				line := fmt.Sprintf(format, args...)
				fmt.Println(line)
				report = append(report, line)
			}

			printHeader("Step 1: Configuration")
			note("  LLM URL:   %s", cfg.LLM.URL)
			note("  Model:     %s", cfg.LLM.Model)
			note("  API key:   %s", maskSecret(cfg.LLM.APIKey))
			note("  Artifacts: %s", cfg.Artifacts.Dir)

			printHeader("Step 2: Endpoint probe")
			probeOK := false
			resp, err := llmClient.Chat(ctx, []llm.ChatMessage{{Role: "user", Content: "Reply with the single word: ready"}})
			if err != nil {
				note("  [FAIL] endpoint unreachable: %v", err)
			} else if len(resp.Choices) == 0 {
				note("  [FAIL] endpoint returned no choices")
			} else {
				probeOK = true
				note("  [PASS] endpoint replied: %s", snippet(resp.Choices[0].Message.Content, 40))
			}

			printHeader("Step 3: Dataset")
			trainset := qa.Trainset()
			note("  %d training examples (%d positive, %d negative), %d held-out",
				len(trainset), len(qa.Positives(trainset)), len(qa.Negatives(trainset)), len(qa.Testset()))

			printHeader("Step 4: Trained model")
			modelOK := false
			module, artifact, err := qa.LoadModule(cfg.BootstrapArtifactPath())
			if err != nil {
				note("  [WARN] no trained model: %v", err)
				note("  Run 'ctxqa train' to create one; continuing with an untrained module.")
				module = qa.NewModule()
			} else {
				modelOK = true
				note("  [PASS] %s model, %d demonstrations, mean score %.2f",
					artifact.Optimizer, len(artifact.Demos), artifact.MeanScore)
			}

			if demo && probeOK {
				printHeader("Step 5: Interactive demo")
				runDemo(ctx, module)
			}

			if reportPath != "" {
				report = append(report, fmt.Sprintf("endpoint ok: %v", probeOK), fmt.Sprintf("trained model ok: %v", modelOK))
				if err := os.WriteFile(reportPath, []byte(strings.Join(report, "\n")+"\n"), 0o644); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
				fmt.Printf("\nReport written to %s\n", reportPath)
			}

			if !probeOK {
				return fmt.Errorf("verification failed: LLM endpoint is not usable")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "Run an interactive QA loop after the checks")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a verification report to this file")

	return cmd
}

// runDemo reads context/question pairs from stdin and answers them until
// the user quits.
func runDemo(ctx context.Context, module *qa.Module) {
	fmt.Println("Enter a context, then a question. Type 'exit' or 'quit' to stop.")
	fmt.Println(strings.Repeat("-", 63))

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("\nContext: ")
		if !scanner.Scan() {
			return
		}
		contextText := strings.TrimSpace(scanner.Text())
		if isQuit(contextText) {
			return
		}
		if contextText == "" {
			continue
		}

		fmt.Print("Question: ")
		if !scanner.Scan() {
			return
		}
		question := strings.TrimSpace(scanner.Text())
		if isQuit(question) {
			return
		}
		if question == "" {
			continue
		}

		pred, err := module.Answer(ctx, contextText, question)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		if pred.Reasoning != "" {
			fmt.Printf("Reasoning: %s\n", pred.Reasoning)
		}
		fmt.Printf("Answer: %s\n", pred.Answer)
	}
}

func isQuit(s string) bool {
	s = strings.ToLower(s)
	return s == "exit" || s == "quit"
}
