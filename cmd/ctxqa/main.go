package main

import (
	"fmt"
	"os"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/spf13/cobra"

	"github.com/longregen/ctxqa/internal/config"
	"github.com/longregen/ctxqa/internal/llm"
	"github.com/longregen/ctxqa/internal/qa"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ctxqa",
		Short: "Context-grounded QA training and evaluation harness",
		Long: `ctxqa trains a context-grounded question answering program with
few-shot optimizers and evaluates it with a hallucination-aware metric.
Answers must come from the provided context; when the context does not
contain the answer, the program is expected to refuse.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			llmClient = llm.NewClient(
				cfg.LLM.URL,
				cfg.LLM.APIKey,
				cfg.LLM.Model,
				cfg.LLM.MaxTokens,
				cfg.LLM.Temperature,
			)

			// ChainOfThought captures the default LLM when the module is
			// built, so the adapter must be registered before any command
			// constructs or loads a module.
			core.SetDefaultLLM(qa.NewLLMAdapter(llmClient))

			return nil
		},
	}

	rootCmd.AddCommand(
		trainCmd(),
		evalCmd(),
		compareCmd(),
		verifyCmd(),
		askCmd(),
		configCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configCmd shows current configuration
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Current configuration:")
			fmt.Println()

			fmt.Println("LLM:")
			fmt.Printf("  URL:         %s\n", cfg.LLM.URL)
			fmt.Printf("  Model:       %s\n", cfg.LLM.Model)
			fmt.Printf("  Max Tokens:  %d\n", cfg.LLM.MaxTokens)
			fmt.Printf("  Temperature: %.2f\n", cfg.LLM.Temperature)
			fmt.Printf("  API Key:     %s\n", maskSecret(cfg.LLM.APIKey))
			fmt.Println()

			fmt.Println("Scoring:")
			fmt.Printf("  Semantic Min Length: %d\n", cfg.Scoring.SemanticMinLength)
			fmt.Printf("  Overlap Threshold:   %.2f\n", cfg.Scoring.OverlapThreshold)
			fmt.Printf("  LLM Judge:           %v\n", cfg.Scoring.UseJudge)
			fmt.Println()

			fmt.Println("Training:")
			fmt.Printf("  Max Bootstrapped Demos: %d\n", cfg.Train.MaxBootstrappedDemos)
			fmt.Printf("  Max Labeled Demos:      %d\n", cfg.Train.MaxLabeledDemos)
			fmt.Println()

			fmt.Println("Artifacts:")
			fmt.Printf("  Dir: %s\n", cfg.Artifacts.Dir)

			return nil
		},
	}
}

// versionCmd shows version information
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ctxqa %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", buildDate)
		},
	}
}
