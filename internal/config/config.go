// Package config loads the harness configuration from environment
// variables, an optional JSON config file, and built-in defaults, in that
// order of precedence.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config is the root configuration structure
type Config struct {
	LLM       LLMConfig       `json:"llm"`
	Scoring   ScoringConfig   `json:"scoring"`
	Train     TrainConfig     `json:"train"`
	Artifacts ArtifactsConfig `json:"artifacts"`
}

// LLMConfig holds the OpenAI-compatible endpoint settings
type LLMConfig struct {
	URL         string  `json:"url"`
	APIKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// ScoringConfig holds the metric thresholds
type ScoringConfig struct {
	// SemanticMinLength gates routing to the semantic judge; answers
	// shorter than this (either side) use the overlap scorer.
	SemanticMinLength int `json:"semantic_min_length"`

	// OverlapThreshold is the inclusive token-overlap acceptance ratio.
	OverlapThreshold float64 `json:"overlap_threshold"`

	// UseJudge enables the LLM equivalence judge for long answers.
	UseJudge bool `json:"use_judge"`
}

// TrainConfig holds optimizer budgets
type TrainConfig struct {
	MaxBootstrappedDemos int `json:"max_bootstrapped_demos"`
	MaxLabeledDemos      int `json:"max_labeled_demos"`
}

// ArtifactsConfig holds trained model storage settings
type ArtifactsConfig struct {
	Dir string `json:"dir"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	artifactsDir := filepath.Join(homeDir, ".ctxqa")

	return &Config{
		LLM: LLMConfig{
			URL:         "http://localhost:8000/v1",
			APIKey:      "",
			Model:       "Qwen/Qwen3-8B-AWQ",
			MaxTokens:   1024,
			Temperature: 0.2,
		},
		Scoring: ScoringConfig{
			SemanticMinLength: 50,
			OverlapThreshold:  0.80,
			UseJudge:          true,
		},
		Train: TrainConfig{
			MaxBootstrappedDemos: 4,
			MaxLabeledDemos:      6,
		},
		Artifacts: ArtifactsConfig{
			Dir: artifactsDir,
		},
	}
}

// envString loads a string environment variable into the target pointer if set
func envString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// envInt loads an integer environment variable into the target pointer if set and valid
func envInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*target = i
		}
	}
}

// envFloat loads a float64 environment variable into the target pointer if set and valid
func envFloat(key string, target *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*target = f
		}
	}
}

// envBool loads a boolean environment variable into the target pointer if set and valid
func envBool(key string, target *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := getConfigPath()
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to parse config file %s: %v\n", configPath, err)
		}
	}

	envString("CTXQA_LLM_URL", &cfg.LLM.URL)
	envString("CTXQA_LLM_API_KEY", &cfg.LLM.APIKey)
	envString("CTXQA_LLM_MODEL", &cfg.LLM.Model)
	envInt("CTXQA_LLM_MAX_TOKENS", &cfg.LLM.MaxTokens)
	envFloat("CTXQA_LLM_TEMPERATURE", &cfg.LLM.Temperature)

	envInt("CTXQA_SEMANTIC_MIN_LEN", &cfg.Scoring.SemanticMinLength)
	envFloat("CTXQA_OVERLAP_THRESHOLD", &cfg.Scoring.OverlapThreshold)
	envBool("CTXQA_USE_JUDGE", &cfg.Scoring.UseJudge)

	envInt("CTXQA_MAX_BOOTSTRAPPED_DEMOS", &cfg.Train.MaxBootstrappedDemos)
	envInt("CTXQA_MAX_LABELED_DEMOS", &cfg.Train.MaxLabeledDemos)

	envString("CTXQA_ARTIFACTS_DIR", &cfg.Artifacts.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	var errs []string

	if c.LLM.URL == "" {
		errs = append(errs, "LLM URL is required")
	} else if !isValidURL(c.LLM.URL) {
		errs = append(errs, "LLM URL must be a valid URL")
	}
	if c.LLM.MaxTokens < 1 {
		errs = append(errs, "LLM max_tokens must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, "LLM temperature must be between 0 and 2")
	}

	if c.Scoring.SemanticMinLength < 0 {
		errs = append(errs, "scoring semantic_min_length must not be negative")
	}
	if c.Scoring.OverlapThreshold <= 0 || c.Scoring.OverlapThreshold > 1 {
		errs = append(errs, "scoring overlap_threshold must be in (0, 1]")
	}

	if c.Train.MaxBootstrappedDemos < 0 {
		errs = append(errs, "train max_bootstrapped_demos must not be negative")
	}
	if c.Train.MaxLabeledDemos < 0 {
		errs = append(errs, "train max_labeled_demos must not be negative")
	}

	if c.Artifacts.Dir == "" {
		errs = append(errs, "artifacts dir is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// BootstrapArtifactPath returns the trained model path for the bootstrap optimizer.
func (c *Config) BootstrapArtifactPath() string {
	return filepath.Join(c.Artifacts.Dir, "trained_qa_model_bootstrap.json")
}

// MIPROArtifactPath returns the trained model path for the MIPRO optimizer.
func (c *Config) MIPROArtifactPath() string {
	return filepath.Join(c.Artifacts.Dir, "trained_qa_model_miprov2.json")
}

func isValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// getConfigPath returns the path to the config file
func getConfigPath() string {
	if path := os.Getenv("CTXQA_CONFIG"); path != "" {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}

	configDir := filepath.Join(homeDir, ".config", "ctxqa")
	configPath := filepath.Join(configDir, "config.json")
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	altPath := filepath.Join(homeDir, ".ctxqa", "config.json")
	if _, err := os.Stat(altPath); err == nil {
		return altPath
	}

	return configPath
}
