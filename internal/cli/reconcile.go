package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ykomori/riskfuse/internal/llm"
	"github.com/ykomori/riskfuse/internal/model"
	"github.com/ykomori/riskfuse/internal/pipeline"
	"github.com/ykomori/riskfuse/internal/report"
)

var (
	projectID    string
	outJSON      string
	outSummary   string
	feedbackPath string
	threshold    float64
	tolerance    float64
	timeout      time.Duration
	baseURL      string
	userAgent    string
	maxBytes     int64
	noCache      bool
	noFooter     bool
	compact      bool
	llmEnabled   bool
	llmModel     string
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [report.json ...]",
	Short: "Reconcile one or more risk reports into a final assessment",
	Long: `Reconcile processes raw risk analysis output:
- Cluster near-duplicate detections by text similarity and timecode
- Aggregate grades per tag and for the whole asset
- Derive the legal category from the raw label and violations
- Resolve the policy status badge and the risk matrix position
- Resolve one evidence excerpt per detection

With several report files the runs are first merged by consensus:
the most severe run wins and tags kept by majority vote. With
--project the report is fetched from the backend instead of a file.

Example:
  riskfuse reconcile final_report.json
  riskfuse reconcile run1.json run2.json run3.json --json merged.json
  riskfuse reconcile final_report.json --feedback feedback.json
  riskfuse reconcile --project proj-123 --base-url http://backend:8000`,
	Args: cobra.ArbitraryArgs,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	// Input flags
	reconcileCmd.Flags().StringVar(&projectID, "project", "", "fetch the report for a project ID from the backend")
	reconcileCmd.Flags().StringVar(&feedbackPath, "feedback", "", "operator feedback file to apply before reconciling")

	// Output flags
	reconcileCmd.Flags().StringVar(&outJSON, "json", "result.json", "output JSON path")
	reconcileCmd.Flags().StringVar(&outSummary, "summary", "", "output text summary path (optional)")
	reconcileCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in text summaries")
	reconcileCmd.Flags().BoolVar(&compact, "compact", false, "write compact JSON instead of indented")

	// Clustering flags
	reconcileCmd.Flags().Float64Var(&threshold, "threshold", 70, "text similarity threshold for clustering (0-100)")
	reconcileCmd.Flags().Float64Var(&tolerance, "tolerance", 2, "timecode tolerance in seconds for clustering")

	// HTTP flags
	reconcileCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")
	reconcileCmd.Flags().StringVar(&baseURL, "base-url", "", "backend base URL (required with --project)")
	reconcileCmd.Flags().StringVar(&userAgent, "ua", "riskfuse/0.1 (+https://github.com/ykomori/riskfuse)", "HTTP User-Agent")
	reconcileCmd.Flags().Int64Var(&maxBytes, "max-bytes", 8_000_000, "max response bytes to read")
	reconcileCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	// LLM flags
	reconcileCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an LLM summary of the result")
	reconcileCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	if projectID == "" && len(args) == 0 {
		return fmt.Errorf("either report files or --project is required")
	}
	if projectID != "" && len(args) > 0 {
		return fmt.Errorf("--project cannot be combined with report files")
	}
	if feedbackPath != "" && len(args) != 1 {
		return fmt.Errorf("--feedback requires exactly one report file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()

	runner := pipeline.NewRunner(cfg)

	var result *model.Result
	var err error

	switch {
	case projectID != "":
		if cfg.HTTP.BaseURL == "" {
			return fmt.Errorf("--base-url (or RISKFUSE_BASE_URL) is required with --project")
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Fetching report for project %s...\n", projectID)
		}
		result, err = runner.ReconcileProject(ctx, projectID)
	case feedbackPath != "":
		result, err = runner.ReconcileFileWithFeedback(ctx, args[0], feedbackPath)
	case len(args) > 1:
		runs := make([]*model.Assessment, 0, len(args))
		for _, path := range args {
			a, loadErr := report.Load(path)
			if loadErr != nil {
				return fmt.Errorf("load %s: %w", path, loadErr)
			}
			runs = append(runs, a)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Merging %d runs by consensus...\n", len(runs))
		}
		result = runner.ReconcileRuns(runs)
	default:
		result, err = runner.ReconcileFile(ctx, args[0])
	}
	if err != nil {
		return fmt.Errorf("reconcile failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d detections in %d evidence groups\n", len(result.Resolved), len(result.Groups))
		fmt.Fprintf(os.Stderr, "✓ Social grade %s, legal category %s\n", result.SocialGrade, result.LegalCategory)
		fmt.Fprintf(os.Stderr, "✓ Status: %s\n", result.Profile.Badge)
	}

	writer := report.NewWriter(!compact, !noFooter)
	if err := writer.WriteJSON(result, outJSON); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outJSON)
	}
	if outSummary != "" {
		if err := writer.WriteSummary(result, outSummary); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outSummary)
		}
	}

	if llmEnabled {
		summarizer, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			return err
		}
		summary, err := summarizer.Summarize(ctx, result)
		if err != nil {
			return fmt.Errorf("summarize: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Generated summary using %s/%s\n", summary.Provider, summary.Model)
		}
		fmt.Println(summary.SummaryMD)
	}

	return nil
}

// buildConfig layers flags over the config file and defaults
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cluster.SimilarityThreshold = threshold
	cfg.Cluster.ToleranceSeconds = tolerance
	cfg.Cache.Enabled = !noCache
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.Output.Pretty = !compact
	cfg.Output.IncludeFooter = !noFooter

	cfg.HTTP.BaseURL = baseURL
	if cfg.HTTP.BaseURL == "" {
		cfg.HTTP.BaseURL = viper.GetString("base_url")
	}

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
	}

	return cfg
}
