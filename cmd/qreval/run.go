package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/cascadelabs/qreval-go/chat"
	"github.com/cascadelabs/qreval-go/config"
	"github.com/cascadelabs/qreval-go/eval"
	"github.com/cascadelabs/qreval-go/qrtask"
	"github.com/cascadelabs/qreval-go/svgqr"
	"github.com/cascadelabs/qreval-go/trace"
)

const (
	resultsFileName = "qr_evaluation_results.json"
	reportFileName  = "qr_evaluation_report.md"
)

var runFlags struct {
	model     string
	provider  string
	limit     int
	outputDir string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark against a live chat-completion API",
	RunE:  runEval,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.model, "model", "", "model id (overrides QREVAL_MODEL)")
	runCmd.Flags().StringVar(&runFlags.provider, "provider", "", "chat backend: openai or anthropic (overrides QREVAL_PROVIDER)")
	runCmd.Flags().IntVar(&runFlags.limit, "limit", 0, "evaluate only the first N test strings")
	runCmd.Flags().StringVar(&runFlags.outputDir, "output-dir", "", "directory for SVG files and reports (overrides QREVAL_OUTPUT_DIR)")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if runFlags.model != "" {
		cfg.Model = runFlags.model
	}
	if runFlags.provider != "" {
		cfg.Provider = runFlags.provider
	}
	if runFlags.outputDir != "" {
		cfg.OutputDir = runFlags.outputDir
	}
	if cfg.APIKey == "" {
		key, err := promptAPIKey("Enter your API key: ")
		if err != nil {
			return err
		}
		cfg.APIKey = key
	}

	teardown, err := trace.Quickstart(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := teardown(); err != nil {
			cfg.Logger.Warn("trace teardown failed", "error", err)
		}
	}()

	client, err := chat.FromConfig(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	inputs := qrtask.TestStrings
	if runFlags.limit > 0 && runFlags.limit < len(inputs) {
		inputs = inputs[:runFlags.limit]
	}
	cases := make([]eval.Case[string, string], len(inputs))
	for i, s := range inputs {
		cases[i] = eval.Case[string, string]{Input: s, Expected: s}
	}

	fmt.Printf("QR Code Generation Evaluation\n")
	fmt.Printf("Model: %s\n", cfg.Model)
	fmt.Printf("Evaluating on %d test strings\n", len(inputs))
	fmt.Printf("===============================\n")

	limiter := rate.NewLimiter(rate.Every(cfg.RequestDelay), 1)
	ctx := cmd.Context()

	result, err := eval.Run(ctx, eval.Opts[string, string]{
		Name:  cfg.Model,
		Cases: eval.NewCases(cases),
		Task: func(ctx context.Context, input string) (string, error) {
			return client.Complete(ctx, qrtask.SystemPrompt, qrtask.Prompt(input))
		},
		Scorers: qrtask.Scorers(),
		Logger:  cfg.Logger,
		AfterCase: func(ctx context.Context, rec eval.CaseRecord) error {
			saveSVG(cfg, rec)
			// fixed delay between requests to avoid rate limits
			return limiter.Wait(ctx)
		},
	})
	if err != nil {
		return err
	}

	report := qrtask.BuildReport(cfg.Model, result)
	if err := writeReports(cfg.OutputDir, report); err != nil {
		return err
	}

	fmt.Print(result.String())
	fmt.Printf("Results saved to %s\n", filepath.Join(cfg.OutputDir, resultsFileName))
	fmt.Printf("Report saved to %s\n", filepath.Join(cfg.OutputDir, reportFileName))
	return nil
}

// saveSVG writes the extracted SVG markup of one answer to the output dir.
// Failures only warn: a missing file never fails the run.
func saveSVG(cfg *config.Config, rec eval.CaseRecord) {
	input, _ := rec.Input.(string)
	output, _ := rec.Output.(string)

	svg, ok := svgqr.Extract(output)
	if !ok {
		return
	}

	path := filepath.Join(cfg.OutputDir, qrtask.SVGFileName(rec.Index, input))
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		cfg.Logger.Warn("failed to save svg", "path", path, "error", err)
		return
	}
	cfg.Logger.Info("saved svg", "path", path)
}

func writeReports(dir string, report *qrtask.Report) error {
	jsonFile, err := os.Create(filepath.Join(dir, resultsFileName))
	if err != nil {
		return err
	}
	defer jsonFile.Close()
	if err := report.WriteJSON(jsonFile); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}

	mdFile, err := os.Create(filepath.Join(dir, reportFileName))
	if err != nil {
		return err
	}
	defer mdFile.Close()
	if err := report.WriteMarkdown(mdFile); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}
