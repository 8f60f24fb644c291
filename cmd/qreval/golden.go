package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cascadelabs/qreval-go/config"
	"github.com/cascadelabs/qreval-go/qrtask"
	"github.com/cascadelabs/qreval-go/svgqr"
)

var goldenFlags struct {
	outputDir string
}

var goldenCmd = &cobra.Command{
	Use:   "golden",
	Short: "Write reference QR SVGs for every test string",
	Long:  "Generates a correct SVG QR code for each benchmark input. Useful as a\nbaseline and for eyeballing what a perfect answer looks like.",
	RunE:  runGolden,
}

func init() {
	goldenCmd.Flags().StringVar(&goldenFlags.outputDir, "output-dir", "", "directory for SVG files (overrides QREVAL_OUTPUT_DIR)")
}

func runGolden(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if goldenFlags.outputDir != "" {
		cfg.OutputDir = goldenFlags.outputDir
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for i, input := range qrtask.TestStrings {
		svg, err := svgqr.Encode(input)
		if err != nil {
			return fmt.Errorf("encode %q: %w", input, err)
		}

		path := filepath.Join(cfg.OutputDir, qrtask.SVGFileName(i, input))
		if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}
