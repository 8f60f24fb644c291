package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/cascadelabs/qreval-go/qrtask"
)

var reportCmd = &cobra.Command{
	Use:   "report <results.json>",
	Short: "Re-render the Markdown summary from a JSON results file",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%s is not valid JSON", args[0])
	}

	report := reportFromJSON(data)
	return report.WriteMarkdown(os.Stdout)
}

// reportFromJSON rebuilds a Report from a results file. Unknown or missing
// fields fall back to zero values so partial files still render.
func reportFromJSON(data []byte) *qrtask.Report {
	root := gjson.ParseBytes(data)

	report := &qrtask.Report{
		Model:     root.Get("model").String(),
		Timestamp: root.Get("timestamp").String(),
		Metrics: map[string]float64{
			"svg_validity":    root.Get("metrics.svg_validity").Float(),
			"qrcode_accuracy": root.Get("metrics.qrcode_accuracy").Float(),
		},
	}

	for _, row := range root.Get("results").Array() {
		report.Results = append(report.Results, qrtask.SampleResult{
			InputText:   row.Get("input_text").String(),
			ValidSVG:    row.Get("valid_svg").Bool(),
			DecodedText: row.Get("decoded_text").String(),
			IsCorrect:   row.Get("is_correct").Bool(),
		})
	}
	return report
}
