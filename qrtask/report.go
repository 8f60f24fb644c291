package qrtask

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cascadelabs/qreval-go/eval"
)

// Report is the serializable outcome of a benchmark run.
type Report struct {
	Model     string             `json:"model"`
	Timestamp string             `json:"timestamp"`
	Metrics   map[string]float64 `json:"metrics"`
	Results   []SampleResult     `json:"results"`
}

// SampleResult is one row of the report.
type SampleResult struct {
	InputText   string `json:"input_text"`
	ValidSVG    bool   `json:"valid_svg"`
	DecodedText string `json:"decoded_text"`
	IsCorrect   bool   `json:"is_correct"`
}

// BuildReport converts an eval result for this benchmark into a Report.
// The decoded text comes from the record metadata the Accuracy scorer left
// behind; nothing is rasterized or decoded here.
func BuildReport(model string, result *eval.Result) *Report {
	rows := make([]SampleResult, 0, len(result.Records))
	for _, rec := range result.Records {
		row := SampleResult{
			ValidSVG:  rec.Scores["svg_validity"] == 1,
			IsCorrect: rec.Scores["qrcode_accuracy"] == 1,
		}
		if s, ok := rec.Input.(string); ok {
			row.InputText = s
		}
		if decoded, ok := rec.Metadata[DecodedTextKey].(string); ok && row.ValidSVG {
			row.DecodedText = decoded
		}
		rows = append(rows, row)
	}

	return &Report{
		Model:     model,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Metrics: map[string]float64{
			"svg_validity":    result.Mean("svg_validity"),
			"qrcode_accuracy": result.Mean("qrcode_accuracy"),
		},
		Results: rows,
	}
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteMarkdown writes the human-readable summary table.
func (r *Report) WriteMarkdown(w io.Writer) error {
	total := len(r.Results)
	valid, correct := 0, 0
	for _, row := range r.Results {
		if row.ValidSVG {
			valid++
		}
		if row.IsCorrect {
			correct++
		}
	}

	var err error
	write := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	write("# QR Code Generation Evaluation Report\n\n")
	write("**Model:** %s  \n", r.Model)
	write("**Date:** %s  \n\n", r.Timestamp)
	write("## Metrics\n\n")
	write("- **SVG Validity Rate:** %d/%d (%.2f%%)\n", valid, total, 100*r.Metrics["svg_validity"])
	write("- **QR Code Accuracy:** %d/%d (%.2f%%)\n\n", correct, total, 100*r.Metrics["qrcode_accuracy"])
	write("## Test Results\n\n")
	write("| # | Input Text | Valid SVG | Decoded Text | Match |\n")
	write("|---|-----------|-----------|--------------|-------|\n")

	for i, row := range r.Results {
		decoded := row.DecodedText
		if decoded == "" {
			decoded = "N/A"
		}
		write("| %d | %s | %s | %s | %s |\n",
			i+1, row.InputText, checkmark(row.ValidSVG), decoded, checkmark(row.IsCorrect))
	}

	return err
}

func checkmark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
