package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResults = `{
  "model": "google/gemma-3-27b-it",
  "timestamp": "2025-05-01 12:00:00",
  "metrics": {"svg_validity": 0.5, "qrcode_accuracy": 0.5},
  "results": [
    {"input_text": "Hello World", "valid_svg": true, "decoded_text": "Hello World", "is_correct": true},
    {"input_text": "12345", "valid_svg": false, "decoded_text": "", "is_correct": false}
  ]
}`

func TestReportFromJSON(t *testing.T) {
	report := reportFromJSON([]byte(sampleResults))

	assert.Equal(t, "google/gemma-3-27b-it", report.Model)
	assert.Equal(t, "2025-05-01 12:00:00", report.Timestamp)
	assert.Equal(t, 0.5, report.Metrics["svg_validity"])
	require.Len(t, report.Results, 2)
	assert.True(t, report.Results[0].IsCorrect)
	assert.False(t, report.Results[1].ValidSVG)

	var buf bytes.Buffer
	require.NoError(t, report.WriteMarkdown(&buf))
	assert.Contains(t, buf.String(), "| 1 | Hello World | ✅ | Hello World | ✅ |")
}

func TestReportFromJSON_Partial(t *testing.T) {
	report := reportFromJSON([]byte(`{"model": "m"}`))

	assert.Equal(t, "m", report.Model)
	assert.Empty(t, report.Results)
	assert.Equal(t, 0.0, report.Metrics["qrcode_accuracy"])
}
