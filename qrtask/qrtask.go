// Package qrtask defines the QR code generation benchmark: the fixed set of
// test strings, the prompts sent to the model, and the scorers that grade
// the SVG answers.
package qrtask

import (
	"context"
	"fmt"
	"strings"

	"github.com/cascadelabs/qreval-go/eval"
	"github.com/cascadelabs/qreval-go/svgqr"
)

// TestStrings are the payloads the model is asked to encode.
var TestStrings = []string{
	"Hello World",
	"https://example.com",
	"12345",
	"Lorem ipsum dolor sit amet",
	"https://github.com/EleutherAI/lm-evaluation-harness",
	"QR Code Test",
	"OpenAI GPT-4",
	"Cascade AI Assistant",
	"user@example.com",
	"Tel: +1-123-456-7890",
}

// SystemPrompt is the system message sent with every request.
const SystemPrompt = "You are a helpful assistant that generates valid SVG QR codes."

// DecodedTextKey is the case-record metadata key under which Accuracy
// stores the text decoded from the answer's QR code.
const DecodedTextKey = "decoded_text"

// Prompt builds the user message asking for a QR code encoding input.
func Prompt(input string) string {
	return fmt.Sprintf("Please generate an SVG file containing a QR code that encodes the following text: %s. Return only the SVG code.", input)
}

// Cases returns the benchmark cases. The expected output of each case is its
// own input: a correct answer is an SVG whose QR code decodes back to it.
func Cases() eval.Cases[string, string] {
	cases := make([]eval.Case[string, string], len(TestStrings))
	for i, s := range TestStrings {
		cases[i] = eval.Case[string, string]{Input: s, Expected: s}
	}
	return eval.NewCases(cases)
}

// Validity scores 1.0 when the model output contains a well-formed SVG.
func Validity() eval.Scorer[string, string] {
	return eval.NewScorer("svg_validity", func(ctx context.Context, r eval.TaskResult[string, string]) (eval.Scores, error) {
		if svgqr.IsValid(r.Output) {
			return eval.S(1), nil
		}
		return eval.S(0), nil
	})
}

// Accuracy scores 1.0 when the SVG is well-formed and its QR code decodes
// to exactly the case input. Invalid SVGs never decode, mirroring the
// validity gate of the original pipeline. The decoded text is attached to
// the score's metadata under DecodedTextKey so reports can show it without
// decoding again.
func Accuracy() eval.Scorer[string, string] {
	return eval.NewScorer("qrcode_accuracy", func(ctx context.Context, r eval.TaskResult[string, string]) (eval.Scores, error) {
		if !svgqr.IsValid(r.Output) {
			return eval.S(0), nil
		}
		decoded := svgqr.DecodeText(r.Output)
		var score float64
		if decoded == r.Input {
			score = 1
		}
		return eval.Scores{{
			Score:    score,
			Metadata: map[string]any{DecodedTextKey: decoded},
		}}, nil
	})
}

// Scorers returns the benchmark's scorer set.
func Scorers() []eval.Scorer[string, string] {
	return []eval.Scorer[string, string]{Validity(), Accuracy()}
}

// SVGFileName builds the output filename for sample i (zero-based):
// qr_NN_<sanitized input, max 30 chars>.svg.
func SVGFileName(i int, input string) string {
	name := strings.ReplaceAll(input, "://", "_")
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	if len(name) > 30 {
		name = name[:30]
	}
	return fmt.Sprintf("qr_%02d_%s.svg", i+1, name)
}
