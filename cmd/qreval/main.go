// Command qreval runs the QR code generation benchmark for chat LLMs.
package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:           "qreval",
	Short:         "QR code generation benchmark for chat LLMs",
	Long:          "qreval asks a chat model to draw QR codes as SVG and scores the answers\nby validating the markup and decoding the rendered code.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(goldenCmd)
	rootCmd.AddCommand(harnessCmd)
	rootCmd.AddCommand(reportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// promptAPIKey reads an API key from the terminal without echoing it.
func promptAPIKey(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	key, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read api key: %w", err)
	}
	return strings.TrimSpace(string(key)), nil
}
