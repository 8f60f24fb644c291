package main

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cascadelabs/qreval-go/config"
)

var harnessFlags struct {
	python     string
	model      string
	baseURL    string
	numFewshot int
	limit      int
	outputPath string
	wandb      bool
}

var harnessCmd = &cobra.Command{
	Use:   "harness",
	Short: "Invoke the lm-evaluation-harness with preset qrcode-task arguments",
	Long: "Shells out to `python -m lm_eval` with the flags the qrcode task needs:\n" +
		"an OpenAI-compatible chat backend, zero-shot prompting and the chat\ntemplate applied. Prompts for the API key when none is set.",
	RunE: runHarness,
}

func init() {
	harnessCmd.Flags().StringVar(&harnessFlags.python, "python", "python", "python interpreter to run the harness with")
	harnessCmd.Flags().StringVar(&harnessFlags.model, "model", "google/gemma-3-27b-it", "model id passed in --model_args")
	harnessCmd.Flags().StringVar(&harnessFlags.baseURL, "base-url", "https://openrouter.ai/api/v1/chat/completions", "chat-completion endpoint passed in --model_args")
	harnessCmd.Flags().IntVar(&harnessFlags.numFewshot, "num-fewshot", 0, "shot count")
	harnessCmd.Flags().IntVar(&harnessFlags.limit, "limit", 2, "sample limit")
	harnessCmd.Flags().StringVar(&harnessFlags.outputPath, "output-path", "./output", "harness output path")
	harnessCmd.Flags().BoolVar(&harnessFlags.wandb, "wandb", false, "log the run to wandb (project qr-eval)")
}

func runHarness(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = config.FromEnv().APIKey
	}
	if apiKey == "" {
		key, err := promptAPIKey("Enter your OpenAI API key: ")
		if err != nil {
			return err
		}
		apiKey = key
	}

	harness := exec.CommandContext(cmd.Context(), harnessFlags.python, harnessArgs()...)
	harness.Stdout = os.Stdout
	harness.Stderr = os.Stderr
	harness.Env = append(os.Environ(), "OPENAI_API_KEY="+apiKey)

	fmt.Fprintln(os.Stderr, "exec:", harness.String())
	if err := harness.Run(); err != nil {
		return fmt.Errorf("lm_eval failed: %w", err)
	}
	return nil
}

func harnessArgs() []string {
	modelArgs := fmt.Sprintf("base_url=%s,model=%s,chat_formatting_function=None",
		harnessFlags.baseURL, harnessFlags.model)

	args := []string{
		"-m", "lm_eval",
		"--model", "openai-chat-completions",
		"--model_args", modelArgs,
		"--tasks", "qrcode",
		"--num_fewshot", strconv.Itoa(harnessFlags.numFewshot),
		"--limit", strconv.Itoa(harnessFlags.limit),
		"--apply_chat_template",
	}
	if harnessFlags.wandb {
		args = append(args,
			"--wandb_args", "project=qr-eval",
			"--output_path", harnessFlags.outputPath,
			"--log_samples",
		)
	}
	return args
}
