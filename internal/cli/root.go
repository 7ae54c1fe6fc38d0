package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/dshills/promptgate/internal/config"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var gatewayCmd = &cobra.Command{
	Use:   "promptgate",
	Short: "Send a prompt to OpenAI, Anthropic, Google, or Kimi",
	Long: `promptgate forwards a prompt to the selected LLM provider and prints a
normalized JSON result: {success, provider, model, response, reasoning, usage, error}.`,
	Example: `  promptgate --provider openai --model gpt-4o --prompt "Hello"
  promptgate --provider anthropic --prompt "Summarize this" --max-tokens 512
  promptgate --provider kimi --model kimi-k2-thinking --prompt "Prove it" --temperature 1.0`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if gatewayFlags.provider == "" {
			return writeFailure(cmd, &gatewayFlags, "", errRequiredProvider)
		}
		provider, err := config.ParseProvider(gatewayFlags.provider)
		if err != nil {
			return writeFailure(cmd, &gatewayFlags, "", err)
		}
		return runCompletion(cmd, &gatewayFlags, provider)
	},
}

var kimiCmd = &cobra.Command{
	Use:   "kimi",
	Short: "Send a prompt to Kimi (Moonshot AI)",
	Long: `kimi sends a prompt to the Moonshot chat completions API and prints a
normalized JSON result. Thinking models such as kimi-k2-thinking also return
their chain of thought in the "reasoning" field.`,
	Example: `  kimi --prompt "Introduce yourself"
  kimi --model moonshot-v1-128k --prompt "Analyze this long document..."
  kimi --model kimi-k2-thinking --prompt "A hard reasoning task" --temperature 1.0`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompletion(cmd, &kimiFlags, config.Kimi)
	},
}

// RunGateway executes the promptgate command and returns an exit code.
func RunGateway() int {
	return execute(gatewayCmd)
}

// RunKimi executes the kimi command and returns an exit code.
func RunKimi() int {
	return execute(kimiCmd)
}

func execute(cmd *cobra.Command) int {
	exitCode = ExitSuccess

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		// Cobra already prints the error
		return ExitFailure
	}
	return exitCode
}

func init() {
	addCompletionFlags(gatewayCmd, &gatewayFlags, true)
	gatewayCmd.AddCommand(newModelsCmd(&gatewayFlags, nil))
	gatewayCmd.AddCommand(newConfigCmd(&gatewayFlags, nil))
	gatewayCmd.AddCommand(newVersionCmd())

	kimi := config.Kimi
	addCompletionFlags(kimiCmd, &kimiFlags, false)
	kimiCmd.AddCommand(newModelsCmd(&kimiFlags, &kimi))
	kimiCmd.AddCommand(newConfigCmd(&kimiFlags, &kimi))
	kimiCmd.AddCommand(newVersionCmd())
}
