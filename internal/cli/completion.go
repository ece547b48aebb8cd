package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var completionInstall bool

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Generate shell completions for todo",
	Long: `Generate tab-completions for todo commands, flags, and task names.

Supported shells: bash, zsh, fish, powershell

Print the script for the current session:

  eval "$(todo completion bash)"
  todo completion fish | source

Or install it into the user-local completion directory:

  todo completion zsh --install`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MaximumNArgs(1),
	RunE:      runCompletion,
}

func init() {
	completionCmd.Flags().BoolVar(&completionInstall, "install", false,
		"Install completions into the user-local completion directory")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}

// completionGenerator writes the completion script for one shell.
type completionGenerator func(w io.Writer) error

func generatorFor(shell string) (completionGenerator, error) {
	switch shell {
	case "bash":
		return func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) }, nil
	case "zsh":
		return rootCmd.GenZshCompletion, nil
	case "fish":
		return func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) }, nil
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc, nil
	default:
		return nil, fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish, powershell)", shell)
	}
}

func runCompletion(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	shell := args[0]

	gen, err := generatorFor(shell)
	if err != nil {
		return err
	}
	if !completionInstall {
		return gen(cmd.OutOrStdout())
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("detecting home directory: %w", err)
	}
	target, err := completionTarget(home, shell)
	if err != nil {
		return err
	}
	if err := writeCompletionFile(target, gen); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s completions installed to %s\n", shell, target)
	return nil
}

// completionTarget returns the user-local script path for shell.
func completionTarget(home, shell string) (string, error) {
	switch shell {
	case "bash":
		return filepath.Join(home, ".local", "share", "bash-completion", "completions", "todo"), nil
	case "zsh":
		return filepath.Join(home, ".local", "share", "zsh", "site-functions", "_todo"), nil
	case "fish":
		return filepath.Join(home, ".config", "fish", "completions", "todo.fish"), nil
	default:
		return "", fmt.Errorf("automatic install is not supported for %s; print the script with 'todo completion %s' and load it from your profile", shell, shell)
	}
}

// writeCompletionFile creates target and its parent directory, writes the
// script into it, and propagates close errors.
func writeCompletionFile(target string, gen completionGenerator) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating completion directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating completion file %s: %w", target, err)
	}

	writeErr := gen(f)
	closeErr := f.Close()

	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("closing completion file %s: %w", target, closeErr)
	}
	return nil
}
