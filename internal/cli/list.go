package cli

import (
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo-cli/internal/core"
)

var listShow bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List active tasks",
	Long: `List active tasks in insertion order, numbered from 1.

With --show=false the command does nothing, which is useful in scripts that
toggle output.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, core.Command{Kind: core.KindListActive, Args: args, Show: listShow})
	},
}

var completedShow bool

var completedCmd = &cobra.Command{
	Use:   "completed",
	Short: "List completed tasks",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, core.Command{Kind: core.KindListCompleted, Args: args, Show: completedShow})
	},
}

func init() {
	listCmd.Flags().BoolVar(&listShow, "show", true, "Print the tasks")
	completedCmd.Flags().BoolVar(&completedShow, "show", true, "Print the tasks")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(completedCmd)
}
