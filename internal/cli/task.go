package cli

import (
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo-cli/internal/core"
)

// Argument counts are checked by core.Command.Validate so that a wrong count
// is reported in red and the process still exits zero.

var addCmd = &cobra.Command{
	Use:   "add <name> <completion-time>",
	Short: "Add a task to the active list",
	Long: `Append a task with the given name and completion time to the active list.

Duplicate names are allowed. The completion time is free text and is stored
exactly as given.`,
	Example: `  todo add "write report" 2024-06-01`,
	Args:    cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, core.Command{Kind: core.KindAdd, Args: args})
	},
}

var removeCmd = &cobra.Command{
	Use:               "remove <name>",
	Aliases:           []string{"rm"},
	Short:             "Remove tasks from the active list",
	Args:              cobra.ArbitraryArgs,
	ValidArgsFunction: completeTaskNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, core.Command{Kind: core.KindRemove, Args: args})
	},
}

var renameCmd = &cobra.Command{
	Use:               "rename <name> <new-name>",
	Short:             "Rename an active task",
	Args:              cobra.ArbitraryArgs,
	ValidArgsFunction: completeTaskNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, core.Command{Kind: core.KindRename, Args: args})
	},
}

var rescheduleCmd = &cobra.Command{
	Use:               "reschedule <name> <completion-time>",
	Short:             "Change the completion time of an active task",
	Args:              cobra.ArbitraryArgs,
	ValidArgsFunction: completeTaskNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, core.Command{Kind: core.KindReschedule, Args: args})
	},
}

var completeCmd = &cobra.Command{
	Use:     "complete <name>",
	Aliases: []string{"done"},
	Short:   "Move tasks from the active list to the completed list",
	Long: `Move every active task with the given name to the end of the completed
list, keeping their relative order.`,
	Args:              cobra.ArbitraryArgs,
	ValidArgsFunction: completeTaskNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, core.Command{Kind: core.KindComplete, Args: args})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(rescheduleCmd)
	rootCmd.AddCommand(completeCmd)
}
