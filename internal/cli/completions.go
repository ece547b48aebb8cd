package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// completeTaskNames completes the first positional argument with the names
// of active tasks, each annotated with its completion time.
func completeTaskNames(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if TaskMgr == nil || len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	out, err := TaskMgr.ListActive(true)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	seen := make(map[string]bool)
	var names []string
	for _, task := range out.Tasks {
		if seen[task.Name] || !strings.HasPrefix(task.Name, toComplete) {
			continue
		}
		seen[task.Name] = true
		names = append(names, task.Name+"\tdue "+task.CompletionTime)
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}
