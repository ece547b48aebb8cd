package cli

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo-cli/internal/core"
	"github.com/valter-silva-au/todo-cli/pkg/models"
)

// Style definitions.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	indexStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// runCommand dispatches c through TaskMgr and renders the result.
// Recoverable errors are printed in red and swallowed; anything else is
// returned so the process exits non-zero.
func runCommand(cmd *cobra.Command, c core.Command) error {
	if TaskMgr == nil {
		return fmt.Errorf("task manager not initialized")
	}

	out, err := TaskMgr.Dispatch(c)
	if err != nil {
		if core.IsRecoverable(err) {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render(recoverableMessage(err)))
			return nil
		}
		return err
	}

	renderOutcome(cmd.OutOrStdout(), out)
	return nil
}

// recoverableMessage turns a recoverable error into a sentence for the user.
func recoverableMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrNoCommand):
		return "No valid command provided."
	case errors.Is(err, core.ErrTaskNotFound):
		return "Task not found: " + strings.TrimPrefix(err.Error(), core.ErrTaskNotFound.Error()+": ")
	default:
		return capitalizeFirst(err.Error()) + "."
	}
}

func renderOutcome(w io.Writer, out core.Outcome) {
	switch out.Kind {
	case core.KindListActive, core.KindListCompleted:
		if out.Tasks == nil {
			return
		}
		title := "Active tasks"
		empty := "No active tasks."
		if out.Kind == core.KindListCompleted {
			title = "Completed tasks"
			empty = "No completed tasks."
		}
		renderTaskList(w, title, empty, out.Tasks)
	default:
		_, _ = fmt.Fprintln(w, successStyle.Render(out.Message))
	}
}

func renderTaskList(w io.Writer, title, empty string, tasks iter.Seq2[int, models.Task]) {
	_, _ = fmt.Fprintln(w, headerStyle.Render(title))
	count := 0
	for i, t := range tasks {
		count++
		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			indexStyle.Render(fmt.Sprintf("%3d.", i)),
			t.Name,
			dueStyle.Render("("+t.CompletionTime+")"),
		)
	}
	if count == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("  "+empty))
	}
}

// collectTasks drains a task sequence into a slice.
func collectTasks(seq iter.Seq2[int, models.Task]) []models.Task {
	var tasks []models.Task
	if seq == nil {
		return tasks
	}
	for _, t := range seq {
		tasks = append(tasks, t)
	}
	return tasks
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
