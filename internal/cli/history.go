package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo-cli/internal/observability"
)

var (
	historySince string
	historyTask  string
	statsSince   string
	statsJSON    bool
)

const historyDisabledMsg = "task history is disabled (set history.enabled: true in .todoconfig)"

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded task changes",
	Long: `Show the task history recorded in the JSONL history file, oldest first.

History is only recorded when history.enabled is true in .todoconfig.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("%s", historyDisabledMsg)
		}

		filter := observability.EventFilter{Task: historyTask}
		if historySince != "" {
			since, err := parseSinceDuration(historySince)
			if err != nil {
				return fmt.Errorf("parsing --since: %w", err)
			}
			filter.Since = &since
		}

		events, err := EventLog.Read(filter)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			_, _ = fmt.Fprintln(w, mutedStyle.Render("No recorded changes."))
			return nil
		}
		for _, e := range events {
			_, _ = fmt.Fprintf(w, "%s  %-17s %s%s\n",
				indexStyle.Render(e.Time.Local().Format("2006-01-02 15:04")),
				e.Type,
				e.Task,
				formatEventData(e.Data),
			)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise recorded task changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if StatsCalc == nil {
			return fmt.Errorf("%s", historyDisabledMsg)
		}

		since, err := parseSinceDuration(statsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}
		stats, err := StatsCalc.Calculate(since)
		if err != nil {
			return fmt.Errorf("calculating stats: %w", err)
		}

		w := cmd.OutOrStdout()
		if statsJSON {
			data, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting stats as JSON: %w", err)
			}
			_, _ = fmt.Fprintln(w, string(data))
			return nil
		}

		_, _ = fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Task changes since %s", since.Local().Format("2006-01-02"))))
		rows := []struct {
			label string
			value int
		}{
			{"Added:", stats.Added},
			{"Completed:", stats.Completed},
			{"Removed:", stats.Removed},
			{"Renamed:", stats.Renamed},
			{"Rescheduled:", stats.Rescheduled},
			{"Events recorded:", stats.EventCount},
		}
		for _, r := range rows {
			_, _ = fmt.Fprintf(w, "  %-18s %d\n", r.label, r.value)
		}
		if stats.NewestEvent != nil {
			_, _ = fmt.Fprintf(w, "\n  %-18s %s\n", "Last change:", stats.NewestEvent.Local().Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historySince, "since", "", "Only show changes in this window (e.g. 7d, 24h)")
	historyCmd.Flags().StringVar(&historyTask, "task", "", "Only show changes to tasks with this name")
	historyCmd.ValidArgsFunction = cobra.NoFileCompletions
	_ = historyCmd.RegisterFlagCompletionFunc("task", completeTaskNames)

	statsCmd.Flags().StringVar(&statsSince, "since", "7d", "Time window (e.g. 7d, 30d, 24h)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
}

// parseSinceDuration parses strings like "7d" or "24h" into the time that
// far in the past.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now().UTC()

	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	num, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || num < 0 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	switch s[len(s)-1] {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", s[len(s)-1:])
	}
}

// formatEventData renders event fields as " key=value" pairs in key order.
func formatEventData(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out string
	for _, k := range keys {
		out += fmt.Sprintf(" %s=%v", k, data[k])
	}
	return mutedStyle.Render(out)
}
