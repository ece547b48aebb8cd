package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo-cli/pkg/models"
)

// Browser tab indices.
const (
	tabActive = iota
	tabCompleted
	tabCount
)

type browseModel struct {
	tab    int
	cursor [tabCount]int
	width  int
	height int

	tasks [tabCount][]models.Task

	loading bool
	err     error
}

// tasksLoadedMsg carries both collections back to the model.
type tasksLoadedMsg struct {
	active    []models.Task
	completed []models.Task
	err       error
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Underline(true).Padding(0, 1)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newBrowseModel() browseModel {
	return browseModel{tab: tabActive, loading: true}
}

func (m browseModel) Init() tea.Cmd {
	return loadTasks
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
		case "shift+tab", "left", "h":
			m.tab = (m.tab - 1 + tabCount) % tabCount
		case "down", "j":
			if m.cursor[m.tab] < len(m.tasks[m.tab])-1 {
				m.cursor[m.tab]++
			}
		case "up", "k":
			if m.cursor[m.tab] > 0 {
				m.cursor[m.tab]--
			}
		case "g", "home":
			m.cursor[m.tab] = 0
		case "G", "end":
			m.cursor[m.tab] = max(len(m.tasks[m.tab])-1, 0)
		case "r":
			m.loading = true
			return m, loadTasks
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.tasks[tabActive] = msg.active
		m.tasks[tabCompleted] = msg.completed
		for i := range m.cursor {
			m.cursor[i] = min(m.cursor[i], max(len(m.tasks[i])-1, 0))
		}
		return m, nil
	}

	return m, nil
}

func (m browseModel) View() string {
	title := titleStyle.Render(" todo ")
	help := helpStyle.Render("tab: switch list | j/k: move | r: reload | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading tasks...\n\n%s", title, help)
	}
	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s", title, m.renderTabs(), m.renderList(), help)
}

func (m browseModel) renderTabs() string {
	labels := [tabCount]string{
		fmt.Sprintf("Active (%d)", len(m.tasks[tabActive])),
		fmt.Sprintf("Completed (%d)", len(m.tasks[tabCompleted])),
	}
	rendered := make([]string, 0, tabCount)
	for i, label := range labels {
		style := tabStyle
		if i == m.tab {
			style = activeTabStyle
		}
		rendered = append(rendered, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m browseModel) renderList() string {
	tasks := m.tasks[m.tab]
	if len(tasks) == 0 {
		if m.tab == tabCompleted {
			return mutedStyle.Render("  No completed tasks.") + "\n"
		}
		return mutedStyle.Render("  No active tasks.") + "\n"
	}

	var b strings.Builder
	for i, t := range tasks {
		line := fmt.Sprintf("%3d. %s (%s)", i+1, t.Name, t.CompletionTime)
		if i == m.cursor[m.tab] {
			b.WriteString("> " + selectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func loadTasks() tea.Msg {
	var result tasksLoadedMsg
	if TaskMgr == nil {
		result.err = fmt.Errorf("task manager not initialized")
		return result
	}

	active, err := TaskMgr.ListActive(true)
	if err != nil {
		result.err = fmt.Errorf("loading active tasks: %w", err)
		return result
	}
	completed, err := TaskMgr.ListCompleted(true)
	if err != nil {
		result.err = fmt.Errorf("loading completed tasks: %w", err)
		return result
	}

	result.active = collectTasks(active.Tasks)
	result.completed = collectTasks(completed.Tasks)
	return result
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse active and completed tasks in a terminal UI",
	Long: `Open a read-only terminal view of both task lists.

Switch lists with Tab, move with j/k or the arrow keys, reload with r, and
quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		p := tea.NewProgram(newBrowseModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
