package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/valter-silva-au/todo-cli/internal/core"
	"github.com/valter-silva-au/todo-cli/pkg/models"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m browseModel, msg tea.Msg) (browseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(browseModel)
	if !ok {
		t.Fatalf("Update returned %T, want browseModel", next)
	}
	return bm, cmd
}

func loadedModel(t *testing.T) browseModel {
	t.Helper()
	m, _ := update(t, newBrowseModel(), tasksLoadedMsg{
		active: []models.Task{
			{Name: "a", CompletionTime: "1"},
			{Name: "b", CompletionTime: "2"},
			{Name: "c", CompletionTime: "3"},
		},
		completed: []models.Task{{Name: "done", CompletionTime: "0"}},
	})
	return m
}

func TestBrowseModel_InitLoadsTasks(t *testing.T) {
	m := newBrowseModel()
	if !m.loading {
		t.Error("new model should start loading")
	}
	if m.Init() == nil {
		t.Error("Init should return a load command")
	}
	if !strings.Contains(m.View(), "Loading tasks") {
		t.Errorf("loading view = %q", m.View())
	}
}

func TestBrowseModel_TabSwitching(t *testing.T) {
	m := loadedModel(t)

	m, _ = update(t, m, keyMsg("tab"))
	if m.tab != tabCompleted {
		t.Errorf("tab = %d, want completed", m.tab)
	}
	m, _ = update(t, m, keyMsg("tab"))
	if m.tab != tabActive {
		t.Errorf("tab should wrap to active, got %d", m.tab)
	}
	m, _ = update(t, m, keyMsg("shift+tab"))
	if m.tab != tabCompleted {
		t.Errorf("shift+tab should wrap to completed, got %d", m.tab)
	}
}

func TestBrowseModel_CursorBounds(t *testing.T) {
	m := loadedModel(t)

	m, _ = update(t, m, keyMsg("k"))
	if m.cursor[tabActive] != 0 {
		t.Errorf("cursor moved above top: %d", m.cursor[tabActive])
	}
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, keyMsg("j"))
	}
	if m.cursor[tabActive] != 2 {
		t.Errorf("cursor = %d, want 2 at bottom", m.cursor[tabActive])
	}
	m, _ = update(t, m, keyMsg("up"))
	if m.cursor[tabActive] != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor[tabActive])
	}
	m, _ = update(t, m, keyMsg("g"))
	if m.cursor[tabActive] != 0 {
		t.Errorf("g should jump to top, got %d", m.cursor[tabActive])
	}
	m, _ = update(t, m, keyMsg("G"))
	if m.cursor[tabActive] != 2 {
		t.Errorf("G should jump to bottom, got %d", m.cursor[tabActive])
	}
}

func TestBrowseModel_ReloadClampsCursor(t *testing.T) {
	m := loadedModel(t)
	m.cursor[tabActive] = 2

	m, cmd := update(t, m, keyMsg("r"))
	if !m.loading || cmd == nil {
		t.Fatal("r should start a reload")
	}
	m, _ = update(t, m, tasksLoadedMsg{active: []models.Task{{Name: "a", CompletionTime: "1"}}})
	if m.cursor[tabActive] != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor[tabActive])
	}
}

func TestBrowseModel_Quit(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		_, cmd := update(t, loadedModel(t), keyMsg(key))
		if cmd == nil {
			t.Fatalf("%s should return a command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s should quit", key)
		}
	}
}

func TestBrowseModel_View(t *testing.T) {
	m := loadedModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	for _, want := range []string{"Active (3)", "Completed (1)", "1. a (1)", "3. c (3)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = update(t, m, keyMsg("tab"))
	if !strings.Contains(m.View(), "1. done (0)") {
		t.Errorf("completed view:\n%s", m.View())
	}
}

func TestBrowseModel_EmptyAndErrorViews(t *testing.T) {
	m, _ := update(t, newBrowseModel(), tasksLoadedMsg{})
	if !strings.Contains(m.View(), "No active tasks.") {
		t.Errorf("empty view:\n%s", m.View())
	}

	m, _ = update(t, m, tasksLoadedMsg{err: errors.New("boom")})
	if !strings.Contains(m.View(), "Error: boom") {
		t.Errorf("error view:\n%s", m.View())
	}
}

func TestLoadTasks(t *testing.T) {
	useTaskManager(t, &mockTaskManager{
		listActiveFn: func(show bool) (core.Outcome, error) {
			return core.Outcome{Kind: core.KindListActive, Tasks: core.Enumerate([]models.Task{{Name: "a", CompletionTime: "1"}})}, nil
		},
		listCompletedFn: func(show bool) (core.Outcome, error) {
			return core.Outcome{Kind: core.KindListCompleted, Tasks: core.Enumerate(nil)}, nil
		},
	})

	msg, ok := loadTasks().(tasksLoadedMsg)
	if !ok {
		t.Fatal("loadTasks should return tasksLoadedMsg")
	}
	if msg.err != nil {
		t.Fatalf("unexpected error: %v", msg.err)
	}
	if len(msg.active) != 1 || len(msg.completed) != 0 {
		t.Errorf("active=%v completed=%v", msg.active, msg.completed)
	}
}

func TestLoadTasks_Error(t *testing.T) {
	useTaskManager(t, &mockTaskManager{
		listActiveFn: func(bool) (core.Outcome, error) {
			return core.Outcome{}, errors.New("unreadable")
		},
	})

	msg := loadTasks().(tasksLoadedMsg)
	if msg.err == nil || !strings.Contains(msg.err.Error(), "loading active tasks") {
		t.Errorf("err = %v", msg.err)
	}
}
