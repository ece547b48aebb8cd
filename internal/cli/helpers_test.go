package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/valter-silva-au/todo-cli/internal/core"
	"github.com/valter-silva-au/todo-cli/internal/storage"
	"github.com/valter-silva-au/todo-cli/pkg/models"
)

// mockTaskManager lets tests script individual TaskManager calls. Unset
// functions return a zero Outcome.
type mockTaskManager struct {
	dispatchFn      func(core.Command) (core.Outcome, error)
	listActiveFn    func(bool) (core.Outcome, error)
	listCompletedFn func(bool) (core.Outcome, error)
}

func (m *mockTaskManager) Dispatch(c core.Command) (core.Outcome, error) {
	if m.dispatchFn != nil {
		return m.dispatchFn(c)
	}
	return core.Outcome{Kind: c.Kind}, nil
}

func (m *mockTaskManager) Add(name, completionTime string) (core.Outcome, error) {
	return m.Dispatch(core.Command{Kind: core.KindAdd, Args: []string{name, completionTime}})
}

func (m *mockTaskManager) Remove(name string) (core.Outcome, error) {
	return m.Dispatch(core.Command{Kind: core.KindRemove, Args: []string{name}})
}

func (m *mockTaskManager) Rename(name, newName string) (core.Outcome, error) {
	return m.Dispatch(core.Command{Kind: core.KindRename, Args: []string{name, newName}})
}

func (m *mockTaskManager) Reschedule(name, completionTime string) (core.Outcome, error) {
	return m.Dispatch(core.Command{Kind: core.KindReschedule, Args: []string{name, completionTime}})
}

func (m *mockTaskManager) Complete(name string) (core.Outcome, error) {
	return m.Dispatch(core.Command{Kind: core.KindComplete, Args: []string{name}})
}

func (m *mockTaskManager) ListActive(show bool) (core.Outcome, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(show)
	}
	return core.Outcome{Kind: core.KindListActive}, nil
}

func (m *mockTaskManager) ListCompleted(show bool) (core.Outcome, error) {
	if m.listCompletedFn != nil {
		return m.listCompletedFn(show)
	}
	return core.Outcome{Kind: core.KindListCompleted}, nil
}

// useTaskManager swaps TaskMgr for the duration of the test.
func useTaskManager(t *testing.T, tm core.TaskManager) {
	t.Helper()
	orig := TaskMgr
	TaskMgr = tm
	t.Cleanup(func() { TaskMgr = orig })
}

// useFileTaskManager points TaskMgr at real collection files in a temp
// directory and returns their paths.
func useFileTaskManager(t *testing.T) (active, completed string) {
	t.Helper()
	dir := t.TempDir()
	active = filepath.Join(dir, "tasks.json")
	completed = filepath.Join(dir, "completed_tasks.json")
	useTaskManager(t, core.NewTaskManager(
		storage.NewCollectionStore(active),
		storage.NewCollectionStore(completed),
		models.MatchPerOperation,
	))
	return active, completed
}

// execute runs the root command with args and captures both streams.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}
