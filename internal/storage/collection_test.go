package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/todo-cli/pkg/models"
)

func newTestStore(t *testing.T, opts ...CollectionOption) (CollectionStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return NewCollectionStore(path, opts...), path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestLoad_MissingFileCreatesEmptyFile(t *testing.T) {
	store, path := newTestStore(t)

	tasks, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file to be created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("expected empty file, got %d bytes", info.Size())
	}
}

func TestLoad_MissingParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.json")
	store := NewCollectionStore(path)

	if _, err := store.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to be created: %v", err)
	}
}

func TestLoad_EmptyAndWhitespaceFiles(t *testing.T) {
	for _, content := range []string{"", "   \n\t"} {
		for _, policy := range []models.ParsePolicy{models.ParseLenient, models.ParseStrict} {
			store, path := newTestStore(t, WithParsePolicy(policy))
			writeFile(t, path, content)

			tasks, err := store.Load()
			if err != nil {
				t.Fatalf("policy %s, content %q: unexpected error: %v", policy, content, err)
			}
			if len(tasks) != 0 {
				t.Errorf("policy %s, content %q: expected no tasks, got %d", policy, content, len(tasks))
			}
		}
	}
}

func TestLoad_PreservesOrder(t *testing.T) {
	store, path := newTestStore(t)
	writeFile(t, path, `[
  {"name": "b", "completion_time": "2"},
  {"name": "a", "completion_time": "1"},
  {"name": "b", "completion_time": "3"}
]`)

	tasks, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.Task{
		{Name: "b", CompletionTime: "2"},
		{Name: "a", CompletionTime: "1"},
		{Name: "b", CompletionTime: "3"},
	}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i := range want {
		if tasks[i] != want[i] {
			t.Errorf("tasks[%d] = %+v, want %+v", i, tasks[i], want[i])
		}
	}
}

func TestLoad_LenientMalformedReturnsEmptyAndWarns(t *testing.T) {
	cases := map[string]string{
		"not json":        "{{{ nope",
		"object not list": `{"name": "a", "completion_time": "b"}`,
		"missing field":   `[{"name": "a"}]`,
		"wrong type":      `[{"name": 1, "completion_time": "b"}]`,
	}
	for label, content := range cases {
		t.Run(label, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.New(&buf)
			store, path := newTestStore(t, WithLogger(logger))
			writeFile(t, path, content)

			tasks, err := store.Load()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tasks) != 0 {
				t.Errorf("expected no tasks, got %d", len(tasks))
			}
			if !strings.Contains(buf.String(), "malformed") {
				t.Errorf("expected a malformed-file warning, got log %q", buf.String())
			}

			data, _ := os.ReadFile(path)
			if string(data) != content {
				t.Error("loading must not rewrite a malformed file")
			}
		})
	}
}

func TestLoad_StrictMalformedFails(t *testing.T) {
	store, path := newTestStore(t, WithParsePolicy(models.ParseStrict))
	writeFile(t, path, `[{"name": "a"}]`)

	_, err := store.Load()
	if err == nil {
		t.Fatal("expected error under strict policy")
	}
	if !errors.Is(err, ErrMalformedCollection) {
		t.Errorf("expected ErrMalformedCollection, got %v", err)
	}
}

func TestLoad_UnreadablePathPropagates(t *testing.T) {
	dir := t.TempDir()
	// A directory at the file path cannot be read as a file.
	path := filepath.Join(dir, "tasks.json")
	if err := os.Mkdir(path, 0o750); err != nil {
		t.Fatal(err)
	}

	_, err := NewCollectionStore(path).Load()
	if err == nil {
		t.Fatal("expected I/O error")
	}
	if errors.Is(err, ErrMalformedCollection) {
		t.Error("I/O errors must not be reported as malformed collections")
	}
}

func TestSave_FormatsIndentedJSON(t *testing.T) {
	store, path := newTestStore(t)

	err := store.Save([]models.Task{{Name: "Buy milk", CompletionTime: "2024-01-01"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "[\n  {\n    \"name\": \"Buy milk\",\n    \"completion_time\": \"2024-01-01\"\n  }\n]\n"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", data, want)
	}
}

func TestSave_EmptyCollectionWritesEmptyArray(t *testing.T) {
	store, path := newTestStore(t)

	if err := store.Save(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "[]\n" {
		t.Errorf("file content = %q, want %q", data, "[]\n")
	}
}

func TestSave_OverwritesPriorContent(t *testing.T) {
	store, path := newTestStore(t)
	writeFile(t, path, `[{"name": "old", "completion_time": "x"}, {"name": "older", "completion_time": "y"}]`)

	if err := store.Save([]models.Task{{Name: "new", CompletionTime: "z"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tasks, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].Name != "new" {
		t.Errorf("expected only the new task, got %+v", tasks)
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	store, path := newTestStore(t)
	for i := 0; i < 3; i++ {
		if err := store.Save([]models.Task{{Name: "a", CompletionTime: "b"}}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "tasks.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only tasks.json, found %v", names)
	}
}

func TestSave_UnwritableDirectoryFails(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	store := NewCollectionStore(filepath.Join(dir, "tasks.json"))

	if err := store.Save([]models.Task{{Name: "a", CompletionTime: "b"}}); err == nil {
		t.Fatal("expected error writing into a read-only directory")
	}
}

func TestPath(t *testing.T) {
	store := NewCollectionStore("/tmp/x/tasks.json")
	if store.Path() != "/tmp/x/tasks.json" {
		t.Errorf("Path() = %q", store.Path())
	}
}
