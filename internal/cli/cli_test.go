package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

// runCLI executes a fresh root command so persistent flag state never leaks
// between invocations.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRunJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, err := runCLI(t, append(args, "--format", "json")...)
	if err != nil {
		t.Fatalf("command failed: gtd %v: %v", args, err)
	}
	var env map[string]any
	if err := json.Unmarshal([]byte(stdout), &env); err != nil {
		t.Fatalf("unmarshal stdout: %v\nstdout:\n%s", err, stdout)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope with data key, got: %s", stdout)
	}
	return env
}

func TestCLISmoke(t *testing.T) {
	dir := t.TempDir()

	proj := mustRunJSON(t, "--dir", dir, "projects", "create", "--name", "Launch")
	projectID, _ := proj["data"].(map[string]any)["id"].(string)
	if projectID == "" {
		t.Fatalf("projects create returned no id: %#v", proj["data"])
	}

	task := mustRunJSON(t, "--dir", dir, "tasks", "add", "--title", "Draft plan", "--due", "2026-09-15")
	taskID, _ := task["data"].(map[string]any)["id"].(string)
	if taskID == "" {
		t.Fatalf("tasks add returned no id: %#v", task["data"])
	}
	if cat, _ := task["data"].(map[string]any)["category"].(string); cat != "inbox" {
		t.Fatalf("new task category = %q, want inbox", cat)
	}

	moved := mustRunJSON(t, "--dir", dir, "tasks", "move", taskID, "--to", "project", "--project", projectID)
	if cat, _ := moved["data"].(map[string]any)["category"].(string); cat != "projects" {
		t.Fatalf("moved task category = %q, want projects", cat)
	}

	byProject := mustRunJSON(t, "--dir", dir, "projects", "tasks", projectID)
	tasks, _ := byProject["data"].([]any)
	if len(tasks) != 1 {
		t.Fatalf("projects tasks = %#v, want exactly the moved task", byProject["data"])
	}

	done := mustRunJSON(t, "--dir", dir, "tasks", "complete", taskID)
	if c, _ := done["data"].(map[string]any)["completed"].(bool); !c {
		t.Fatalf("complete did not set completed")
	}
	undone := mustRunJSON(t, "--dir", dir, "tasks", "undo", taskID)
	if c, _ := undone["data"].(map[string]any)["completed"].(bool); c {
		t.Fatalf("undo did not clear completed")
	}
}

func TestCLIUnknownTask(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, "--dir", dir, "tasks", "complete", "nope", "--format", "json"); err == nil {
		t.Fatalf("expected error for unknown task id")
	}
}

func TestParseDueDate(t *testing.T) {
	if _, err := parseDueDate("not-a-date"); err == nil {
		t.Fatalf("expected error")
	}
	got, err := parseDueDate("2026-09-15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Year() != 2026 || got.Month() != 9 || got.Day() != 15 {
		t.Fatalf("got %v", got)
	}
	if ts, _ := parseDueDate("today"); ts.Hour() != 0 {
		t.Fatalf("today should be start of day, got %v", ts)
	}
}
