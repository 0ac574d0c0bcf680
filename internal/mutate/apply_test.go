package mutate

import (
	"testing"
	"time"

	"gtd-cli/internal/model"
	"gtd-cli/internal/store"
)

func strPtr(s string) *string { return &s }

func baseState() store.State {
	return store.State{
		Tasks: []model.Task{
			{ID: "task-1", Title: "Write report", Priority: 2, Category: model.CategoryInbox},
			{ID: "task-2", Title: "Call bank", Priority: 5, Category: model.CategoryNextActions, ContextID: strPtr("ctx-1")},
		},
		Projects: []model.Project{{ID: "proj-1", Name: "Launch"}},
		Contexts: []model.Context{{ID: "ctx-1", Name: "home"}},
	}
}

func TestAddTask(t *testing.T) {
	st := baseState()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	next := Apply(st, AddTask{ID: "task-3", Title: "New thing", Priority: 0, Now: now})
	if len(next.Tasks) != len(st.Tasks)+1 {
		t.Fatalf("expected %d tasks, got %d", len(st.Tasks)+1, len(next.Tasks))
	}
	got, ok := next.FindTask("task-3")
	if !ok {
		t.Fatalf("task-3 not found")
	}
	if got.Completed || got.Trashed {
		t.Fatalf("new task must start open: completed=%v trashed=%v", got.Completed, got.Trashed)
	}
	if got.Category != model.CategoryInbox {
		t.Fatalf("category should default to inbox, got %q", got.Category)
	}
	if got.Priority != model.PriorityDefault {
		t.Fatalf("priority should default to %d, got %d", model.PriorityDefault, got.Priority)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("createdAt = %v, want %v", got.CreatedAt, now)
	}

	// Previous state untouched.
	if len(st.Tasks) != 2 {
		t.Fatalf("previous state mutated: %d tasks", len(st.Tasks))
	}
}

func TestAddTaskEmptyTitle(t *testing.T) {
	st := baseState()
	for _, title := range []string{"", "   ", "\t\n"} {
		next := Apply(st, AddTask{ID: "task-x", Title: title, Now: time.Now()})
		if len(next.Tasks) != len(st.Tasks) {
			t.Fatalf("title %q: expected no-op, got %d tasks", title, len(next.Tasks))
		}
	}
}

func TestToggleCompleteIdempotence(t *testing.T) {
	st := baseState()

	once := Apply(st, ToggleComplete{ID: "task-1"})
	if got, _ := once.FindTask("task-1"); !got.Completed {
		t.Fatalf("expected completed after first toggle")
	}
	twice := Apply(once, ToggleComplete{ID: "task-1"})
	if got, _ := twice.FindTask("task-1"); got.Completed {
		t.Fatalf("expected original value after second toggle")
	}

	// Unknown id is a no-op.
	if next := Apply(st, ToggleComplete{ID: "nope"}); len(next.Tasks) != len(st.Tasks) {
		t.Fatalf("unknown id changed state")
	}
}

func TestUndoCompleteNeverCompletes(t *testing.T) {
	st := baseState()

	next := Apply(st, UndoComplete{ID: "task-1"})
	if got, _ := next.FindTask("task-1"); got.Completed {
		t.Fatalf("undo flipped an open task to complete")
	}

	done := Apply(st, ToggleComplete{ID: "task-1"})
	undone := Apply(done, UndoComplete{ID: "task-1"})
	if got, _ := undone.FindTask("task-1"); got.Completed {
		t.Fatalf("undo did not clear completed")
	}
}

func TestTrashTask(t *testing.T) {
	st := baseState()
	next := Apply(st, TrashTask{ID: "task-1"})
	if got, _ := next.FindTask("task-1"); !got.Trashed {
		t.Fatalf("expected trashed=true")
	}
}

func TestUpdateTaskVerbatim(t *testing.T) {
	st := baseState()
	replacement := model.Task{ID: "task-1", Title: "Rewritten", Priority: 1}

	next := Apply(st, UpdateTask{Task: replacement})
	got, _ := next.FindTask("task-1")
	if got.Title != "Rewritten" || got.Category != "" {
		t.Fatalf("expected verbatim replacement, got %+v", got)
	}

	// Unknown id is a no-op, not an insert.
	next = Apply(st, UpdateTask{Task: model.Task{ID: "task-9", Title: "ghost"}})
	if len(next.Tasks) != len(st.Tasks) {
		t.Fatalf("update of unknown id changed cardinality")
	}
}

func TestMoveToProjectKeepsNextActions(t *testing.T) {
	st := baseState()

	// task-2 is a next action; filing it under a project must not steal it
	// from the next-actions list.
	next := Apply(st, MoveTo{TaskID: "task-2", Destination: DestinationProject, ProjectID: strPtr("proj-1")})
	got, _ := next.FindTask("task-2")
	if got.Category != model.CategoryNextActions {
		t.Fatalf("category = %q, want nextActions", got.Category)
	}
	if got.ProjectID == nil || *got.ProjectID != "proj-1" {
		t.Fatalf("projectId not set: %v", got.ProjectID)
	}
	if got.ContextID == nil || *got.ContextID != "ctx-1" {
		t.Fatalf("contextId not preserved: %v", got.ContextID)
	}

	// task-1 is inbox; the same move takes it over to projects.
	next = Apply(st, MoveTo{TaskID: "task-1", Destination: DestinationProject, ProjectID: strPtr("proj-1")})
	got, _ = next.FindTask("task-1")
	if got.Category != model.CategoryProjects {
		t.Fatalf("category = %q, want projects", got.Category)
	}
}

func TestMoveToNextAlwaysNextActions(t *testing.T) {
	st := baseState()
	st.Tasks[0].ProjectID = strPtr("proj-1")
	st.Tasks[0].Category = model.CategoryProjects

	next := Apply(st, MoveTo{TaskID: "task-1", Destination: DestinationNext, ContextID: strPtr("ctx-1")})
	got, _ := next.FindTask("task-1")
	if got.Category != model.CategoryNextActions {
		t.Fatalf("category = %q, want nextActions", got.Category)
	}
	if got.ContextID == nil || *got.ContextID != "ctx-1" {
		t.Fatalf("contextId not set: %v", got.ContextID)
	}
	if got.ProjectID == nil || *got.ProjectID != "proj-1" {
		t.Fatalf("projectId not preserved: %v", got.ProjectID)
	}
}

func TestMoveTaskToCategoryPartialOverwrite(t *testing.T) {
	st := baseState()

	// Only the category changes; references stay put when the Set flags are off.
	next := Apply(st, MoveTaskToCategory{ID: "task-2", Category: model.CategoryInbox})
	got, _ := next.FindTask("task-2")
	if got.ContextID == nil || *got.ContextID != "ctx-1" {
		t.Fatalf("contextId overwritten without Set flag")
	}

	// A set flag with a nil value clears the reference.
	next = Apply(st, MoveTaskToCategory{ID: "task-2", Category: model.CategoryInbox, SetContextID: true})
	got, _ = next.FindTask("task-2")
	if got.ContextID != nil {
		t.Fatalf("contextId should be cleared, got %v", *got.ContextID)
	}
}

func TestAddProject(t *testing.T) {
	st := baseState()

	next := Apply(st, AddProject{ID: "proj-2", Name: "  Website  "})
	p, ok := next.FindProject("proj-2")
	if !ok {
		t.Fatalf("project not added")
	}
	if p.Name != "Website" {
		t.Fatalf("name not trimmed: %q", p.Name)
	}

	if next := Apply(st, AddProject{ID: "proj-3", Name: "   "}); len(next.Projects) != len(st.Projects) {
		t.Fatalf("empty name should be a no-op")
	}
}

func TestUpdateProjectMerge(t *testing.T) {
	st := baseState()

	next := Apply(st, UpdateProject{Project: model.Project{ID: "proj-1", Name: "Launch v2"}})
	p, _ := next.FindProject("proj-1")
	if p.Name != "Launch v2" {
		t.Fatalf("name = %q", p.Name)
	}

	// Empty name keeps the stored one.
	next = Apply(st, UpdateProject{Project: model.Project{ID: "proj-1"}})
	p, _ = next.FindProject("proj-1")
	if p.Name != "Launch" {
		t.Fatalf("empty name overwrote stored name: %q", p.Name)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	st := baseState()
	st.Tasks[0].ProjectID = strPtr("proj-1")
	st.Tasks[1].ProjectID = strPtr("proj-1")

	next := Apply(st, DeleteProject{ID: "proj-1"})
	if len(next.Projects) != 0 {
		t.Fatalf("project not removed")
	}
	if len(next.Tasks) != 0 {
		t.Fatalf("expected cascade delete, %d tasks left", len(next.Tasks))
	}

	if got := Apply(st, DeleteProject{ID: "proj-9"}); len(got.Tasks) != len(st.Tasks) {
		t.Fatalf("unknown project changed tasks")
	}
}

func TestAddContextDuplicateName(t *testing.T) {
	st := baseState()

	next := Apply(st, AddContext{ID: "ctx-2", Name: " home "})
	if len(next.Contexts) != len(st.Contexts) {
		t.Fatalf("duplicate name created a second context")
	}

	next = Apply(st, AddContext{ID: "ctx-2", Name: "errands"})
	if len(next.Contexts) != len(st.Contexts)+1 {
		t.Fatalf("new context not added")
	}
}

func TestDeleteContextCompletesOrphans(t *testing.T) {
	st := baseState()
	st.Tasks[0].ContextID = strPtr("ctx-1")

	next := Apply(st, DeleteContext{ID: "ctx-1"})
	if len(next.Contexts) != 0 {
		t.Fatalf("context not removed")
	}
	for _, id := range []string{"task-1", "task-2"} {
		got, _ := next.FindTask(id)
		if got.ContextID != nil {
			t.Fatalf("%s: contextId not detached", id)
		}
		if !got.Completed {
			t.Fatalf("%s: orphaned next action not completed", id)
		}
	}
}
