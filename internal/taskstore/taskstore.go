// Package taskstore exposes the mutation/query surface of the app: a single
// stateful owner of the root state that applies commands and persists the
// result after every mutation.
package taskstore

import (
	"context"
	"log"
	"strings"
	"time"

	"gtd-cli/internal/model"
	"gtd-cli/internal/mutate"
	"gtd-cli/internal/store"
)

// Store owns the current root state. It is constructed once at process
// start and handed to every consumer, never a hidden global.
//
// Not safe for concurrent use: the app is single-writer by contract.
type Store struct {
	persist store.Store
	state   store.State
}

// Open loads the persisted state (or the empty state if none exists or the
// blob is corrupt) and returns the ready store. An error here means the
// storage itself is unusable, not that the blob was bad.
func Open(ctx context.Context, persist store.Store) (*Store, error) {
	st, err := persist.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Store{persist: persist, state: st}, nil
}

// New returns a store over the given state without touching storage.
// Intended for tests and in-memory consumers.
func New(persist store.Store, st store.State) *Store {
	return &Store{persist: persist, state: st.Normalize()}
}

// State returns the current root state. Callers must treat it as read-only.
func (ts *Store) State() store.State {
	return ts.state
}

// Dispatch applies cmd, publishes the resulting state, then saves it
// best-effort. A failed save is logged and otherwise ignored: the in-memory
// state is the source of truth, and the worst case is the next session
// loading an older blob.
func (ts *Store) Dispatch(ctx context.Context, cmd mutate.Command) {
	ts.state = mutate.Apply(ts.state, cmd)
	if err := ts.persist.Save(ctx, ts.state); err != nil {
		log.Printf("gtd: state save failed: %v", err)
	}
}

// AddTask inserts a new task with a fresh id, stamping CreatedAt. Returns
// the stored task, or ok=false when the title is empty (no task is
// created).
func (ts *Store) AddTask(ctx context.Context, cmd mutate.AddTask) (model.Task, bool) {
	if strings.TrimSpace(cmd.Title) == "" {
		return model.Task{}, false
	}
	if cmd.ID == "" {
		cmd.ID = store.NewID()
	}
	if cmd.Now.IsZero() {
		cmd.Now = time.Now().UTC()
	}
	ts.Dispatch(ctx, cmd)
	t, ok := ts.state.FindTask(cmd.ID)
	if !ok {
		return model.Task{}, false
	}
	return *t, true
}

// UpdateTask replaces the stored task with t.ID verbatim. Unknown id is a
// no-op.
func (ts *Store) UpdateTask(ctx context.Context, t model.Task) {
	ts.Dispatch(ctx, mutate.UpdateTask{Task: t})
}

func (ts *Store) ToggleComplete(ctx context.Context, id string) {
	ts.Dispatch(ctx, mutate.ToggleComplete{ID: id})
}

// UndoComplete reverts a completion. It never completes a task, so firing
// it against an already-open task changes nothing.
func (ts *Store) UndoComplete(ctx context.Context, id string) {
	ts.Dispatch(ctx, mutate.UndoComplete{ID: id})
}

// TrashTask soft-deletes a task; every view filters it from then on.
func (ts *Store) TrashTask(ctx context.Context, id string) {
	ts.Dispatch(ctx, mutate.TrashTask{ID: id})
}

func (ts *Store) MoveTaskToCategory(ctx context.Context, cmd mutate.MoveTaskToCategory) {
	ts.Dispatch(ctx, cmd)
}

func (ts *Store) MoveTo(ctx context.Context, cmd mutate.MoveTo) {
	ts.Dispatch(ctx, cmd)
}

// AddProject creates a project. When id is empty a fresh one is generated;
// a caller-supplied id is used verbatim. ok=false when the name is empty.
func (ts *Store) AddProject(ctx context.Context, name, id string) (model.Project, bool) {
	if strings.TrimSpace(name) == "" {
		return model.Project{}, false
	}
	if id == "" {
		id = store.NewID()
	}
	ts.Dispatch(ctx, mutate.AddProject{ID: id, Name: name})
	p, ok := ts.state.FindProject(id)
	if !ok {
		return model.Project{}, false
	}
	return *p, true
}

// UpdateProject merges the supplied fields into the stored project.
func (ts *Store) UpdateProject(ctx context.Context, p model.Project) {
	ts.Dispatch(ctx, mutate.UpdateProject{Project: p})
}

// DeleteProject removes the project and hard-deletes its tasks.
func (ts *Store) DeleteProject(ctx context.Context, id string) {
	ts.Dispatch(ctx, mutate.DeleteProject{ID: id})
}

// AddContext creates a context. A duplicate trimmed name is suppressed: the
// existing context is returned and nothing changes. ok=false only when the
// name is empty.
func (ts *Store) AddContext(ctx context.Context, name, id string) (model.Context, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Context{}, false
	}
	if existing, ok := ts.state.ContextByName(name); ok {
		return *existing, true
	}
	if id == "" {
		id = store.NewID()
	}
	ts.Dispatch(ctx, mutate.AddContext{ID: id, Name: name})
	c, ok := ts.state.FindContext(id)
	if !ok {
		return model.Context{}, false
	}
	return *c, true
}

// DeleteContext removes the context, detaching and completing every task
// that referenced it.
func (ts *Store) DeleteContext(ctx context.Context, id string) {
	ts.Dispatch(ctx, mutate.DeleteContext{ID: id})
}

// GetTasksByProject returns the project's open, untrashed tasks.
func (ts *Store) GetTasksByProject(projectID string) []model.Task {
	var out []model.Task
	for _, t := range ts.state.Tasks {
		if t.ProjectID != nil && *t.ProjectID == projectID && t.Open() {
			out = append(out, t)
		}
	}
	return out
}
