package mutate

import (
	"time"

	"gtd-cli/internal/model"
)

// Command is the closed set of root-state transitions. Each variant carries
// the full payload of one operation; Apply is the only interpreter.
//
// Commands never mutate in place and never fail: invalid input (empty title,
// unknown id, duplicate context name) yields the previous state unchanged.
type Command interface {
	isCommand()
}

// Destination is a high-level move target for MoveTo.
type Destination string

const (
	DestinationProject Destination = "project"
	DestinationNext    Destination = "next"
)

// AddTask inserts a new task. ID and Now are filled by the dispatching
// store so the transition itself stays deterministic.
type AddTask struct {
	ID          string
	Title       string
	Description string
	DueDate     time.Time
	Priority    int
	Category    model.Category
	ProjectID   *string
	ContextID   *string
	Now         time.Time
}

// UpdateTask replaces the stored task with the same ID verbatim.
type UpdateTask struct {
	Task model.Task
}

// ToggleComplete flips the completed flag.
type ToggleComplete struct {
	ID string
}

// UndoComplete forces completed=false. Unlike ToggleComplete it can never
// complete a task, so it is safe to fire after a stale undo prompt.
type UndoComplete struct {
	ID string
}

// TrashTask soft-deletes a task. Every view filters trashed tasks; the data
// stays in the blob.
type TrashTask struct {
	ID string
}

// MoveTaskToCategory sets the category directly. ProjectID/ContextID are
// only written when their Set flag is true; otherwise the existing
// reference is preserved (present-but-null clears it).
type MoveTaskToCategory struct {
	ID       string
	Category model.Category

	SetProjectID bool
	ProjectID    *string
	SetContextID bool
	ContextID    *string
}

// MoveTo files a task under a project or a context with the category policy
// implemented by classify.
type MoveTo struct {
	TaskID      string
	Destination Destination
	ProjectID   *string
	ContextID   *string
}

// AddProject creates a project. A caller-supplied ID is used verbatim (so
// callers can know the id before the store round-trips); the dispatching
// store fills it otherwise.
type AddProject struct {
	ID   string
	Name string
}

// UpdateProject merges the supplied fields into the stored project.
type UpdateProject struct {
	Project model.Project
}

// DeleteProject removes the project and hard-deletes every task in it.
type DeleteProject struct {
	ID string
}

// AddContext creates a context. A duplicate trimmed name is a no-op, not an
// update.
type AddContext struct {
	ID   string
	Name string
}

// DeleteContext removes the context, detaches it from every referencing
// task, and marks those tasks completed. Deliberate policy: orphaned next
// actions are closed out rather than left unreachable.
type DeleteContext struct {
	ID string
}

func (AddTask) isCommand()            {}
func (UpdateTask) isCommand()         {}
func (ToggleComplete) isCommand()     {}
func (UndoComplete) isCommand()       {}
func (TrashTask) isCommand()          {}
func (MoveTaskToCategory) isCommand() {}
func (MoveTo) isCommand()             {}
func (AddProject) isCommand()         {}
func (UpdateProject) isCommand()      {}
func (DeleteProject) isCommand()      {}
func (AddContext) isCommand()         {}
func (DeleteContext) isCommand()      {}
