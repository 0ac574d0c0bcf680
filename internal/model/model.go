package model

import "time"

// Category is the list view that currently "owns" a task. A task can
// reference both a project and a context at the same time; Category records
// which side of the Next-Actions/Projects split it shows up on.
type Category string

const (
	CategoryInbox       Category = "inbox"
	CategoryProjects    Category = "projects"
	CategoryNextActions Category = "nextActions"

	// CategoryNextLegacy appears in blobs written by older builds.
	// Treated as CategoryNextActions everywhere it is read.
	CategoryNextLegacy Category = "next"
)

// IsNextActions reports whether c marks a task as a next action, accepting
// the legacy spelling.
func (c Category) IsNextActions() bool {
	return c == CategoryNextActions || c == CategoryNextLegacy
}

type Subtask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Priority    int       `json:"priority"`
	Category    Category  `json:"category,omitempty"`

	ProjectID *string `json:"projectId,omitempty"`
	ContextID *string `json:"contextId,omitempty"`

	Completed bool `json:"completed"`
	Trashed   bool `json:"trashed"`

	CreatedAt time.Time `json:"createdAt"`
	Subtasks  []Subtask `json:"subtasks,omitempty"`
}

// Open reports whether the task is still actionable (not completed, not
// soft-deleted). Every list view filters on this.
func (t Task) Open() bool {
	return !t.Completed && !t.Trashed
}

type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Context is a GTD "@context" (e.g. @home, @computer) grouping next actions.
type Context struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const (
	PriorityHighest = 1
	PriorityDefault = 5
)

// NormalizePriority clamps unset or out-of-range priorities to the default.
func NormalizePriority(p int) int {
	if p < PriorityHighest || p > PriorityDefault {
		return PriorityDefault
	}
	return p
}
