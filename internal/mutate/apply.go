package mutate

import (
	"strings"

	"gtd-cli/internal/model"
	"gtd-cli/internal/store"
)

// Apply is the single transition function: previous state + command -> next
// state. It is pure; callers publish the result and persist it.
func Apply(st store.State, cmd Command) store.State {
	switch c := cmd.(type) {
	case AddTask:
		return applyAddTask(st, c)
	case UpdateTask:
		return applyUpdateTask(st, c)
	case ToggleComplete:
		return updateTask(st, c.ID, func(t model.Task) model.Task {
			t.Completed = !t.Completed
			return t
		})
	case UndoComplete:
		return updateTask(st, c.ID, func(t model.Task) model.Task {
			t.Completed = false
			return t
		})
	case TrashTask:
		return updateTask(st, c.ID, func(t model.Task) model.Task {
			t.Trashed = true
			return t
		})
	case MoveTaskToCategory:
		return updateTask(st, c.ID, func(t model.Task) model.Task {
			t.Category = c.Category
			if c.SetProjectID {
				t.ProjectID = c.ProjectID
			}
			if c.SetContextID {
				t.ContextID = c.ContextID
			}
			return t
		})
	case MoveTo:
		return updateTask(st, c.TaskID, func(t model.Task) model.Task {
			return classify(t, c.Destination, c.ProjectID, c.ContextID)
		})
	case AddProject:
		return applyAddProject(st, c)
	case UpdateProject:
		return applyUpdateProject(st, c)
	case DeleteProject:
		return applyDeleteProject(st, c)
	case AddContext:
		return applyAddContext(st, c)
	case DeleteContext:
		return applyDeleteContext(st, c)
	default:
		return st
	}
}

// updateTask rewrites one task through f, copying the slice so the previous
// state value stays untouched. Unknown id is a no-op.
func updateTask(st store.State, id string, f func(model.Task) model.Task) store.State {
	found := false
	tasks := make([]model.Task, len(st.Tasks))
	for i, t := range st.Tasks {
		if t.ID == id {
			t = f(t)
			found = true
		}
		tasks[i] = t
	}
	if !found {
		return st
	}
	st.Tasks = tasks
	return st
}

func applyAddTask(st store.State, c AddTask) store.State {
	if c.ID == "" || strings.TrimSpace(c.Title) == "" {
		return st
	}
	category := c.Category
	if category == "" {
		category = model.CategoryInbox
	}
	t := model.Task{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		DueDate:     c.DueDate,
		Priority:    model.NormalizePriority(c.Priority),
		Category:    category,
		ProjectID:   c.ProjectID,
		ContextID:   c.ContextID,
		Completed:   false,
		Trashed:     false,
		CreatedAt:   c.Now,
	}
	tasks := make([]model.Task, 0, len(st.Tasks)+1)
	tasks = append(tasks, st.Tasks...)
	st.Tasks = append(tasks, t)
	return st
}

func applyUpdateTask(st store.State, c UpdateTask) store.State {
	return updateTask(st, c.Task.ID, func(model.Task) model.Task {
		// Full overwrite, not a patch.
		return c.Task
	})
}

func applyAddProject(st store.State, c AddProject) store.State {
	name := strings.TrimSpace(c.Name)
	if c.ID == "" || name == "" {
		return st
	}
	projects := make([]model.Project, 0, len(st.Projects)+1)
	projects = append(projects, st.Projects...)
	st.Projects = append(projects, model.Project{ID: c.ID, Name: name})
	return st
}

func applyUpdateProject(st store.State, c UpdateProject) store.State {
	found := false
	projects := make([]model.Project, len(st.Projects))
	for i, p := range st.Projects {
		if p.ID == c.Project.ID {
			if name := strings.TrimSpace(c.Project.Name); name != "" {
				p.Name = name
			}
			found = true
		}
		projects[i] = p
	}
	if !found {
		return st
	}
	st.Projects = projects
	return st
}

func applyDeleteProject(st store.State, c DeleteProject) store.State {
	if _, ok := st.FindProject(c.ID); !ok {
		return st
	}
	projects := make([]model.Project, 0, len(st.Projects))
	for _, p := range st.Projects {
		if p.ID != c.ID {
			projects = append(projects, p)
		}
	}
	// Cascade: tasks belonging to the project are hard-deleted, not trashed.
	tasks := make([]model.Task, 0, len(st.Tasks))
	for _, t := range st.Tasks {
		if t.ProjectID != nil && *t.ProjectID == c.ID {
			continue
		}
		tasks = append(tasks, t)
	}
	st.Projects = projects
	st.Tasks = tasks
	return st
}

func applyAddContext(st store.State, c AddContext) store.State {
	name := strings.TrimSpace(c.Name)
	if c.ID == "" || name == "" {
		return st
	}
	if _, ok := st.ContextByName(name); ok {
		// Duplicate-name suppression: the existing context wins.
		return st
	}
	contexts := make([]model.Context, 0, len(st.Contexts)+1)
	contexts = append(contexts, st.Contexts...)
	st.Contexts = append(contexts, model.Context{ID: c.ID, Name: name})
	return st
}

func applyDeleteContext(st store.State, c DeleteContext) store.State {
	if _, ok := st.FindContext(c.ID); !ok {
		return st
	}
	contexts := make([]model.Context, 0, len(st.Contexts))
	for _, cx := range st.Contexts {
		if cx.ID != c.ID {
			contexts = append(contexts, cx)
		}
	}
	// Policy: deleting a context completes its orphaned next actions
	// instead of leaving them unreachable.
	tasks := make([]model.Task, len(st.Tasks))
	for i, t := range st.Tasks {
		if t.ContextID != nil && *t.ContextID == c.ID {
			t.ContextID = nil
			t.Completed = true
		}
		tasks[i] = t
	}
	st.Contexts = contexts
	st.Tasks = tasks
	return st
}
