package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gtd-cli/internal/format"
	"gtd-cli/internal/model"
	"gtd-cli/internal/mutate"
	"gtd-cli/internal/taskstore"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksCompleteCmd(app))
	cmd.AddCommand(newTasksUndoCmd(app))
	cmd.AddCommand(newTasksTrashCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	cmd.AddCommand(newTasksSetCategoryCmd(app))
	return cmd
}

func parseCategory(s string) (model.Category, error) {
	switch strings.TrimSpace(s) {
	case "", "inbox":
		return model.CategoryInbox, nil
	case "projects":
		return model.CategoryProjects, nil
	case "nextActions", "next":
		return model.CategoryNextActions, nil
	default:
		return "", fmt.Errorf("invalid category: %q (expected inbox|projects|nextActions)", s)
	}
}

func optionalID(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func newTasksAddCmd(app *App) *cobra.Command {
	var (
		title       string
		description string
		due         string
		priority    int
		category    string
		projectID   string
		contextID   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task (defaults to the inbox)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cat, err := parseCategory(category)
			if err != nil {
				return writeErr(cmd, err)
			}
			dueDate, err := parseDueDate(due)
			if err != nil {
				return writeErr(cmd, err)
			}
			if dueDate.IsZero() {
				dueDate = time.Now()
			}

			task, ok := ts.AddTask(cmd.Context(), mutate.AddTask{
				Title:       title,
				Description: description,
				DueDate:     dueDate,
				Priority:    priority,
				Category:    cat,
				ProjectID:   optionalID(projectID),
				ContextID:   optionalID(contextID),
			})
			if !ok {
				return writeErr(cmd, fmt.Errorf("task title must not be empty"))
			}
			if tableOutput(app) {
				format.RenderTasks(cmd.OutOrStdout(), []model.Task{task})
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "desc", "", "Task description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, RFC3339, today, tomorrow; default today)")
	cmd.Flags().IntVar(&priority, "priority", model.PriorityDefault, "Priority 1-5 (1 = highest)")
	cmd.Flags().StringVar(&category, "category", "", "Category (inbox|projects|nextActions; default inbox)")
	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	cmd.Flags().StringVar(&contextID, "context", "", "Context id")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var (
		projectID string
		contextID string
		category  string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (open tasks by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var cat model.Category
			if category != "" {
				cat, err = parseCategory(category)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			var out []model.Task
			for _, t := range ts.State().Tasks {
				if !all && !t.Open() {
					continue
				}
				if projectID != "" && (t.ProjectID == nil || *t.ProjectID != projectID) {
					continue
				}
				if contextID != "" && (t.ContextID == nil || *t.ContextID != contextID) {
					continue
				}
				if cat != "" {
					if cat == model.CategoryNextActions {
						if !t.Category.IsNextActions() {
							continue
						}
					} else if t.Category != cat {
						continue
					}
				}
				out = append(out, t)
			}
			if tableOutput(app) {
				format.RenderTasks(cmd.OutOrStdout(), out)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Only tasks in this project")
	cmd.Flags().StringVar(&contextID, "context", "", "Only tasks in this context")
	cmd.Flags().StringVar(&category, "category", "", "Only tasks in this category")
	cmd.Flags().BoolVar(&all, "all", false, "Include completed and trashed tasks")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := ts.State().FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			if tableOutput(app) {
				format.RenderTasks(cmd.OutOrStdout(), []model.Task{*t})
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var (
		title       string
		description string
		due         string
		priority    int
	)

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			existing, ok := ts.State().FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}

			// The store replaces the task verbatim, so build the full
			// value here from the existing one plus changed flags.
			next := *existing
			if cmd.Flags().Changed("title") {
				next.Title = title
			}
			if cmd.Flags().Changed("desc") {
				next.Description = description
			}
			if cmd.Flags().Changed("due") {
				dueDate, err := parseDueDate(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				next.DueDate = dueDate
			}
			if cmd.Flags().Changed("priority") {
				next.Priority = model.NormalizePriority(priority)
			}

			ts.UpdateTask(cmd.Context(), next)
			if tableOutput(app) {
				format.RenderTasks(cmd.OutOrStdout(), []model.Task{next})
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": next})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "desc", "", "New description")
	cmd.Flags().StringVar(&due, "due", "", "New due date")
	cmd.Flags().IntVar(&priority, "priority", model.PriorityDefault, "New priority 1-5")
	return cmd
}

func newTasksCompleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Toggle a task's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTask(cmd, app, args[0], (*taskstore.Store).ToggleComplete)
		},
	}
	return cmd
}

func newTasksUndoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <task-id>",
		Short: "Undo a completion (never completes an open task)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTask(cmd, app, args[0], (*taskstore.Store).UndoComplete)
		},
	}
	return cmd
}

func newTasksTrashCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash <task-id>",
		Short: "Move a task to the trash (hidden from every view)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTask(cmd, app, args[0], (*taskstore.Store).TrashTask)
		},
	}
	return cmd
}

// mutateTask runs one id-keyed mutation and prints the resulting task.
func mutateTask(cmd *cobra.Command, app *App, id string, op func(*taskstore.Store, context.Context, string)) error {
	ts, err := loadStore(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if _, ok := ts.State().FindTask(id); !ok {
		return writeErr(cmd, errNotFound("task", id))
	}
	op(ts, cmd.Context(), id)
	t, _ := ts.State().FindTask(id)
	if tableOutput(app) {
		format.RenderTasks(cmd.OutOrStdout(), []model.Task{*t})
		return nil
	}
	return writeOut(cmd, app, map[string]any{"data": t})
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var (
		to        string
		projectID string
		contextID string
	)

	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "File a task under a project or a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := ts.State().FindTask(args[0]); !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}

			var dest mutate.Destination
			switch to {
			case "project":
				dest = mutate.DestinationProject
			case "next":
				dest = mutate.DestinationNext
			default:
				return writeErr(cmd, fmt.Errorf("invalid destination: %q (expected project|next)", to))
			}

			ts.MoveTo(cmd.Context(), mutate.MoveTo{
				TaskID:      args[0],
				Destination: dest,
				ProjectID:   optionalID(projectID),
				ContextID:   optionalID(contextID),
			})
			t, _ := ts.State().FindTask(args[0])
			if tableOutput(app) {
				format.RenderTasks(cmd.OutOrStdout(), []model.Task{*t})
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Destination (project|next)")
	cmd.Flags().StringVar(&projectID, "project", "", "Project id (with --to project)")
	cmd.Flags().StringVar(&contextID, "context", "", "Context id (with --to next)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newTasksSetCategoryCmd(app *App) *cobra.Command {
	var (
		projectID string
		contextID string
	)

	cmd := &cobra.Command{
		Use:   "set-category <task-id> <category>",
		Short: "Set a task's category directly",
		Long: strings.TrimSpace(`
Set a task's category directly. --project/--context overwrite the stored
references only when given; pass an empty value to clear one. Unlike "tasks
move", no filing policy is applied.
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := ts.State().FindTask(args[0]); !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			cat, err := parseCategory(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}

			move := mutate.MoveTaskToCategory{ID: args[0], Category: cat}
			if cmd.Flags().Changed("project") {
				move.SetProjectID = true
				move.ProjectID = optionalID(projectID)
			}
			if cmd.Flags().Changed("context") {
				move.SetContextID = true
				move.ContextID = optionalID(contextID)
			}

			ts.MoveTaskToCategory(cmd.Context(), move)
			t, _ := ts.State().FindTask(args[0])
			if tableOutput(app) {
				format.RenderTasks(cmd.OutOrStdout(), []model.Task{*t})
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Overwrite the project reference (empty clears it)")
	cmd.Flags().StringVar(&contextID, "context", "", "Overwrite the context reference (empty clears it)")
	return cmd
}
