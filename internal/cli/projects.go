package cli

import (
	"fmt"

	"gtd-cli/internal/format"
	"gtd-cli/internal/model"
	"gtd-cli/internal/views"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsRenameCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	cmd.AddCommand(newProjectsTasksCmd(app))
	return cmd
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var name, id string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, ok := ts.AddProject(cmd.Context(), name, id)
			if !ok {
				return writeErr(cmd, fmt.Errorf("project name must not be empty"))
			}
			if tableOutput(app) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", p.Name, p.ID)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&id, "id", "", "Project id (optional; generated when empty)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects with open-task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := ts.State()
			if tableOutput(app) {
				format.RenderProjects(cmd.OutOrStdout(), st.Projects, func(id string) int {
					return views.ProjectTaskCount(st, id)
				})
				return nil
			}
			type row struct {
				model.Project
				OpenTasks int `json:"openTasks"`
			}
			rows := make([]row, 0, len(st.Projects))
			for _, p := range st.Projects {
				rows = append(rows, row{Project: p, OpenTasks: views.ProjectTaskCount(st, p.ID)})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
	return cmd
}

func newProjectsRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <project-id>",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := ts.State().FindProject(args[0]); !ok {
				return writeErr(cmd, errNotFound("project", args[0]))
			}
			ts.UpdateProject(cmd.Context(), model.Project{ID: args[0], Name: name})
			p, _ := ts.State().FindProject(args[0])
			if tableOutput(app) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", p.Name, p.ID)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and every task in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := ts.State().FindProject(args[0]); !ok {
				return writeErr(cmd, errNotFound("project", args[0]))
			}
			ts.DeleteProject(cmd.Context(), args[0])
			if tableOutput(app) {
				fmt.Fprintln(cmd.OutOrStdout(), "deleted")
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}
	return cmd
}

func newProjectsTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks <project-id>",
		Short: "List a project's open tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := ts.State().FindProject(args[0]); !ok {
				return writeErr(cmd, errNotFound("project", args[0]))
			}
			tasks := ts.GetTasksByProject(args[0])
			if tableOutput(app) {
				format.RenderTasks(cmd.OutOrStdout(), tasks)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}
	return cmd
}
