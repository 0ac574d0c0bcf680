package cli

import (
	"fmt"
	"os"
	"strings"

	"gtd-cli/internal/format"
	"gtd-cli/internal/store"
	"gtd-cli/internal/taskstore"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "gtd",
		Short:        "GTD-style task manager (today, inbox, projects, next actions)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # What's due today
  gtd today

  # Capture into the inbox
  gtd tasks add --title "Draft plan" --due tomorrow

  # File a task under a project
  gtd tasks move <task-id> --to project --project <project-id>

  # Next actions for a context
  gtd next --filter @home
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => the Today view, like the app opening screen.
			return runToday(cmd, app, args)
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("GTD_DIR", ""), "Path to store dir (default: .gtd discovered from cwd)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("GTD_FORMAT", "table"), "Output format (table|json)")

	cmd.AddCommand(newTodayCmd(app))
	cmd.AddCommand(newInboxCmd(app))
	cmd.AddCommand(newNextCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newContextsCmd(app))

	return cmd
}

func loadStore(cmd *cobra.Command, app *App) (*taskstore.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
		app.Dir = dir
	}
	return taskstore.Open(cmd.Context(), store.Store{Dir: dir})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func tableOutput(app *App) bool {
	return app.Format == "" || app.Format == "table"
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
