package cli

import (
	"fmt"
	"time"

	"gtd-cli/internal/format"
	"gtd-cli/internal/views"

	"github.com/spf13/cobra"
)

func newTodayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Tasks due today, highest priority first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToday(cmd, app, args)
		},
	}
	return cmd
}

func runToday(cmd *cobra.Command, app *App, _ []string) error {
	ts, err := loadStore(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	tasks := views.Today(ts.State(), time.Now())
	if tableOutput(app) {
		if len(tasks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), format.Greeting(time.Now()))
			return nil
		}
		format.RenderTasks(cmd.OutOrStdout(), tasks)
		return nil
	}
	return writeOut(cmd, app, map[string]any{"data": tasks})
}

func newInboxCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Untriaged tasks, grouped by due day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			groups := views.Inbox(ts.State())
			if tableOutput(app) {
				format.RenderDateGroups(cmd.OutOrStdout(), groups)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": groups})
		},
	}
	return cmd
}

func newNextCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Next actions grouped by context",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := views.NextActions(ts.State(), filter)
			if tableOutput(app) {
				format.RenderNextActions(cmd.OutOrStdout(), res)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Filter by context name (@home) or project name")
	return cmd
}
