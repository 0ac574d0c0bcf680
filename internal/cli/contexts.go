package cli

import (
	"fmt"
	"strings"

	"gtd-cli/internal/format"

	"github.com/spf13/cobra"
)

func newContextsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contexts",
		Short: "Context commands (@home, @computer, ...)",
	}
	cmd.AddCommand(newContextsCreateCmd(app))
	cmd.AddCommand(newContextsListCmd(app))
	cmd.AddCommand(newContextsDeleteCmd(app))
	return cmd
}

func newContextsCreateCmd(app *App) *cobra.Command {
	var name, id string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a context (duplicate names are ignored)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, ok := ts.AddContext(cmd.Context(), strings.TrimPrefix(strings.TrimSpace(name), "@"), id)
			if !ok {
				return writeErr(cmd, fmt.Errorf("context name must not be empty"))
			}
			if tableOutput(app) {
				fmt.Fprintf(cmd.OutOrStdout(), "@%s %s\n", c.Name, c.ID)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Context name (with or without a leading @)")
	cmd.Flags().StringVar(&id, "id", "", "Context id (optional; generated when empty)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newContextsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contexts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if tableOutput(app) {
				format.RenderContexts(cmd.OutOrStdout(), ts.State().Contexts)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": ts.State().Contexts})
		},
	}
	return cmd
}

func newContextsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <context-id>",
		Short: "Delete a context (its next actions are detached and completed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := ts.State().FindContext(args[0]); !ok {
				return writeErr(cmd, errNotFound("context", args[0]))
			}
			ts.DeleteContext(cmd.Context(), args[0])
			if tableOutput(app) {
				fmt.Fprintln(cmd.OutOrStdout(), "deleted")
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}
	return cmd
}
