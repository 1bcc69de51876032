package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/somnus/internal/cli/formatter"
	"github.com/alexanderramin/somnus/internal/repository"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the diary owner and report header",
	}
	cmd.AddCommand(
		newUserInitCmd(app),
		newUserShowCmd(app),
		newUserSetHeaderCmd(app),
	)
	return cmd
}

func newUserInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the diary owner if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Profiles.EnsureUser(context.Background(), app.Username)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUser(u))
			return nil
		},
	}
}

func newUserShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the diary owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Profiles.Get(context.Background(), app.Username)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("no diary for %q yet; run: somnus user init", app.Username)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUser(u))
			return nil
		},
	}
}

func newUserSetHeaderCmd(app *App) *cobra.Command {
	var name, headerID string

	cmd := &cobra.Command{
		Use:   "set-header",
		Short: "Set the name and ID printed on reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var namePtr, idPtr *string
			if cmd.Flags().Changed("name") {
				namePtr = &name
			}
			if cmd.Flags().Changed("id") {
				idPtr = &headerID
			}
			if namePtr == nil && idPtr == nil {
				return fmt.Errorf("nothing to update: pass --name and/or --id")
			}

			u, err := app.Profiles.UpdateHeader(context.Background(), app.Username, namePtr, idPtr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUser(u))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name printed in the report header")
	cmd.Flags().StringVar(&headerID, "id", "", "ID printed in the report header")

	return cmd
}
