package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/somnus/internal/cli/formatter"
	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/generation"
	"github.com/spf13/cobra"
)

func newMonthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Month-level views of the diary",
	}
	cmd.AddCommand(
		newMonthSummaryCmd(app),
		newMonthSeedCmd(app),
	)
	return cmd
}

func newMonthSummaryCmd(app *App) *cobra.Command {
	var month domain.Month

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show sleep totals and events for every day of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := app.Diary.MonthSummary(context.Background(), app.Username, month)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMonthSummary(month, days))
			return nil
		},
	}

	addMonthFlag(cmd.Flags(), app, &month)

	return cmd
}

func newMonthSeedCmd(app *App) *cobra.Command {
	var (
		month domain.Month
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a month with generated sample nights, replacing existing entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs := generation.SampleMonth(month, seed)
			n, err := app.Diary.ImportDays(context.Background(), app.Username, logs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d sample days for %s\n", formatter.StyleGood.Render("✔ Seeded"), n, month)
			return nil
		},
	}

	addMonthFlag(cmd.Flags(), app, &month)
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")

	return cmd
}
