package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/somnus/internal/cli/formatter"
	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/importer"
	"github.com/alexanderramin/somnus/internal/repository"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Record and inspect single nights",
	}
	cmd.AddCommand(
		newDaySetCmd(app),
		newDayShowCmd(app),
		newDayRmCmd(app),
		newDayImportCmd(app),
	)
	return cmd
}

func newDaySetCmd(app *App) *cobra.Command {
	var (
		segments    []string
		events      []string
		sleepiness  int
		memo        string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "set <YYYY-MM-DD|today|yesterday>",
		Short: "Record a night, replacing any earlier entry for that date",
		Example: `  somnus day set 2026-02-01 --segment in_bed,22:30,07:00 --segment deep,23:00,06:30 \
    --event sleep_med,22:00 --event toilet,02:30 --sleepiness 4 --memo "woke once"
  somnus day set today --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			date, err := parseDateArg(app, args[0])
			if err != nil {
				return err
			}

			l := &domain.SleepLog{Date: date}
			if l.Segments, err = parseSegments(segments); err != nil {
				return err
			}
			if l.Events, err = parseEvents(events); err != nil {
				return err
			}
			if cmd.Flags().Changed("sleepiness") {
				s := sleepiness
				l.Sleepiness = &s
			}
			l.Memo = strings.TrimSpace(memo)

			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				prefill := l
				if !flagsGiven(cmd) {
					if existing, err := app.Diary.GetDay(ctx, app.Username, date); err == nil {
						prefill = existing
					}
				}
				values := dayFormValuesFrom(prefill)
				if err := dayForm(date.Format(domain.DateLayout), &values).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
						return nil
					}
					return err
				}
				if err := values.apply(l); err != nil {
					return err
				}
			}

			if err := app.Diary.SaveDay(ctx, app.Username, l); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d segments, %d events)\n",
				formatter.StyleGood.Render("✔ Saved"), l.DateKey(), len(l.Segments), len(l.Events))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&segments, "segment", nil, "sleep segment kind,HH:MM,HH:MM (repeatable)")
	cmd.Flags().StringArrayVar(&events, "event", nil, "event kind,HH:MM (repeatable)")
	cmd.Flags().IntVar(&sleepiness, "sleepiness", 0, "daytime sleepiness 1-10")
	cmd.Flags().StringVar(&memo, "memo", "", "free-text note")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "fill the entry in a form")

	return cmd
}

// flagsGiven reports whether any entry field was passed on the command line.
func flagsGiven(cmd *cobra.Command) bool {
	for _, name := range []string{"segment", "event", "sleepiness", "memo"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func newDayShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <YYYY-MM-DD|today|yesterday>",
		Short: "Show a recorded night",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(app, args[0])
			if err != nil {
				return err
			}
			l, err := app.Diary.GetDay(context.Background(), app.Username, date)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("no entry for %s", date.Format(domain.DateLayout))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDay(l))
			return nil
		},
	}
}

func newDayRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <YYYY-MM-DD|today|yesterday>",
		Aliases: []string{"delete"},
		Short:   "Delete a recorded night",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(app, args[0])
			if err != nil {
				return err
			}
			err = app.Diary.DeleteDay(context.Background(), app.Username, date)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("no entry for %s", date.Format(domain.DateLayout))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGood.Render("✔ Deleted"), date.Format(domain.DateLayout))
			return nil
		},
	}
}

func newDayImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json|file.yaml>",
		Short: "Import many nights from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			schema, err := importer.LoadImportSchema(args[0])
			if err != nil {
				return err
			}
			if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
				msgs := make([]string, len(errs))
				for i, e := range errs {
					msgs[i] = "  - " + e.Error()
				}
				return fmt.Errorf("%d validation errors in %s:\n%s", len(errs), args[0], strings.Join(msgs, "\n"))
			}
			logs, err := importer.Convert(schema)
			if err != nil {
				return err
			}

			if h := schema.Header; h != nil && (h.DisplayName != nil || h.HeaderID != nil) {
				if _, err := app.Profiles.UpdateHeader(ctx, app.Username, h.DisplayName, h.HeaderID); err != nil {
					return err
				}
			}
			n, err := app.Diary.ImportDays(ctx, app.Username, logs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d days from %s\n", formatter.StyleGood.Render("✔ Imported"), n, args[0])
			return nil
		},
	}
}
