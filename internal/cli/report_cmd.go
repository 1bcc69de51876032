package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/somnus/internal/cli/formatter"
	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/report"
	"github.com/spf13/cobra"
)

// stdoutPath selects standard output instead of a file.
const stdoutPath = "-"

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render and export monthly reports",
	}
	cmd.AddCommand(
		newReportGenerateCmd(app),
		newReportCalibrateCmd(app),
		newReportExportCmd(app),
	)
	return cmd
}

func newReportGenerateCmd(app *App) *cobra.Command {
	var (
		month  domain.Month
		output string
		debug  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the monthly sleep chart as PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output
			if path == "" {
				path = fmt.Sprintf("sleep_report_%s.pdf", month)
			}
			var (
				bytes  int
				cached bool
				res    *report.Result
			)
			err := writeOutput(cmd, path, func(w io.Writer) error {
				out, err := app.Reports.Generate(context.Background(), app.Username, month, debug, w)
				if err != nil {
					return err
				}
				bytes, cached, res = out.Bytes, out.Cached, out.Result
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(statusWriter(cmd, path), formatter.FormatRenderResult(displayPath(path), bytes, cached, res))
			return nil
		},
	}

	addMonthFlag(cmd.Flags(), app, &month)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout; default sleep_report_<month>.pdf)`)
	cmd.Flags().BoolVar(&debug, "debug", false, "overlay the calibration grid")

	return cmd
}

func newReportCalibrateCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Render sample data over the debug grid to check the layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var res *report.Result
			cw := &countingWriter{}
			err := writeOutput(cmd, output, func(w io.Writer) error {
				cw.w = w
				var err error
				res, err = app.Reports.Calibrate(context.Background(), cw)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(statusWriter(cmd, output), formatter.FormatRenderResult(displayPath(output), cw.n, false, res))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "calibration_grid.pdf", `output file ("-" for stdout)`)

	return cmd
}

func newReportExportCmd(app *App) *cobra.Command {
	var (
		month  domain.Month
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a month of diary entries as an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output
			if path == "" {
				path = fmt.Sprintf("sleep_diary_%s.xlsx", month)
			}
			cw := &countingWriter{}
			err := writeOutput(cmd, path, func(w io.Writer) error {
				cw.w = w
				return app.Reports.ExportSpreadsheet(context.Background(), app.Username, month, cw)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(statusWriter(cmd, path), formatter.FormatRenderResult(displayPath(path), cw.n, false, nil))
			return nil
		},
	}

	addMonthFlag(cmd.Flags(), app, &month)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout; default sleep_diary_<month>.xlsx)`)

	return cmd
}

// writeOutput runs write against path, or the command's stdout for "-".
// A file that fails part way is removed so no truncated document is left.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) (err error) {
	if path == stdoutPath {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = write(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// statusWriter keeps status lines out of a document streamed to stdout.
func statusWriter(cmd *cobra.Command, path string) io.Writer {
	if path == stdoutPath {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

func displayPath(path string) string {
	if path == stdoutPath {
		return "stdout"
	}
	return path
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
