package cli

import (
	"time"

	"github.com/alexanderramin/somnus/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Profiles service.ProfileService
	Diary    service.DiaryService
	Reports  service.ReportService

	// Username is the diary owner commands act on unless --user is given.
	Username string

	// IsInteractive reports whether stdin is a terminal; forms refuse to
	// run without one.
	IsInteractive func() bool

	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "somnus" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "somnus",
		Short:         "Sleep diary recorder and monthly report renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&app.Username, "user", "u", app.Username, "diary owner")

	root.AddCommand(
		newUserCmd(app),
		newDayCmd(app),
		newMonthCmd(app),
		newReportCmd(app),
	)

	return root
}
