package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "slowgo"

// DefaultCount is the number of top report lines shown on the console.
const DefaultCount = 15

// Default store and report locations, overridable by flag or
// environment.
var (
	DefaultRunsFile   = filepath.Join(os.TempDir(), "slowgo_runs.yaml")
	DefaultReportFile = filepath.Join(os.TempDir(), "slowgo_report.txt")
)

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Track test durations across runs and report the slowest tests",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
				&cli.StringFlag{
					Name:    "runs-file",
					Usage:   "Path to the statistics store holding timings from previous runs",
					Value:   DefaultRunsFile,
					EnvVars: []string{"SLOWGO_RUNS_FILE"},
				},
				&cli.StringFlag{
					Name:    "report-file",
					Usage:   "Path the rendered report is written to",
					Value:   DefaultReportFile,
					EnvVars: []string{"SLOWGO_REPORT_FILE"},
				},
				&cli.IntFlag{
					Name:    "count",
					Aliases: []string{"n"},
					Usage:   "Number of top report lines shown on the console",
					Value:   DefaultCount,
					EnvVars: []string{"SLOWGO_COUNT"},
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Run the test suite via 'go test -json' and record its timings",
		ArgsUsage: "[go test arguments]",
		Action:    app.run,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "ingest",
		Usage:     "Record timings from a captured 'go test -json' stream (file or stdin)",
		ArgsUsage: "[FILE]",
		Action:    app.ingest,
		Description: `Record timings from a 'go test -json' stream that was captured
elsewhere, then emit the report.

Examples:
  go test -json ./... | slowgo ingest     # read from stdin
  slowgo ingest results.json              # read from a file`,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "report",
		Usage:  "Render the report from the current statistics store without recording a run",
		Action: app.report,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "reset",
		Usage:  "Discard all recorded history, starting statistics from an empty state",
		Action: app.reset,
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}
