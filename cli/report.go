package cli

// This file contains report emission: writing the rendered report file
// and printing the bounded top-N view to the console.

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/slowgo/slowgo/model"
	"github.com/slowgo/slowgo/report"
	"github.com/slowgo/slowgo/stats"
)

func (a *App) emitReport(ctx *cli.Context, history model.History) error {
	aggregates, err := stats.Summarize(history)
	if err != nil {
		return err
	}

	rep := report.Render(aggregates, report.SampleCount(history))

	reportFile := ctx.String("report-file")
	if err := os.WriteFile(reportFile, []byte(rep.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Debug().
		Str("path", reportFile).
		Int("tests", len(rep.Lines)).
		Msg("Report written")

	a.printTop(rep, ctx.Int("count"))
	return nil
}

// printTop writes the title and the first n report lines to stdout.
// Styling applies to the console only; the report file stays plain.
func (a *App) printTop(rep report.Report, n int) {
	title := color.New(color.FgYellow, color.Bold)
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		title.DisableColor()
	}

	fmt.Println()
	title.Println(rep.Title)
	for _, line := range rep.TopN(n) {
		fmt.Println(line)
	}
}
