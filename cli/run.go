package cli

// This file contains the record-a-run pipeline: collect one run's
// timings, merge them into the persisted history, save, and emit the
// report.

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/slowgo/slowgo/collector"
	"github.com/slowgo/slowgo/model"
	"github.com/slowgo/slowgo/store"
)

func (a *App) run(ctx *cli.Context) error {
	col := collector.New(a.logger)
	run, err := col.Run(ctx.Args().Slice())
	if err != nil {
		return err
	}
	return a.record(ctx, run)
}

func (a *App) ingest(ctx *cli.Context) error {
	var input io.Reader = os.Stdin
	if path := ctx.Args().First(); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open test output: %w", err)
		}
		defer f.Close()
		input = f
	}

	col := collector.New(a.logger)
	// The run already happened, don't replay its output.
	col.Echo = nil
	run, err := col.Parse(input)
	if err != nil {
		return err
	}
	return a.record(ctx, run)
}

// record runs one load → merge → save → report cycle against the
// configured store. No state is carried between cycles beyond the
// store file itself.
func (a *App) record(ctx *cli.Context, run model.RunRecord) error {
	if len(run) == 0 {
		a.logger.Warn().Msg("No test timings collected, history unchanged")
		return nil
	}

	st := store.New(a.logger, ctx.String("runs-file"))

	history, err := st.Load()
	if err != nil {
		return err
	}
	history = store.Merge(history, run)
	if err := st.Save(history); err != nil {
		return err
	}

	a.logger.Info().
		Int("tests", len(run)).
		Str("store", st.Path()).
		Msg("Run recorded")

	return a.emitReport(ctx, history)
}

func (a *App) report(ctx *cli.Context) error {
	st := store.New(a.logger, ctx.String("runs-file"))
	history, err := st.Load()
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("No test runs recorded yet")
		return nil
	}
	return a.emitReport(ctx, history)
}

func (a *App) reset(ctx *cli.Context) error {
	st := store.New(a.logger, ctx.String("runs-file"))
	if err := st.Reset(); err != nil {
		return err
	}
	a.logger.Info().Str("path", st.Path()).Msg("Statistics store reset")
	return nil
}
