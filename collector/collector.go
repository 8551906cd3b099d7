package collector

// This file contains the run collector: it turns a `go test -json`
// event stream into the per-test timing record for one suite run.

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"

	"github.com/slowgo/slowgo/model"
)

// event is one test2json record, reduced to the fields the collector
// needs.
type event struct {
	Action  string  `json:"Action"`
	Package string  `json:"Package"`
	Test    string  `json:"Test"`
	Elapsed float64 `json:"Elapsed"`
	Output  string  `json:"Output"`
}

// Collector builds RunRecords from test2json streams.
type Collector struct {
	logger zerolog.Logger
	// Echo receives the raw test output lines so the run stays
	// observable while timings are collected. Nil suppresses echoing.
	Echo io.Writer
}

// New creates a collector that echoes test output to stdout.
func New(logger zerolog.Logger) *Collector {
	return &Collector{logger: logger, Echo: os.Stdout}
}

// Parse consumes a test2json event stream and returns the elapsed
// seconds of every test that reached a terminal state. Identifiers are
// "package.Test"; a duplicate identifier within one stream overwrites
// the earlier timing.
func (c *Collector) Parse(r io.Reader) (model.RunRecord, error) {
	run := model.RunRecord{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var ev event
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, fmt.Errorf("invalid test2json event: %w", err)
		}

		if ev.Action == "output" {
			if c.Echo != nil {
				io.WriteString(c.Echo, ev.Output)
			}
			continue
		}

		// Events without a Test field describe the package, not a test.
		if ev.Test == "" {
			continue
		}
		switch ev.Action {
		case "pass", "fail", "skip":
			run[identifier(ev.Package, ev.Test)] = ev.Elapsed
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read test2json stream: %w", err)
	}

	return run, nil
}

func identifier(pkg, test string) string {
	if pkg == "" {
		return test
	}
	return pkg + "." + test
}

// Run executes `go test -json` with the given arguments and collects
// timings from its output. Test failures are expected non-zero exit
// codes; a failing suite still contributes its timings.
func (c *Collector) Run(args []string) (model.RunRecord, error) {
	cmdArgs := append([]string{"test", "-json"}, args...)
	cmd := exec.Command("go", cmdArgs...)
	cmd.Stderr = os.Stderr

	c.logger.Info().
		Str("command", shellescape.QuoteCommand(append([]string{"go"}, cmdArgs...))).
		Msg("Running test suite")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open test output pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start test suite: %w", err)
	}

	run, parseErr := c.Parse(stdout)
	if parseErr != nil {
		// Drain the pipe so Wait cannot block on a full buffer.
		io.Copy(io.Discard, stdout)
	}
	waitErr := cmd.Wait()

	if parseErr != nil {
		return nil, parseErr
	}
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			c.logger.Info().
				Int("exit_code", exitErr.ExitCode()).
				Msg("Tests completed with failures")
			return run, nil
		}
		return nil, fmt.Errorf("failed to execute test suite: %w", waitErr)
	}

	c.logger.Info().Int("tests", len(run)).Msg("Tests completed successfully")
	return run, nil
}
