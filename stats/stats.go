package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/slowgo/slowgo/model"
)

// Summarize computes one Aggregate per test in history, ordered by
// identifier (the renderer applies its own order). A history entry
// with zero samples cannot be produced by a correct merge, so hitting
// one is an internal-consistency error, never silently zeroed.
func Summarize(history model.History) ([]model.Aggregate, error) {
	aggregates := make([]model.Aggregate, 0, len(history))
	for id, samples := range history {
		if len(samples) == 0 {
			return nil, fmt.Errorf("history entry %q has no samples", id)
		}

		sum := 0.0
		min := samples[0]
		max := samples[0]
		for _, v := range samples {
			sum += v
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}

		aggregates = append(aggregates, model.Aggregate{
			ID:    id,
			Count: len(samples),
			Mean:  truncate(sum / float64(len(samples))),
			Min:   min,
			Max:   max,
		})
	}

	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].ID < aggregates[j].ID
	})
	return aggregates, nil
}

// truncate cuts a duration down to 9 fractional digits (nanosecond
// resolution) without rounding.
func truncate(seconds float64) float64 {
	return math.Trunc(seconds*1e9) / 1e9
}
