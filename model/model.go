package model

// RunRecord maps a test identifier to its wall-clock elapsed time in
// seconds for one completed suite execution. A duplicate identifier
// within one run overwrites the earlier timing (last write wins).
type RunRecord map[string]float64

// History is the cumulative, persisted record of timings across all
// runs to date. Each identifier maps to its samples in chronological
// order; sequences are append-only and never empty once the identifier
// has appeared in a completed run.
type History map[string][]float64

// Aggregate holds derived summary statistics for one test's history.
// It is recomputed for every report and never persisted.
type Aggregate struct {
	// Test identifier, stable across runs
	ID string
	// Number of recorded samples
	Count int
	// Mean elapsed seconds, truncated to at most 9 fractional digits
	Mean float64
	// Fastest recorded sample
	Min float64
	// Slowest recorded sample
	Max float64
}
