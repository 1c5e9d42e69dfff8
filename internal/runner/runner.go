// Package runner executes knapsack solvers one after another over the same
// instance and measures how long each one takes.
package runner

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/knapsack/internal/knapsack"
)

// Result is the outcome of one timed solver run.
type Result struct {
	Algorithm knapsack.Algorithm
	Label     string
	Solution  knapsack.Solution
	Elapsed   time.Duration
}

// Recorder receives a notification for every finished solver run.
type Recorder interface {
	ObserveSolve(algorithm string, elapsed time.Duration, totalSize int)
}

// Runner runs solvers sequentially. It holds no per-instance state, so a
// single Runner can be reused.
type Runner struct {
	clock          func() time.Time
	logger         *zap.Logger
	recorder       Recorder
	backtrackLimit int
	capacityLimit  int
	tableLimit     int
}

// Option configures Runner behaviour.
type Option func(*Runner)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithLogger attaches a logger that reports each finished run.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(recorder Recorder) Option {
	return func(r *Runner) {
		r.recorder = recorder
	}
}

// WithBacktrackLimit refuses backtracking runs over more than n items.
// Zero disables the limit.
func WithBacktrackLimit(n int) Option {
	return func(r *Runner) {
		r.backtrackLimit = n
	}
}

// WithCapacityLimit refuses any run whose capacity exceeds k.
// Zero disables the limit.
func WithCapacityLimit(k int) Option {
	return func(r *Runner) {
		r.capacityLimit = k
	}
}

// WithTableLimit refuses dynamic programming runs whose tables would hold
// more than cells entries, counted as (n+1)*(k+1). Zero disables the limit.
func WithTableLimit(cells int) Option {
	return func(r *Runner) {
		r.tableLimit = cells
	}
}

// New constructs a Runner using the wall clock and a no-op logger.
func New(opts ...Option) *Runner {
	r := &Runner{
		clock:  time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Check reports whether the instance is within the configured limits for
// every requested algorithm.
func (r *Runner) Check(itemCount, capacity int, algorithms ...knapsack.Algorithm) error {
	if r.capacityLimit > 0 && capacity > r.capacityLimit {
		return fmt.Errorf("%w: %d > %d", knapsack.ErrCapacityTooLarge, capacity, r.capacityLimit)
	}
	for _, a := range algorithms {
		switch a {
		case knapsack.Backtracking:
			if r.backtrackLimit > 0 && itemCount > r.backtrackLimit {
				return fmt.Errorf("%w: %d > %d", knapsack.ErrTooManyItems, itemCount, r.backtrackLimit)
			}
		case knapsack.DynamicProgramming:
			if r.exceedsTableLimit(itemCount, capacity) {
				return fmt.Errorf("%w: %d items x capacity %d exceeds %d table cells",
					knapsack.ErrCapacityTooLarge, itemCount, capacity, r.tableLimit)
			}
		}
	}
	return nil
}

// exceedsTableLimit reports whether (itemCount+1)*(capacity+1) > tableLimit
// without overflowing. Instances the solver answers without tables pass.
func (r *Runner) exceedsTableLimit(itemCount, capacity int) bool {
	if r.tableLimit <= 0 || itemCount <= 0 || capacity <= 0 {
		return false
	}
	return capacity+1 > r.tableLimit/(itemCount+1)
}

// Run solves the instance with each algorithm in turn. When no algorithm is
// given every supported algorithm runs. Limits are checked before any
// solver starts.
func (r *Runner) Run(items []knapsack.Item, capacity int, algorithms ...knapsack.Algorithm) ([]Result, error) {
	if len(algorithms) == 0 {
		algorithms = knapsack.Algorithms()
	}
	if err := r.Check(len(items), capacity, algorithms...); err != nil {
		return nil, err
	}

	solvers := make([]knapsack.Solver, len(algorithms))
	for i, a := range algorithms {
		solver, err := knapsack.NewSolver(a)
		if err != nil {
			return nil, err
		}
		solvers[i] = solver
	}

	results := make([]Result, 0, len(algorithms))
	for i, solver := range solvers {
		algorithm := algorithms[i]

		start := r.clock()
		solution, err := solver.Solve(items, capacity)
		stop := r.clock()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", algorithm, err)
		}

		elapsed := stop.Sub(start)
		r.logger.Debug("solver finished",
			zap.String("algorithm", string(algorithm)),
			zap.Int("items", len(items)),
			zap.Int("capacity", capacity),
			zap.Int("total_size", solution.TotalSize()),
			zap.Duration("elapsed", elapsed),
		)
		if r.recorder != nil {
			r.recorder.ObserveSolve(string(algorithm), elapsed, solution.TotalSize())
		}

		results = append(results, Result{
			Algorithm: algorithm,
			Label:     algorithm.Label(),
			Solution:  solution,
			Elapsed:   elapsed,
		})
	}

	return results, nil
}
