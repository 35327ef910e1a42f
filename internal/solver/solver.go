// Package solver ties input loading, parsing and resolution together and is
// what the command line drives.
package solver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/almanac/core/almanac"
	"github.com/FocuswithJustin/almanac/core/cache"
	"github.com/FocuswithJustin/almanac/core/errors"
	"github.com/FocuswithJustin/almanac/core/interval"
	"github.com/FocuswithJustin/almanac/core/resolver"
	"github.com/FocuswithJustin/almanac/internal/input"
	"github.com/FocuswithJustin/almanac/internal/logging"
)

// Strategy selects how range mode is resolved.
type Strategy string

const (
	// StrategySplit resolves whole intervals by splitting them at rule boundaries.
	StrategySplit Strategy = "split"
	// StrategyEnumerate resolves every integer one at a time. Only practical
	// for small inputs.
	StrategyEnumerate Strategy = "enumerate"
)

// ParseStrategy maps "split" or "enumerate" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategySplit, StrategyEnumerate:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q (want split or enumerate)", s)
}

// Config controls a Solver.
type Config struct {
	Mode     almanac.Mode
	Strategy Strategy
	Workers  int // 0 means runtime.NumCPU()
}

// Result is the outcome of solving one input file.
type Result struct {
	Path    string
	Answer  int64
	Digest  string
	Cached  bool
	RunID   string
	Elapsed time.Duration
}

// Solver resolves almanac inputs. It is safe for concurrent use.
type Solver struct {
	cfg     Config
	answers *cache.AnswerCache
}

// New creates a Solver.
func New(cfg Config) *Solver {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategySplit
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Solver{
		cfg:     cfg,
		answers: cache.NewAnswerCache(cache.DefaultConfig()),
	}
}

// Config returns the effective configuration.
func (s *Solver) Config() Config {
	return s.cfg
}

// CacheStats reports how often SolveFile reused an earlier answer.
func (s *Solver) CacheStats() cache.Stats {
	return s.answers.Stats()
}

// SolveFile loads path and returns its answer. Inputs whose decoded text was
// already solved by this Solver are answered from the cache.
func (s *Solver) SolveFile(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)

	res, err := s.solveFile(ctx, path)
	if err != nil {
		logging.SolveFailed(ctx, path, err, "kind", failureKind(err))
		return Result{}, errors.Wrapf(err, "%s", path)
	}
	res.RunID = runID
	res.Elapsed = time.Since(start)
	logging.SolveComplete(ctx, path, s.cfg.Mode.String(), string(s.cfg.Strategy), res.Answer, res.Cached, res.Elapsed,
		"digest", res.Digest, "cache_hits", s.CacheStats().Hits)
	return res, nil
}

// failureKind names the class of err for the solve_failed log record.
func failureKind(err error) string {
	var ioErr *errors.IOError
	switch {
	case errors.Is(err, errors.ErrInvalidFormat):
		return "format"
	case errors.Is(err, errors.ErrInvalidInput):
		return "validation"
	case errors.As(err, &ioErr):
		return "io"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "other"
}

func (s *Solver) solveFile(ctx context.Context, path string) (Result, error) {
	doc, err := input.Load(path)
	if err != nil {
		return Result{}, err
	}

	key := cache.AnswerKey{Digest: doc.Digest, Mode: s.cfg.Mode.String(), Strategy: string(s.cfg.Strategy)}
	if answer, ok := s.answers.Get(key); ok {
		return Result{Path: path, Answer: answer, Digest: doc.Digest, Cached: true}, nil
	}

	answer, err := s.Solve(ctx, doc.Lines)
	if err != nil {
		return Result{}, err
	}
	s.answers.Put(key, answer)
	return Result{Path: path, Answer: answer, Digest: doc.Digest}, nil
}

// Solve parses lines and returns the lowest resolved value.
func (s *Solver) Solve(ctx context.Context, lines []string) (int64, error) {
	a, err := almanac.Parse(lines, s.cfg.Mode)
	if err != nil {
		return 0, err
	}
	return s.Resolve(ctx, a)
}

// Resolve runs every initial value of a through its pipeline. With a single
// worker the values are folded in order on the calling goroutine.
func (s *Solver) Resolve(ctx context.Context, a *almanac.Almanac) (int64, error) {
	tables := a.Tables()
	rules := 0
	for _, t := range tables {
		rules += t.Len()
	}
	sequential := s.cfg.Workers == 1

	switch a.Mode() {
	case almanac.ModeIdentifiers:
		seeds := a.Seeds()
		logging.AlmanacParsed(ctx, a.Mode().String(), len(seeds), a.StageNames(), "rules", rules)
		if logging.DebugEnabled(ctx) {
			for _, seed := range seeds {
				logging.SeedPath(ctx, seed, resolver.Path(seed, tables))
			}
		}
		if sequential {
			return resolver.MinIdentifiers(seeds, tables)
		}
		return resolver.ParallelMin(ctx, seeds, s.cfg.Workers, func(id int64) (int64, error) {
			return resolver.Resolve(id, tables), nil
		})

	case almanac.ModeRanges:
		ranges := a.Ranges()
		var values int64
		for _, iv := range ranges {
			values += iv.Len()
		}
		logging.AlmanacParsed(ctx, a.Mode().String(), len(ranges), a.StageNames(),
			"rules", rules, "values", values, "strategy", string(s.cfg.Strategy))

		if sequential {
			if s.cfg.Strategy == StrategyEnumerate {
				return resolver.MinRangesEnumerated(ranges, tables)
			}
			return resolver.MinRanges(ranges, tables)
		}
		each := func(iv interval.Interval) (int64, error) {
			return resolver.MinInterval(iv, tables)
		}
		if s.cfg.Strategy == StrategyEnumerate {
			each = func(iv interval.Interval) (int64, error) {
				return resolver.EnumerateMin(iv, tables)
			}
		}
		return resolver.ParallelMin(ctx, ranges, s.cfg.Workers, each)
	}

	return 0, errors.NewValidationValue("mode", a.Mode().String(), "unsupported")
}
