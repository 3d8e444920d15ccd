// Package batch validates many independent OIFits containers concurrently. Each container is loaded
// and checked by its own goroutine, and a semaphore bounds how many run at once.
package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/docker/docker/pkg/locker"
	"github.com/go-sif/oifits"
	"github.com/go-sif/oifits/config"
	"github.com/go-sif/oifits/datasource/jsonfile"
	"github.com/go-sif/oifits/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Result is the outcome of validating one source
type Result struct {
	Source      string
	Violations  []oifits.Violation
	Fingerprint uint64
	// LoadErr is set when the source could not be fully loaded. Violations
	// still cover the tables which were loaded.
	LoadErr error
}

// HasSevere returns true iff loading failed or a severe violation was found
func (r Result) HasSevere() bool {
	if r.LoadErr != nil {
		return true
	}
	for _, v := range r.Violations {
		if v.Severity == oifits.SeveritySevere {
			return true
		}
	}
	return false
}

// Validator runs validation passes with a shared configuration
type Validator struct {
	conf  *config.Config
	log   *slog.Logger
	locks *locker.Locker // keyed by container ID

	statsLock sync.Mutex
	stats     *RunStatistics
}

// NewValidator is a factory for Validators. A nil conf means config.Default().
func NewValidator(conf *config.Config, log *slog.Logger) *Validator {
	if conf == nil {
		conf = config.Default()
	}
	if log == nil {
		log = logging.Default()
	}
	return &Validator{conf: conf, log: log, locks: locker.New(), stats: &RunStatistics{}}
}

// Stats returns the statistics of the most recent validation pass
func (v *Validator) Stats() *RunStatistics {
	v.statsLock.Lock()
	defer v.statsLock.Unlock()
	return v.stats
}

func (v *Validator) parallelism() int64 {
	if v.conf.Parallelism < 1 {
		return 1
	}
	return int64(v.conf.Parallelism)
}

// CheckFiles loads and validates JSON files. Results are returned in the order of paths.
// The error is only set when ctx was cancelled before every file was checked.
func (v *Validator) CheckFiles(ctx context.Context, paths []string) ([]Result, error) {
	return v.run(ctx, len(paths), func(i int) Result {
		c, err := jsonfile.LoadFile(paths[i], oifits.WithLogger(v.log))
		if c == nil {
			return Result{Source: paths[i], LoadErr: err}
		}
		res := v.check(paths[i], c)
		res.LoadErr = err
		return res
	})
}

// CheckContainers validates containers which are not used by anything else while the call runs.
// A container listed more than once is checked by one goroutine at a time.
func (v *Validator) CheckContainers(ctx context.Context, containers []*oifits.Container) ([]Result, error) {
	return v.run(ctx, len(containers), func(i int) Result {
		id := containers[i].ID().String()
		v.locks.Lock(id)
		defer v.locks.Unlock(id)
		return v.check(id, containers[i])
	})
}

func (v *Validator) check(source string, c *oifits.Container) Result {
	checker := oifits.NewChecker(oifits.WithCheckerLogger(v.log), oifits.WithConfig(v.conf.Checker))
	c.Check(checker)
	v.log.Info("checked", "source", source, "violations", len(checker.Violations()),
		"severe", checker.Count(oifits.SeveritySevere))
	return Result{Source: source, Violations: checker.Violations(), Fingerprint: c.Fingerprint()}
}

func (v *Validator) run(ctx context.Context, n int, fn func(i int) Result) ([]Result, error) {
	results := make([]Result, n)
	stats := &RunStatistics{}
	stats.Start()
	defer stats.Finish()
	v.statsLock.Lock()
	v.stats = stats
	v.statsLock.Unlock()
	limit := semaphore.NewWeighted(v.parallelism())
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		if err := limit.Acquire(gctx, 1); err != nil {
			break
		}
		i := i
		g.Go(func() error {
			defer limit.Release(1)
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			results[i] = fn(i)
			stats.EndCheck(start, results[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
