package batch

import (
	"sync"
	"time"
)

const statisticRollingWindows = 5

// RunStatistics contains statistics about a running validation pass. It is safe for concurrent use.
type RunStatistics struct {
	lock                    sync.Mutex
	started                 bool
	finished                bool
	startTime               time.Time
	totalRuntime            time.Duration
	sourcesChecked          int64
	sourcesFailed           int64
	violations              int64
	recentCheckRuntimes     []time.Duration // for rolling average of recent check times
	recentCheckRuntimesHead int
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.recentCheckRuntimes = make([]time.Duration, statisticRollingWindows)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.totalRuntime = time.Since(rs.startTime)
	rs.finished = true
}

// EndCheck tracks the end of the validation of a source which started at start
func (rs *RunStatistics) EndCheck(start time.Time, res Result) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.recentCheckRuntimes[rs.recentCheckRuntimesHead] = time.Since(start)
	rs.recentCheckRuntimesHead = (rs.recentCheckRuntimesHead + 1) % len(rs.recentCheckRuntimes)
	rs.sourcesChecked++
	if res.HasSevere() {
		rs.sourcesFailed++
	}
	rs.violations += int64(len(res.Violations))
}

// GetStartTime returns the start time of the validation pass
func (rs *RunStatistics) GetStartTime() time.Time {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.startTime
}

// GetRuntime returns the running time of the validation pass
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumSourcesChecked returns the number of sources which have been checked so far
func (rs *RunStatistics) GetNumSourcesChecked() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.sourcesChecked
}

// GetNumSourcesFailed returns the number of checked sources which failed to load or hold a severe violation
func (rs *RunStatistics) GetNumSourcesFailed() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.sourcesFailed
}

// GetNumViolations returns the number of violations found so far
func (rs *RunStatistics) GetNumViolations() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.violations
}

// GetCurrentCheckTime returns a rolling average of the time spent validating one source
func (rs *RunStatistics) GetCurrentCheckTime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	var total time.Duration
	n := 0
	for _, d := range rs.recentCheckRuntimes {
		if d > 0 {
			total += d
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / time.Duration(n)
}
