package perf

import (
	"time"
)

// StopWatch accumulates durations of timed calls.
type StopWatch struct {
	Count int
	Total time.Duration
}

type Timeable func()

func (t *StopWatch) TimeIt(fn Timeable) (duration time.Duration) {
	start := time.Now()
	t.Count++
	defer func() {
		duration = time.Since(start)
		t.Total += duration
	}()

	fn()
	return
}

// Rate returns items per second over the total duration.
func (t StopWatch) Rate(items int) float64 {
	if t.Total <= 0 {
		return 0
	}
	return float64(items) / t.Total.Seconds()
}
