package bench

import (
	"fmt"
	"time"
)

// Result is the record of one completed benchmark run
type Result struct {
	RunID         string
	StartedAt     time.Time
	Digits        int
	RepsPerThread int
	Workers       int
	Mode          Mode
	TotalTasks    int
	Elapsed       time.Duration
	TotalTimeMs   float64
	CalcsPerSec   float64
}

// NewResult derives the timing figures from the elapsed duration of the
// timed region. A zero duration is clamped to 1ns so throughput stays finite.
func NewResult(p Params, elapsed time.Duration) Result {
	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}
	total := p.TotalTasks()
	return Result{
		Digits:        p.Digits,
		RepsPerThread: p.RepsPerThread,
		Workers:       p.Workers,
		TotalTasks:    total,
		Elapsed:       elapsed,
		TotalTimeMs:   elapsed.Seconds() * 1000,
		CalcsPerSec:   float64(total) / elapsed.Seconds(),
	}
}

// Line renders the single report line
func (r Result) Line() string {
	return fmt.Sprintf("Test:Pi, Digits:%d, RepsPerThread:%d, Threads:%d, TotalTime(ms):%.2f, CalcPerSec:%.2f",
		r.Digits, r.RepsPerThread, r.Workers, r.TotalTimeMs, r.CalcsPerSec)
}
