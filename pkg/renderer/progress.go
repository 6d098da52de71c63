package renderer

import (
	"context"
	"sync/atomic"
	"time"
)

// Progress counts completed rows. It is the only state shared between
// workers and is safe to read from any goroutine while a render runs.
type Progress struct {
	completed atomic.Int64
	total     atomic.Int64
}

// NewProgress creates a counter expecting total rows
func NewProgress(total int) *Progress {
	p := &Progress{}
	p.total.Store(int64(total))
	return p
}

func (p *Progress) rowDone() {
	p.completed.Add(1)
}

func (p *Progress) reset(total int) {
	p.completed.Store(0)
	p.total.Store(int64(total))
}

// Completed returns the number of rows finished so far
func (p *Progress) Completed() int {
	return int(p.completed.Load())
}

// Total returns the number of rows in the frame
func (p *Progress) Total() int {
	return int(p.total.Load())
}

// Fraction returns completed / total in [0, 1]
func (p *Progress) Fraction() float64 {
	total := p.total.Load()
	if total <= 0 {
		return 0
	}
	return float64(p.completed.Load()) / float64(total)
}

// Report calls fn with the current fraction every interval until ctx is
// done, then once more with the final value. It blocks; run it in its own
// goroutine.
func (p *Progress) Report(ctx context.Context, interval time.Duration, fn func(fraction float64)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fn(p.Fraction())
			return
		case <-ticker.C:
			fn(p.Fraction())
		}
	}
}
