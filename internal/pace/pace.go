// Package pace replays a finished schedule of departures against a real
// wall clock, for callers that want to observe output at (scaled)
// real-time rather than receiving every departure immediately. The
// ticker-driven deadline queue is adapted from this lineage's own link
// forwarding loop, which paces frames in flight against one-way delay
// deadlines the same way.
package pace

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bassosimone/wfqsim"
)

// defaultTickerInterval mirrors the conservative idle-ticker interval
// used by the link forwarding loop this package is adapted from.
const defaultTickerInterval = 100 * time.Millisecond

// Pacer replays departures produced by the scheduler core at a real-time
// cadence derived from their StartTime, optionally capped by a token
// bucket rate limiter. The zero value is invalid; use [NewPacer].
type Pacer struct {
	scale   float64
	limiter *rate.Limiter
}

// NewPacer creates a [Pacer]. scale converts one unit of simulated
// StartTime into a time.Duration of real time to wait (e.g. if StartTime
// is in nanoseconds and departures should replay 1:1, scale is 1). A nil
// limiter disables rate limiting.
func NewPacer(scale float64, limiter *rate.Limiter) *Pacer {
	if scale <= 0 {
		scale = 1
	}
	return &Pacer{scale: scale, limiter: limiter}
}

// Run reads departures from in (expected to arrive in nondecreasing
// StartTime order, as the scheduler core already guarantees) and forwards
// each to sink at a real-time pace. The first departure is emitted as
// soon as it is available; subsequent departures wait for their
// scaled-StartTime delta relative to the first, measured against a
// real-time origin taken when the first departure is received.
//
// Run returns when in is closed or ctx is canceled, whichever comes
// first. A canceled context yields ctx.Err().
func (p *Pacer) Run(ctx context.Context, in <-chan wfqsim.DepartureEvent, sink wfqsim.DepartureSink) error {
	var (
		origin     time.Time
		baseStart  int64
		haveOrigin bool
		pending    []wfqsim.DepartureEvent
	)
	ticker := time.NewTicker(defaultTickerInterval)
	defer ticker.Stop()

	drain := func() error {
		for len(pending) > 0 {
			ev := pending[0]
			deadline := origin.Add(p.scaledDelta(ev.StartTime, baseStart))
			d := time.Until(deadline)
			if d > 0 {
				ticker.Reset(d)
				return nil
			}
			if p.limiter != nil {
				if err := p.limiter.Wait(ctx); err != nil {
					return err
				}
			}
			pending = pending[1:]
			sink.Emit(ev)
		}
		ticker.Reset(defaultTickerInterval)
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-in:
			if !ok {
				if err := drain(); err != nil || len(pending) == 0 {
					return err
				}
				in = nil // keep waiting on the ticker for departures not yet due
				continue
			}
			if !haveOrigin {
				origin = time.Now()
				baseStart = ev.StartTime
				haveOrigin = true
			}
			pending = append(pending, ev)
			if err := drain(); err != nil {
				return err
			}
		case <-ticker.C:
			if err := drain(); err != nil {
				return err
			}
			if in == nil && len(pending) == 0 {
				return nil
			}
		}
	}
}

// scaledDelta converts a simulated-time delta into a real-time duration.
func (p *Pacer) scaledDelta(startTime, base int64) time.Duration {
	delta := float64(startTime-base) * p.scale
	if delta < 0 {
		delta = 0
	}
	return time.Duration(delta)
}
