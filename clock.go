package wfqsim

//
// The global virtual clock (§4.3)
//

// virtualClock tracks the global virtual time alongside the real-time
// timestamp it was last brought current to, and the sum of weights of all
// currently backlogged flows (the denominator of the virtual-time
// advancement ratio).
//
// Grounding note: the advance-by-elapsed-over-active-weight technique below
// mirrors the `virtualTime += timeSinceLast * getVirtualTimeRatio()` pattern
// used by Kubernetes API Priority & Fairness's queueSet, adapted here to an
// integer real-time domain and clamped per §4.3 instead of growing without
// bound when nothing is backlogged.
type virtualClock struct {
	time            float64
	lastUpdate      int64
	activeWeightSum float64
}

// advanceTo brings the virtual clock current as of realTime. Calling it
// twice in a row with the same realTime is a no-op (the idempotence
// required by §8), and calling it with a realTime earlier than the last
// update is an invariant violation: real time never moves backwards.
func (c *virtualClock) advanceTo(realTime int64) {
	delta := realTime - c.lastUpdate
	switch {
	case delta < 0:
		invariantf("real time moved backwards: last=%d now=%d", c.lastUpdate, realTime)
	case delta > 0:
		c.time += float64(delta) / c.denominator()
		c.lastUpdate = realTime
	default:
		// no-op: idempotent update
	}
}

// denominator returns the active weight sum clamped to a minimum of 1.0, so
// that an idle link (no backlogged flow) never divides by zero and simply
// freezes virtual time's rate of advancement at 1:1 with real time.
func (c *virtualClock) denominator() float64 {
	if c.activeWeightSum <= 0 {
		return 1.0
	}
	return c.activeWeightSum
}

// addActiveWeight accounts for a flow becoming backlogged.
func (c *virtualClock) addActiveWeight(w float64) {
	c.activeWeightSum += w
}

// removeActiveWeight accounts for a flow leaving the backlogged set, or for
// a departing packet's weight being replaced by its successor's (the caller
// adds the successor's weight separately via addActiveWeight).
func (c *virtualClock) removeActiveWeight(w float64) {
	c.activeWeightSum -= w
	if c.activeWeightSum < -vftEpsilon {
		invariantf("active weight sum went negative: %f", c.activeWeightSum)
	}
	if c.activeWeightSum < 0 {
		c.activeWeightSum = 0
	}
}
