package wfqsim

import "math"

//
// The scheduler driver (§4.5)
//

// Scheduler is the WFQ scheduling engine. It owns the flow table, the
// virtual-finish-time heap, and the virtual clock exclusively; there is no
// shared mutable state crossing its boundary and no locking is required
// (§5). The zero value is invalid; use [NewScheduler].
type Scheduler struct {
	logger   Logger
	table    *flowTable
	heap     vftHeap
	clock    virtualClock
	realTime int64
	nextSeq  uint64
}

// NewScheduler creates a new, empty [Scheduler]. A nil logger is replaced
// with a [NullLogger].
func NewScheduler(logger Logger) *Scheduler {
	if logger == nil {
		logger = &NullLogger{}
	}
	return &Scheduler{
		logger: logger,
		table:  newFlowTable(),
		heap:   make(vftHeap, 0),
	}
}

// infiniteTime stands in for "no next arrival" when comparing against the
// heap's next possible departure time.
const infiniteTime = int64(math.MaxInt64)

// Run drains source, feeding the scheduler, and emits every resulting
// departure to sink in nondecreasing start-time order, until both the
// source and the heap are exhausted. Run is synchronous: it does not return
// until scheduling is complete.
func (s *Scheduler) Run(source ArrivalSource, sink DepartureSink) {
	s.logger.Debugf("wfqsim: scheduler run starting")
	defer s.logger.Debugf("wfqsim: scheduler run finished")

	nextArrival, hasNext := source.Next()

	for s.heap.len() > 0 || hasNext {
		nextArrivalTime := infiniteTime
		if hasNext {
			nextArrivalTime = nextArrival.ArrivalTime
		}

		if s.heap.len() == 0 || (hasNext && nextArrivalTime <= s.realTime) {
			s.admit(nextArrivalTime, nextArrival)
			nextArrival, hasNext = source.Next()
			continue
		}

		top := s.heap.peek()
		head := top.head()
		start := max64(s.realTime, head.arrival.ArrivalTime)

		if start > s.realTime && hasNext && nextArrivalTime < start {
			// An arrival intervenes before we would even start transmitting.
			s.admit(nextArrivalTime, nextArrival)
			nextArrival, hasNext = source.Next()
			continue
		}

		finishReal := start + head.arrival.Length
		s.heap.pop()
		for hasNext && nextArrival.ArrivalTime < finishReal {
			// WFQ is non-preemptive at the packet level: the packet already
			// being transmitted still completes, but this arrival must be
			// enqueued now so its virtual timing reflects the global
			// virtual time at its true arrival instant.
			s.admit(nextArrival.ArrivalTime, nextArrival)
			nextArrival, hasNext = source.Next()
		}

		s.commitDeparture(sink, top, start, finishReal)
	}
}

// admit advances real and virtual time to t and enqueues ev. t and
// ev.ArrivalTime coincide at every call site.
func (s *Scheduler) admit(t int64, ev ArrivalEvent) {
	s.advanceRealTime(t)
	s.enqueue(ev)
}

// advanceRealTime brings both the real-time cursor and the virtual clock
// current as of t. t must never be smaller than the current real time.
func (s *Scheduler) advanceRealTime(t int64) {
	if t < s.realTime {
		invariantf("real time moved backwards: have=%d want=%d", s.realTime, t)
	}
	s.clock.advanceTo(t)
	s.realTime = t
}

// enqueue implements packet enqueue (§4.4).
func (s *Scheduler) enqueue(ev ArrivalEvent) {
	f := s.table.lookupOrCreate(ev.Key)

	hasExplicitWeight := ev.Weight != nil
	if hasExplicitWeight && *ev.Weight > 0 {
		f.weight = *ev.Weight
	}

	p := &packet{
		arrival:           ev,
		weightUsed:        f.weight,
		hasExplicitWeight: hasExplicitWeight,
		sequenceID:        s.nextSeq,
	}
	s.nextSeq++

	p.virtualStart = math.Max(f.virtualTime, s.clock.time)
	p.virtualFinish = p.virtualStart + float64(ev.Length)/p.weightUsed
	f.virtualTime = p.virtualFinish

	wasEmpty := len(f.queue) == 0
	f.queue = append(f.queue, p)

	if wasEmpty {
		s.clock.addActiveWeight(p.weightUsed)
		s.heap.push(f)
	}
}

// commitDeparture advances time to finishReal, pops the head-of-line packet
// of f (already taken out of the heap when its transmission started),
// emits its departure, and restores the heap and active weight sum
// invariants for f (§4.5 Departure emission).
func (s *Scheduler) commitDeparture(sink DepartureSink, f *flow, start, finishReal int64) {
	s.advanceRealTime(finishReal)

	p := f.popHead()

	sink.Emit(DepartureEvent{
		StartTime:         start,
		Arrival:           p.arrival,
		WeightUsed:        p.weightUsed,
		HasExplicitWeight: p.hasExplicitWeight,
		FlowPriority:      f.priority,
		SequenceID:        p.sequenceID,
	})

	if len(f.queue) > 0 {
		next := f.head()
		s.clock.addActiveWeight(next.weightUsed)
		s.clock.removeActiveWeight(p.weightUsed)
		s.heap.push(f)
	} else {
		s.clock.removeActiveWeight(p.weightUsed)
	}
}

// ActiveFlowCount returns the number of flows currently holding a
// nonempty queue, i.e. the number of flows present in the scheduling
// heap. Intended for observability (metrics, logging), not for use in
// scheduling decisions.
func (s *Scheduler) ActiveFlowCount() int {
	return s.heap.len()
}

// ActiveWeightSum returns the current sum of weights across all active
// flows, the same denominator the virtual clock advances against (§4.3).
func (s *Scheduler) ActiveWeightSum() float64 {
	return s.clock.activeWeightSum
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
