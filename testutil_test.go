package wfqsim

// sliceArrivalSource is a trivial [ArrivalSource] backed by a slice, used
// throughout this package's tests. Production code uses the trace parser in
// internal/trace instead.
type sliceArrivalSource struct {
	events []ArrivalEvent
	pos    int
}

var _ ArrivalSource = (*sliceArrivalSource)(nil)

func newSliceArrivalSource(events ...ArrivalEvent) *sliceArrivalSource {
	return &sliceArrivalSource{events: events}
}

func (s *sliceArrivalSource) Next() (ArrivalEvent, bool) {
	if s.pos >= len(s.events) {
		return ArrivalEvent{}, false
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, true
}

// collectSink is a [DepartureSink] that accumulates every emitted event.
type collectSink struct {
	events []DepartureEvent
}

var _ DepartureSink = (*collectSink)(nil)

func (c *collectSink) Emit(event DepartureEvent) {
	c.events = append(c.events, event)
}

func weightPtr(w float64) *float64 {
	return &w
}
