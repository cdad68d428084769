package wfqsim

//
// Per-flow state and the flow table
//

// defaultWeight is the weight a flow starts with until an arrival carries
// an explicit weight.
const defaultWeight = 1.0

// packet is an enqueued arrival, augmented with the virtual-time bookkeeping
// assigned once at enqueue time (§3, §4.4). Fields here are immutable after
// [Scheduler.enqueue] sets them.
type packet struct {
	arrival           ArrivalEvent
	weightUsed        float64
	hasExplicitWeight bool
	virtualStart      float64
	virtualFinish     float64
	sequenceID        uint64
}

// flow is the per-flow scheduling state (§3 Flow). The zero value is
// invalid; flows are created by [flowTable.lookupOrCreate].
type flow struct {
	key         FlowKey
	priority    uint32
	weight      float64
	virtualTime float64
	queue       []*packet

	// heapIndex mirrors the flow's position in the scheduler's [vftHeap], or
	// -1 when the flow is not currently scheduled (queue empty, or its
	// head-of-line packet is being transmitted). It is
	// maintained exclusively by [vftHeap]'s container/heap callbacks.
	heapIndex int
}

// newFlow creates a [flow] for key with the default weight, not yet active.
func newFlow(key FlowKey, priority uint32) *flow {
	return &flow{
		key:         key,
		priority:    priority,
		weight:      defaultWeight,
		virtualTime: 0,
		queue:       nil,
		heapIndex:   -1,
	}
}

// active reports whether this flow currently has an entry in the heap.
func (f *flow) active() bool {
	return f.heapIndex >= 0
}

// head returns the flow's head-of-line packet. The caller MUST ensure the
// queue is non-empty.
func (f *flow) head() *packet {
	if len(f.queue) == 0 {
		invariantf("head called on flow %+v with an empty queue", f.key)
	}
	return f.queue[0]
}

// popHead removes and returns the head-of-line packet.
func (f *flow) popHead() *packet {
	p := f.head()
	f.queue = f.queue[1:]
	return p
}

// flowTable maps a [FlowKey] to its [flow], assigning creation-order
// priorities as new keys are first seen (§4.2).
type flowTable struct {
	byKey    map[FlowKey]*flow
	nextPrio uint32
}

func newFlowTable() *flowTable {
	return &flowTable{byKey: make(map[FlowKey]*flow)}
}

// lookupOrCreate returns the existing flow for key, or creates and registers
// a new one with the next monotonically increasing priority.
func (t *flowTable) lookupOrCreate(key FlowKey) *flow {
	if f, ok := t.byKey[key]; ok {
		return f
	}
	f := newFlow(key, t.nextPrio)
	t.nextPrio++
	t.byKey[key] = f
	return f
}
