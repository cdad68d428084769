package wfqsim

import "container/heap"

// vftEpsilon is the tolerance used when comparing virtual finish times for
// equality, per the scheduling order defined in §4.1: ties are broken by
// arrival time, then sequence id, then flow priority.
const vftEpsilon = 1e-9

// vftHeap is a min-heap of flows ordered by the virtual finish time of each
// flow's head-of-line packet. At most one entry exists per active flow; the
// entry is kept synchronized with the flow's FIFO head by the scheduler.
//
// Built on [container/heap], the idiomatic standard-library building block
// for a priority queue: Go's ecosystem does not have a de-facto third-party
// heap library the way it does for, say, structured logging or CLI parsing,
// so reaching for container/heap here is the idiomatic choice, not a gap.
type vftHeap []*flow

var _ heap.Interface = (*vftHeap)(nil)

// vftLess reports whether the head-of-line packet of a precedes that of b under
// the (virtual_finish, arrival_time, sequence_id, flow_priority) tuple order.
func vftLess(a, b *flow) bool {
	pa, pb := a.head(), b.head()
	da := pa.virtualFinish - pb.virtualFinish
	if da < -vftEpsilon {
		return true
	}
	if da > vftEpsilon {
		return false
	}
	if pa.arrival.ArrivalTime != pb.arrival.ArrivalTime {
		return pa.arrival.ArrivalTime < pb.arrival.ArrivalTime
	}
	if pa.sequenceID != pb.sequenceID {
		return pa.sequenceID < pb.sequenceID
	}
	return a.priority < b.priority
}

func (h vftHeap) Len() int {
	return len(h)
}

func (h vftHeap) Less(i, j int) bool {
	return vftLess(h[i], h[j])
}

func (h vftHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *vftHeap) Push(x any) {
	f := x.(*flow)
	f.heapIndex = len(*h)
	*h = append(*h, f)
}

func (h *vftHeap) Pop() any {
	old := *h
	n := len(old)
	f := old[n-1]
	old[n-1] = nil
	f.heapIndex = -1
	*h = old[:n-1]
	return f
}

// push inserts flow f into the heap. f MUST NOT already be present.
func (h *vftHeap) push(f *flow) {
	heap.Push(h, f)
}

// pop removes and returns the flow whose head-of-line packet has the
// smallest virtual finish time. It raises an [ErrInvariantViolation] if the
// heap is empty; callers must check [vftHeap.len] first.
func (h *vftHeap) pop() *flow {
	if h.len() == 0 {
		invariantf("pop called on an empty heap")
	}
	return heap.Pop(h).(*flow)
}

// peek returns the minimum element without removing it.
func (h vftHeap) peek() *flow {
	if len(h) == 0 {
		invariantf("peek called on an empty heap")
	}
	return h[0]
}

// len returns the number of flows currently scheduled in the heap.
func (h vftHeap) len() int {
	return len(h)
}

