package wfqsim

import "testing"

func flowWithFinish(priority uint32, arrivalTime int64, seq uint64, finish float64) *flow {
	f := newFlow(FlowKey{SrcAddr: "x", DstAddr: "y"}, priority)
	f.queue = []*packet{{
		arrival:       ArrivalEvent{ArrivalTime: arrivalTime},
		virtualFinish: finish,
		sequenceID:    seq,
	}}
	return f
}

func TestHeapOrdersByVirtualFinish(t *testing.T) {
	h := make(vftHeap, 0)
	h.push(flowWithFinish(2, 0, 2, 30))
	h.push(flowWithFinish(1, 0, 1, 10))
	h.push(flowWithFinish(3, 0, 3, 20))

	var got []float64
	for h.len() > 0 {
		got = append(got, h.pop().head().virtualFinish)
	}
	want := []float64{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestHeapTieBreaksByArrivalThenSequenceThenPriority(t *testing.T) {
	h := make(vftHeap, 0)
	// all tie on virtualFinish; arrival_time breaks first
	h.push(flowWithFinish(1, 10, 5, 100))
	h.push(flowWithFinish(2, 5, 1, 100))
	h.push(flowWithFinish(3, 5, 2, 100))

	first := h.pop()
	if first.head().arrival.ArrivalTime != 5 || first.head().sequenceID != 1 {
		t.Fatalf("expected earliest arrival+sequence to win first, got arrival=%d seq=%d",
			first.head().arrival.ArrivalTime, first.head().sequenceID)
	}
	second := h.pop()
	if second.head().sequenceID != 2 {
		t.Fatalf("expected sequence 2 next, got %d", second.head().sequenceID)
	}
	third := h.pop()
	if third.priority != 1 {
		t.Fatalf("expected remaining flow priority 1, got %d", third.priority)
	}

	// tie on virtualFinish, arrival_time and sequence_id: priority breaks
	h.push(flowWithFinish(7, 0, 9, 50))
	h.push(flowWithFinish(4, 0, 9, 50))
	if got := h.pop().priority; got != 4 {
		t.Fatalf("expected lower flow priority 4 to win a full tie, got %d", got)
	}
}

func TestHeapPopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic popping an empty heap")
		}
	}()
	h := make(vftHeap, 0)
	h.pop()
}
