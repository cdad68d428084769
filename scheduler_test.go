package wfqsim

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func key(src string, srcPort int, dst string, dstPort int) FlowKey {
	return FlowKey{SrcAddr: src, SrcPort: srcPort, DstAddr: dst, DstPort: dstPort}
}

// runScenario runs the scheduler end to end over arrivals and returns the
// departures it produced, in emission order.
func runScenario(arrivals ...ArrivalEvent) []DepartureEvent {
	s := NewScheduler(&NullLogger{})
	sink := &collectSink{}
	s.Run(newSliceArrivalSource(arrivals...), sink)
	return sink.events
}

// wantDeparture is a minimal projection of a [DepartureEvent] used to
// express expectations concisely without repeating every field.
type wantDeparture struct {
	StartTime   int64
	ArrivalTime int64
	Key         FlowKey
	Length      int64
	HasWeight   bool
	WeightUsed  float64
}

func project(events []DepartureEvent) []wantDeparture {
	out := make([]wantDeparture, 0, len(events))
	for _, e := range events {
		out = append(out, wantDeparture{
			StartTime:   e.StartTime,
			ArrivalTime: e.Arrival.ArrivalTime,
			Key:         e.Arrival.Key,
			Length:      e.Arrival.Length,
			HasWeight:   e.HasExplicitWeight,
			WeightUsed:  e.WeightUsed,
		})
	}
	return out
}

func TestScenarioA_SingleFlowNoWeight(t *testing.T) {
	k := key("10.0.0.1", 100, "10.0.0.2", 200)
	got := project(runScenario(
		ArrivalEvent{ArrivalTime: 0, Key: k, Length: 50},
		ArrivalEvent{ArrivalTime: 0, Key: k, Length: 30},
	))
	want := []wantDeparture{
		{StartTime: 0, ArrivalTime: 0, Key: k, Length: 50, WeightUsed: 1},
		{StartTime: 50, ArrivalTime: 0, Key: k, Length: 30, WeightUsed: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestScenarioB_TwoEqualWeightFlowsSimultaneous(t *testing.T) {
	k1 := key("A", 1, "B", 1)
	k2 := key("A", 2, "B", 2)
	got := project(runScenario(
		ArrivalEvent{ArrivalTime: 0, Key: k1, Length: 100},
		ArrivalEvent{ArrivalTime: 0, Key: k2, Length: 100},
	))
	want := []wantDeparture{
		{StartTime: 0, ArrivalTime: 0, Key: k1, Length: 100, WeightUsed: 1},
		{StartTime: 100, ArrivalTime: 0, Key: k2, Length: 100, WeightUsed: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestScenarioC_WeightedFairness(t *testing.T) {
	k1 := key("A", 1, "B", 1)
	k2 := key("A", 2, "B", 2)
	got := project(runScenario(
		ArrivalEvent{ArrivalTime: 0, Key: k1, Length: 100, Weight: weightPtr(1.0)},
		ArrivalEvent{ArrivalTime: 0, Key: k2, Length: 100, Weight: weightPtr(3.0)},
	))
	want := []wantDeparture{
		{StartTime: 0, ArrivalTime: 0, Key: k2, Length: 100, HasWeight: true, WeightUsed: 3},
		{StartTime: 100, ArrivalTime: 0, Key: k1, Length: 100, HasWeight: true, WeightUsed: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestScenarioD_ArrivalDuringTransmission(t *testing.T) {
	k1 := key("A", 1, "B", 1)
	k2 := key("A", 2, "B", 2)
	got := project(runScenario(
		ArrivalEvent{ArrivalTime: 0, Key: k1, Length: 100},
		ArrivalEvent{ArrivalTime: 10, Key: k2, Length: 50},
	))
	want := []wantDeparture{
		{StartTime: 0, ArrivalTime: 0, Key: k1, Length: 100, WeightUsed: 1},
		{StartTime: 100, ArrivalTime: 10, Key: k2, Length: 50, WeightUsed: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestScenarioE_WeightOverwriteMidStream(t *testing.T) {
	k := key("A", 1, "B", 1)
	got := project(runScenario(
		ArrivalEvent{ArrivalTime: 0, Key: k, Length: 100, Weight: weightPtr(1.0)},
		ArrivalEvent{ArrivalTime: 0, Key: k, Length: 100, Weight: weightPtr(2.0)},
	))
	want := []wantDeparture{
		{StartTime: 0, ArrivalTime: 0, Key: k, Length: 100, HasWeight: true, WeightUsed: 1},
		{StartTime: 100, ArrivalTime: 0, Key: k, Length: 100, HasWeight: true, WeightUsed: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestScenarioF_IdleGap(t *testing.T) {
	k1 := key("A", 1, "B", 1)
	k2 := key("A", 2, "B", 2)
	got := project(runScenario(
		ArrivalEvent{ArrivalTime: 0, Key: k1, Length: 10},
		ArrivalEvent{ArrivalTime: 1000, Key: k2, Length: 10},
	))
	want := []wantDeparture{
		{StartTime: 0, ArrivalTime: 0, Key: k1, Length: 10, WeightUsed: 1},
		{StartTime: 1000, ArrivalTime: 1000, Key: k2, Length: 10, WeightUsed: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

// TestCausalityAndFIFO exercises the general invariants from §8 across a
// busier trace with three flows, mixed weights, and interleaved arrivals.
func TestCausalityAndFIFO(t *testing.T) {
	k1 := key("10.0.0.1", 1, "10.0.0.9", 80)
	k2 := key("10.0.0.2", 1, "10.0.0.9", 80)
	k3 := key("10.0.0.3", 1, "10.0.0.9", 80)

	arrivals := []ArrivalEvent{
		{ArrivalTime: 0, Key: k1, Length: 40, Weight: weightPtr(2)},
		{ArrivalTime: 0, Key: k2, Length: 40},
		{ArrivalTime: 5, Key: k1, Length: 20},
		{ArrivalTime: 5, Key: k3, Length: 60, Weight: weightPtr(1)},
		{ArrivalTime: 30, Key: k2, Length: 10},
		{ArrivalTime: 90, Key: k3, Length: 15},
	}

	events := runScenario(arrivals...)

	var prevStart, prevLen int64 = -1, 0
	bySeq := map[FlowKey][]uint64{}
	for _, e := range events {
		if e.StartTime < e.Arrival.ArrivalTime {
			t.Fatalf("causality violated: start=%d before arrival=%d", e.StartTime, e.Arrival.ArrivalTime)
		}
		if prevStart >= 0 && e.StartTime < prevStart+prevLen {
			t.Fatalf("link overlap: prev finished at %d, next started at %d", prevStart+prevLen, e.StartTime)
		}
		prevStart, prevLen = e.StartTime, e.Arrival.Length
		bySeq[e.Arrival.Key] = append(bySeq[e.Arrival.Key], e.SequenceID)
	}
	for flowKey, seqs := range bySeq {
		for i := 1; i < len(seqs); i++ {
			if seqs[i] <= seqs[i-1] {
				t.Fatalf("FIFO violated for flow %+v: sequence ids %v", flowKey, seqs)
			}
		}
	}
}

// TestDeterminism checks that running the same trace twice yields byte
// (structurally) identical output, ignoring nothing.
func TestDeterminism(t *testing.T) {
	k1 := key("A", 1, "B", 1)
	k2 := key("A", 2, "B", 2)
	arrivals := []ArrivalEvent{
		{ArrivalTime: 0, Key: k1, Length: 33, Weight: weightPtr(5)},
		{ArrivalTime: 0, Key: k2, Length: 33},
		{ArrivalTime: 12, Key: k1, Length: 17},
	}
	first := runScenario(arrivals...)
	second := runScenario(arrivals...)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatal(diff)
	}
}
