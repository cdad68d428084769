package wfqsim

import "testing"

func TestVirtualClockAdvancesInverseToActiveWeight(t *testing.T) {
	var c virtualClock
	c.addActiveWeight(2)
	c.advanceTo(10)
	if got, want := c.time, 5.0; got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestVirtualClockIdempotentAtSameTime(t *testing.T) {
	var c virtualClock
	c.addActiveWeight(4)
	c.advanceTo(8)
	before := c.time
	c.advanceTo(8)
	if c.time != before {
		t.Fatalf("advancing to the same time changed virtual time: %v -> %v", before, c.time)
	}
}

func TestVirtualClockClampsZeroWeightToOne(t *testing.T) {
	var c virtualClock
	c.advanceTo(7)
	if got, want := c.time, 7.0; got != want {
		t.Fatalf("got %v want %v (expected 1:1 advancement while idle)", got, want)
	}
}

func TestVirtualClockPanicsOnBackwardsTime(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic moving real time backwards")
		}
	}()
	var c virtualClock
	c.advanceTo(10)
	c.advanceTo(5)
}
