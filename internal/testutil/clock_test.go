package testutil

import (
	"testing"
	"time"
)

func TestStepClock_Advances(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewStepClock(start, time.Second)

	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("first Now() = %v, want %v", got, start)
	}
	if got := c.Now(); !got.Equal(start.Add(time.Second)) {
		t.Fatalf("second Now() = %v, want %v", got, start.Add(time.Second))
	}

	later := start.Add(time.Hour)
	c.Set(later)
	if got := c.Now(); !got.Equal(later) {
		t.Fatalf("Now() after Set = %v, want %v", got, later)
	}
}
