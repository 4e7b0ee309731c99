package testfixtures

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	t.Run("defaults to the reference time", func(t *testing.T) {
		clock := NewClock(time.Time{})
		if !clock.Now().Equal(ReferenceTime()) {
			t.Fatalf("expected reference time, got %s", clock.Now())
		}
	})

	t.Run("advance moves the clock", func(t *testing.T) {
		clock := NewClock(ReferenceTime())
		updated := clock.Advance(90 * time.Minute)
		if want := ReferenceTime().Add(90 * time.Minute); !updated.Equal(want) {
			t.Fatalf("expected %s, got %s", want, updated)
		}
		if !clock.Now().Equal(updated) {
			t.Fatalf("Now should track the advanced time")
		}
	})

	t.Run("set replaces the instant", func(t *testing.T) {
		clock := NewClock(ReferenceTime())
		target := time.Date(2025, time.June, 7, 9, 0, 0, 0, time.UTC)
		clock.Set(target)
		if !clock.Now().Equal(target) {
			t.Fatalf("expected %s, got %s", target, clock.Now())
		}
	})

	t.Run("nil clock falls back to the wall clock", func(t *testing.T) {
		var clock *Clock
		if clock.NowFunc() == nil {
			t.Fatalf("expected a usable fallback func")
		}
	})
}
