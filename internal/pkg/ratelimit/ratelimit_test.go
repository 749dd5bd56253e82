package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterBlocksWithinInterval(t *testing.T) {
	l := New(3 * time.Second)
	current := time.Unix(1000, 0)
	l.now = func() time.Time { return current }

	if !l.Allow(1) {
		t.Fatal("first attempt must pass")
	}
	if l.Allow(1) {
		t.Fatal("immediate retry must be blocked")
	}

	current = current.Add(2 * time.Second)
	if l.Allow(1) {
		t.Fatal("retry within interval must be blocked")
	}

	current = current.Add(time.Second + time.Millisecond)
	if !l.Allow(1) {
		t.Fatal("retry past interval must pass")
	}
}

func TestLimiterTracksUsersIndependently(t *testing.T) {
	l := New(time.Minute)
	current := time.Unix(0, 0)
	l.now = func() time.Time { return current }

	if !l.Allow(1) || !l.Allow(2) {
		t.Fatal("different users must not affect each other")
	}
	if l.Allow(1) {
		t.Fatal("first user must be blocked")
	}
}

func TestLimiterNonPositiveIntervalAllowsAll(t *testing.T) {
	l := New(0)
	for i := 0; i < 5; i++ {
		if !l.Allow(1) {
			t.Fatal("zero interval must allow everything")
		}
	}
}
