package engine

import (
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}
	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestMockTimeProvider(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	if now := mock.Now(); !now.Equal(startTime) {
		t.Errorf("Expected initial time to be %v, got %v", startTime, now)
	}

	newTime := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.SetTime(newTime)
	if now := mock.Now(); !now.Equal(newTime) {
		t.Errorf("Expected time to be %v after SetTime, got %v", newTime, now)
	}

	mock.Advance(time.Hour)
	if now, expected := mock.Now(), newTime.Add(time.Hour); !now.Equal(expected) {
		t.Errorf("Expected time to be %v after Advance, got %v", expected, now)
	}

	mock.Sleep(time.Second)
	if now, expected := mock.Now(), newTime.Add(time.Hour+time.Second); !now.Equal(expected) {
		t.Errorf("Expected Sleep to advance the clock to %v, got %v", expected, now)
	}
}

func TestMockTimeProviderRecordsSleeps(t *testing.T) {
	start := time.Unix(0, 0)
	mock := NewMockTimeProvider(start)

	mock.Advance(-time.Second)
	if now := mock.Now(); !now.Equal(start) {
		t.Errorf("Expected negative Advance to be ignored, got %v", now)
	}

	mock.Sleep(16 * time.Millisecond)
	mock.Sleep(0)
	mock.Sleep(4 * time.Millisecond)

	sleeps := mock.Sleeps()
	if len(sleeps) != 3 || sleeps[0] != 16*time.Millisecond || sleeps[1] != 0 || sleeps[2] != 4*time.Millisecond {
		t.Errorf("Unexpected sleeps: %v", sleeps)
	}
	if now, expected := mock.Now(), start.Add(20*time.Millisecond); !now.Equal(expected) {
		t.Errorf("Expected clock at %v, got %v", expected, now)
	}
}
