package logger

import (
	"errors"
	"testing"
	"time"
)

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("pages.fetched")
	m.IncrCounter("pages.fetched")
	m.AddCounter("pages.fetched", 3)

	if got := m.Counter("pages.fetched"); got != 5 {
		t.Errorf("Counter() = %d, want 5", got)
	}
	if got := m.Snapshot().Counters["pages.fetched"]; got != 5 {
		t.Errorf("Snapshot counter = %d, want 5", got)
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("fetch", 100*time.Millisecond)
	m.RecordTiming("fetch", 200*time.Millisecond)
	m.RecordTiming("fetch", 150*time.Millisecond)

	stats := m.Snapshot().Timings["fetch"]
	if stats.Count != 3 {
		t.Errorf("Count = %d, want 3", stats.Count)
	}
	if stats.Min != 100*time.Millisecond {
		t.Errorf("Min = %v, want 100ms", stats.Min)
	}
	if stats.Max != 200*time.Millisecond {
		t.Errorf("Max = %v, want 200ms", stats.Max)
	}
	if stats.Average != 150*time.Millisecond {
		t.Errorf("Average = %v, want 150ms", stats.Average)
	}
}

func TestMetrics_Time(t *testing.T) {
	m := NewMetrics()
	wantErr := errors.New("boom")

	err := m.Time("parse", func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("Time() error = %v, want %v", err, wantErr)
	}
	if got := m.Snapshot().Timings["parse"].Count; got != 1 {
		t.Errorf("timing count = %d, want 1", got)
	}
}

func TestSnapshot_Fields(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("seasons.parsed")
	m.RecordTiming("fetch", time.Second)

	fields := m.Snapshot().Fields()
	if fields["seasons.parsed"] != int64(1) {
		t.Errorf("fields[seasons.parsed] = %v, want 1", fields["seasons.parsed"])
	}
	if fields["fetch.avg"] != "1s" {
		t.Errorf("fields[fetch.avg] = %v, want 1s", fields["fetch.avg"])
	}
	if fields["fetch.count"] != 1 {
		t.Errorf("fields[fetch.count] = %v, want 1", fields["fetch.count"])
	}
}
