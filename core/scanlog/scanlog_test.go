package scanlog

import (
	"sync"
	"testing"
	"time"
)

func TestFirstScanWins(t *testing.T) {
	l := NewLog()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.clock = func() time.Time { return fixed }

	first := l.RecordScan("unit-1")
	if !first.FirstSeen {
		t.Fatal("first scan should report FirstSeen=true")
	}
	if !first.FirstScanAt.Equal(fixed) {
		t.Errorf("first scan timestamp = %v, want %v", first.FirstScanAt, fixed)
	}

	l.clock = func() time.Time { return fixed.Add(time.Hour) }
	second := l.RecordScan("unit-1")
	if second.FirstSeen {
		t.Error("second scan should report FirstSeen=false")
	}
	if !second.FirstScanAt.Equal(fixed) {
		t.Errorf("second scan must return original timestamp, got %v", second.FirstScanAt)
	}
}

func TestConcurrentDuplicateScans(t *testing.T) {
	l := NewLog()
	const n = 32
	results := make([]ScanResult, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = l.RecordScan("unit-1")
		}(i)
	}
	wg.Wait()

	firsts := 0
	for _, r := range results {
		if r.FirstSeen {
			firsts++
		}
	}
	if firsts != 1 {
		t.Errorf("exactly one scan should win first-seen, got %d", firsts)
	}
}

func TestImportNilIsEmptyLog(t *testing.T) {
	l := NewLog()
	l.RecordScan("unit-1")
	l.Import(nil)
	if res := l.RecordScan("unit-1"); !res.FirstSeen {
		t.Error("after nil import the log should be empty")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	l := NewLog()
	first := l.RecordScan("unit-1")

	out := NewLog()
	out.Import(l.Export())
	res := out.RecordScan("unit-1")
	if res.FirstSeen {
		t.Error("imported log should already know unit-1")
	}
	if !res.FirstScanAt.Equal(first.FirstScanAt) {
		t.Errorf("imported timestamp = %v, want %v", res.FirstScanAt, first.FirstScanAt)
	}
}
