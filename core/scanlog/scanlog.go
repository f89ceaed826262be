package scanlog

import (
	"sync"
	"time"
)

// ScanResult reports the outcome of a consumer scan. FirstSeen false means
// the unit id was scanned before and the caller should render a counterfeit
// warning with the original timestamp.
type ScanResult struct {
	UnitID      string    `json:"unitId"`
	FirstSeen   bool      `json:"firstSeen"`
	FirstScanAt time.Time `json:"firstScanAt"`
}

// Log is the one-time-use registry for finished-product unit ids. It keeps
// its own lock: consumer scans arrive outside the contract engine's
// operation path and concurrent duplicate scans must still resolve to
// exactly one first-seen winner.
type Log struct {
	mu    sync.Mutex
	seen  map[string]time.Time
	clock func() time.Time
}

// NewLog returns an empty scan log.
func NewLog() *Log {
	return &Log{seen: make(map[string]time.Time), clock: time.Now}
}

// RecordScan marks the unit id as scanned. The first call wins; every later
// call returns the stored first-scan timestamp and mutates nothing.
func (l *Log) RecordScan(unitID string) ScanResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ts, ok := l.seen[unitID]; ok {
		return ScanResult{UnitID: unitID, FirstSeen: false, FirstScanAt: ts}
	}
	now := l.clock().UTC()
	l.seen[unitID] = now
	return ScanResult{UnitID: unitID, FirstSeen: true, FirstScanAt: now}
}

// Export returns the scan timestamps for snapshot persistence.
func (l *Log) Export() map[string]time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]time.Time, len(l.seen))
	for id, ts := range l.seen {
		out[id] = ts
	}
	return out
}

// Import replaces the log contents from a persisted snapshot. A nil map is
// the documented default for snapshots written before the scan log existed.
func (l *Log) Import(data map[string]time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen = make(map[string]time.Time, len(data))
	for id, ts := range data {
		l.seen[id] = ts
	}
}
