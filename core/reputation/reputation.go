package reputation

// InitialScore is the trust score every known actor starts with.
const InitialScore = 100

// Ledger tracks a per-actor trust score. Scores are unclamped: protocol
// outcomes can push them above 100 or below zero.
type Ledger struct {
	scores map[string]int
}

// NewLedger returns a ledger with no recorded actors.
func NewLedger() *Ledger {
	return &Ledger{scores: make(map[string]int)}
}

// Score returns the actor's current score, registering the actor at the
// initial score on first lookup.
func (l *Ledger) Score(actorID string) int {
	if _, ok := l.scores[actorID]; !ok {
		l.scores[actorID] = InitialScore
	}
	return l.scores[actorID]
}

// Adjust applies a delta to the actor's score and returns the new value.
func (l *Ledger) Adjust(actorID string, delta int) int {
	l.scores[actorID] = l.Score(actorID) + delta
	return l.scores[actorID]
}

// Export returns all known scores for snapshot persistence.
func (l *Ledger) Export() map[string]int {
	out := make(map[string]int, len(l.scores))
	for id, s := range l.scores {
		out[id] = s
	}
	return out
}

// Import replaces the scores from a persisted snapshot. A nil map is the
// documented default for snapshots written before reputation existed:
// every actor re-enters at the initial score.
func (l *Ledger) Import(data map[string]int) {
	l.scores = make(map[string]int, len(data))
	for id, s := range data {
		l.scores[id] = s
	}
}
