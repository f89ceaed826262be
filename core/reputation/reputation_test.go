package reputation

import "testing"

func TestScoreStartsAtInitial(t *testing.T) {
	l := NewLedger()
	if got := l.Score("collector-1"); got != InitialScore {
		t.Errorf("fresh actor score = %d, want %d", got, InitialScore)
	}
}

func TestAdjustIsUnclamped(t *testing.T) {
	l := NewLedger()
	if got := l.Adjust("a", 5); got != 105 {
		t.Errorf("after +5 score = %d, want 105", got)
	}
	l.Adjust("b", -150)
	if got := l.Score("b"); got != -50 {
		t.Errorf("score should go negative, got %d", got)
	}
}

func TestImportNilDefaultsEveryoneToInitial(t *testing.T) {
	l := NewLedger()
	l.Adjust("a", -10)
	l.Import(nil)
	if got := l.Score("a"); got != InitialScore {
		t.Errorf("after nil import score = %d, want %d", got, InitialScore)
	}
}

func TestExportCopies(t *testing.T) {
	l := NewLedger()
	l.Score("a")
	out := l.Export()
	out["a"] = 0
	if got := l.Score("a"); got != InitialScore {
		t.Errorf("export leaked internal map, score = %d", got)
	}
}
