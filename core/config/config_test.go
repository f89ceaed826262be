package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	p := Load()
	if p.MinRegisterScore != 50 || p.MinTransferScore != 70 || p.MinConsumeScore != 60 {
		t.Errorf("unexpected threshold defaults: %+v", p)
	}
	if p.TolerancePct != 2 {
		t.Errorf("tolerance default = %v, want 2", p.TolerancePct)
	}
	if p.FraudPenalty != 10 || p.VerifyReward != 1 || p.ConsumeReward != 2 || p.QualityGatePenalty != 5 {
		t.Errorf("unexpected reputation defaults: %+v", p)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HERBLEDGER_MIN_CONSUME_SCORE", "75")
	t.Setenv("HERBLEDGER_TOLERANCE_PCT", "5.5")
	t.Setenv("HERBLEDGER_DB_PATH", "/tmp/ledger")

	p := Load()
	if p.MinConsumeScore != 75 {
		t.Errorf("MinConsumeScore = %d, want 75", p.MinConsumeScore)
	}
	if p.TolerancePct != 5.5 {
		t.Errorf("TolerancePct = %v, want 5.5", p.TolerancePct)
	}
	if p.DBPath != "/tmp/ledger" {
		t.Errorf("DBPath = %q, want /tmp/ledger", p.DBPath)
	}
}

func TestMalformedEnvFallsBack(t *testing.T) {
	t.Setenv("HERBLEDGER_FRAUD_PENALTY", "lots")
	p := Load()
	if p.FraudPenalty != Defaults.FraudPenalty {
		t.Errorf("FraudPenalty = %d, want default %d", p.FraudPenalty, Defaults.FraudPenalty)
	}
}
