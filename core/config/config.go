package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Policy collects every tunable business-rule knob. All values come from
// environment variables (a .env file is honored when present) with the
// documented defaults.
type Policy struct {
	// MinRegisterScore is the caller-side gate before register is invoked.
	MinRegisterScore int
	// MinTransferScore gates transfer inside the engine as well: the
	// caller is expected to withhold sub-threshold calls, the engine
	// re-checks anyway.
	MinTransferScore int
	// MinConsumeScore gates consume-into-product.
	MinConsumeScore int

	// TolerancePct is the allowed claimed/measured deviation, in percent.
	TolerancePct float64

	FraudPenalty       int // registrant penalty when a dispute is raised
	VerifyReward       int // registrant and verifier reward on verification
	ConsumeReward      int // manufacturer reward on successful consumption
	QualityGatePenalty int // manufacturer penalty on the consume quality gate

	// DBPath is where the LevelDB snapshot store lives.
	DBPath string
}

// Defaults are the documented policy values.
var Defaults = Policy{
	MinRegisterScore:   50,
	MinTransferScore:   70,
	MinConsumeScore:    60,
	TolerancePct:       2,
	FraudPenalty:       10,
	VerifyReward:       1,
	ConsumeReward:      2,
	QualityGatePenalty: 5,
	DBPath:             "./herbledger_db",
}

// Load reads the policy from the environment. A missing .env file is fine.
func Load() Policy {
	_ = godotenv.Load()
	p := Defaults
	p.MinRegisterScore = envInt("HERBLEDGER_MIN_REGISTER_SCORE", p.MinRegisterScore)
	p.MinTransferScore = envInt("HERBLEDGER_MIN_TRANSFER_SCORE", p.MinTransferScore)
	p.MinConsumeScore = envInt("HERBLEDGER_MIN_CONSUME_SCORE", p.MinConsumeScore)
	p.TolerancePct = envFloat("HERBLEDGER_TOLERANCE_PCT", p.TolerancePct)
	p.FraudPenalty = envInt("HERBLEDGER_FRAUD_PENALTY", p.FraudPenalty)
	p.VerifyReward = envInt("HERBLEDGER_VERIFY_REWARD", p.VerifyReward)
	p.ConsumeReward = envInt("HERBLEDGER_CONSUME_REWARD", p.ConsumeReward)
	p.QualityGatePenalty = envInt("HERBLEDGER_QUALITY_PENALTY", p.QualityGatePenalty)
	if v := os.Getenv("HERBLEDGER_DB_PATH"); v != "" {
		p.DBPath = v
	}
	return p
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
