package record

import (
	"bytes"
	"testing"
	"time"
)

func TestSerializeIsStable(t *testing.T) {
	r := Record{
		Type:      TypeTransferHerb,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ItemID:    "H1",
		From:      "supplier-1",
		To:        "manufacturer-1",
		Quantity:  4,
		Unit:      "Kg",
		Quality:   &Quality{Score: 85, Status: "Good"},
	}
	a, err := r.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	b, _ := r.Serialize()
	if !bytes.Equal(a, b) {
		t.Error("serialization is not stable across calls")
	}

	out, err := Deserialize(a)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if out.Quality == nil || out.Quality.Score != 85 {
		t.Errorf("quality snapshot lost in round trip: %+v", out.Quality)
	}
}

func TestVariantFieldsOmitted(t *testing.T) {
	r := Record{Type: TypeRegisterHerb, Timestamp: time.Now(), ItemID: "H1"}
	data, _ := r.Serialize()
	for _, absent := range []string{"usedBatches", "claimed", "finalWeight", "from"} {
		if bytes.Contains(data, []byte(absent)) {
			t.Errorf("register record should omit %q, got %s", absent, data)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"collector", "supplier", "manufacturer"} {
		if _, err := ParseRole(s); err != nil {
			t.Errorf("ParseRole(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseRole("consumer"); err == nil {
		t.Error("consumer is not a mutating role, ParseRole should reject it")
	}
	if got := RoleCollector.DisplayName(); got != "Collector" {
		t.Errorf("DisplayName = %q, want Collector", got)
	}
}
