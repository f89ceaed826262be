package record

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type tags the ledger record variants.
type Type string

const (
	TypeGenesis       Type = "Genesis"
	TypeRegisterHerb  Type = "RegisterHerb"
	TypeVerifyReceipt Type = "VerifyReceipt"
	TypeFraudAlert    Type = "FraudAlert"
	TypeTransferHerb  Type = "TransferHerb"
	TypeUseHerb       Type = "UseHerb"
)

// Status is the lifecycle state of a registered item.
type Status string

const (
	StatusPendingVerification Status = "pending_verification"
	StatusVerified            Status = "verified"
	StatusDisputed            Status = "disputed"
)

// Role identifies a participant class in the supply chain.
type Role string

const (
	RoleCollector    Role = "collector"
	RoleSupplier     Role = "supplier"
	RoleManufacturer Role = "manufacturer"
)

var roleNames = map[Role]string{
	RoleCollector:    "Collector",
	RoleSupplier:     "Supplier",
	RoleManufacturer: "Manufacturer",
}

// ParseRole maps a string onto a known Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleNames[r]; !ok {
		return "", fmt.Errorf("unknown role: %q", s)
	}
	return r, nil
}

// DisplayName returns the human-readable role label.
func (r Role) DisplayName() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return string(r)
}

// Quality is the opaque quality snapshot supplied by the external
// quality-check collaborator. Only Score takes part in threshold checks.
type Quality struct {
	Score  int    `json:"score"`
	Status string `json:"status"`
}

// UsedBatch names one raw-herb input consumed into a finished product.
type UsedBatch struct {
	ItemID    string  `json:"itemId"`
	UnitsUsed float64 `json:"unitsUsed"`
	Unit      string  `json:"unit"`
}

// Record is the payload of one chain block. Type selects the variant;
// unused variant fields stay at their zero value and are omitted from the
// serialized form. Records are immutable once appended — the live item
// status lives on the registry entry, Status here is only the value
// assigned at registration time.
type Record struct {
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	ItemID   string `json:"itemId,omitempty"`
	BatchID  string `json:"batchId,omitempty"`
	Name     string `json:"name,omitempty"`
	Actor    string `json:"actor,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Location string `json:"location,omitempty"`

	Quantity float64  `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Quality  *Quality `json:"quality,omitempty"`
	Status   Status   `json:"status,omitempty"`

	// FraudAlert fields
	Claimed  float64 `json:"claimed,omitempty"`
	Measured float64 `json:"measured,omitempty"`

	// UseHerb fields
	UsedBatches []UsedBatch `json:"usedBatches,omitempty"`
	FinalWeight float64     `json:"finalWeight,omitempty"`
	FinalUnit   string      `json:"finalUnit,omitempty"`
}

// Serialize encodes the record into its canonical byte form. Struct field
// order is fixed, so the encoding is stable across runs and platforms and
// safe to fingerprint.
func (r Record) Serialize() ([]byte, error) {
	return json.Marshal(r)
}

// Deserialize decodes a canonical record.
func Deserialize(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("could not decode record: %w", err)
	}
	return r, nil
}
