package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"

	"herbledger/core/inventory"
	"herbledger/core/ledger"
	"herbledger/core/registry"
)

const snapshotKey = "snapshot:v1"

// ErrNoSnapshot means the backend holds no persisted state yet; callers
// start from a fresh genesis chain.
var ErrNoSnapshot = errors.New("no snapshot present")

// ErrCorruptState marks persisted state that cannot be trusted: schema
// violations, a missing chain, or a genesis mismatch. It is unrecoverable
// corruption requiring a reset, never silently patched.
var ErrCorruptState = errors.New("persisted state is corrupt")

// Snapshot is the full serialized ledger state. ReputationScores and
// ScanLog are optional on load: snapshots written before those features
// existed default to every actor at the initial score and an empty log.
type Snapshot struct {
	Chain            []ledger.Block                        `json:"chain"`
	ItemMaster       map[string]registry.Item              `json:"itemMaster"`
	Inventories      map[string]map[string]inventory.Entry `json:"inventories"`
	ReputationScores map[string]int                        `json:"reputationScores,omitempty"`
	ScanLog          map[string]time.Time                  `json:"scanLog,omitempty"`
}

// SaveSnapshot serializes the snapshot into the backend, sealing it when a
// data encryption key is configured.
func SaveSnapshot(backend StateBackend, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}
	enc, err := seal(data)
	if err != nil {
		return fmt.Errorf("could not seal snapshot: %w", err)
	}
	if err := backend.Put(snapshotKey, enc); err != nil {
		return fmt.Errorf("could not write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads and validates the persisted snapshot. It returns
// ErrNoSnapshot when the backend is empty and wraps ErrCorruptState when
// the stored bytes fail schema validation or the chain does not start at
// the known genesis.
func LoadSnapshot(backend StateBackend) (Snapshot, error) {
	raw, err := backend.Get(snapshotKey)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return Snapshot{}, ErrNoSnapshot
		}
		return Snapshot{}, fmt.Errorf("could not read snapshot: %w", err)
	}
	data, err := open(raw)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: could not unseal: %v", ErrCorruptState, err)
	}
	if err := validateSnapshotBytes(data); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: could not decode: %v", ErrCorruptState, err)
	}
	if len(snap.Chain) == 0 {
		return Snapshot{}, fmt.Errorf("%w: chain is empty", ErrCorruptState)
	}
	if g := ledger.Genesis(); snap.Chain[0].Hash != g.Hash {
		return Snapshot{}, fmt.Errorf("%w: genesis hash %s does not match %s", ErrCorruptState, snap.Chain[0].Hash, g.Hash)
	}
	return snap, nil
}
