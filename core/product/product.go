package product

import (
	"math"

	"herbledger/core/ledger"
	"herbledger/core/record"
	"herbledger/types/ids"
)

// Minting finished-product unit ids is a collaborator concern: the engine
// records the UseHerb batch, the UI derives one traceable unit id per whole
// weight unit of the final product.

// MintUnits derives floor(finalWeight) unit ids for a batch. Derivation is
// deterministic, so the unit set can be recomputed from the batch id alone.
func MintUnits(batchID string, finalWeight float64) []string {
	n := int(math.Floor(finalWeight))
	if n < 0 {
		n = 0
	}
	units := make([]string, 0, n)
	for i := 0; i < n; i++ {
		units = append(units, ids.UnitID(batchID, i))
	}
	return units
}

// Trace links a scanned unit id back to its production record.
type Trace struct {
	UnitID      string
	BatchID     string
	UseRecord   ledger.Block
	UsedBatches []record.UsedBatch
}

// Resolve finds which batch minted the unit id by recomputing each batch's
// unit set from its UseHerb record. Linear in total minted units; fine for
// a single local ledger.
func Resolve(unitID string, useRecords []ledger.Block) (Trace, bool) {
	for _, blk := range useRecords {
		for _, candidate := range MintUnits(blk.Record.BatchID, blk.Record.FinalWeight) {
			if candidate == unitID {
				return Trace{
					UnitID:      unitID,
					BatchID:     blk.Record.BatchID,
					UseRecord:   blk,
					UsedBatches: blk.Record.UsedBatches,
				}, true
			}
		}
	}
	return Trace{}, false
}
