package engine

import (
	"herbledger/core/inventory"
	"herbledger/core/ledger"
	"herbledger/core/record"
	"herbledger/core/registry"
)

// Read-side surface for rendering collaborators. Everything returns copies;
// callers cannot reach the engine's mutable state.

// ListChain returns all blocks newest-first for display.
func (e *Engine) ListChain() []ledger.Block {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chain.NewestFirst()
}

// ChainHeight returns the height of the chain tail.
func (e *Engine) ChainHeight() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return uint64(e.chain.Len() - 1)
}

// VerifyChain recomputes every fingerprint and link in the chain.
func (e *Engine) VerifyChain() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chain.Verify()
}

// ActorInventory lists an actor's holdings sorted by item id.
func (e *Engine) ActorInventory(actorID string) []inventory.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inv.List(actorID)
}

// PendingItems lists items still awaiting verification.
func (e *Engine) PendingItems() []registry.Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.items.Pending()
}

// ItemMaster looks up an item master record by id.
func (e *Engine) ItemMaster(itemID string) (registry.Item, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.items.Get(itemID)
}

// ItemHistory resolves an item's history references into chain blocks,
// oldest-first.
func (e *Engine) ItemHistory(itemID string) ([]ledger.Block, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.items.Get(itemID)
	if !ok {
		return nil, false
	}
	out := make([]ledger.Block, 0, len(item.History))
	for _, h := range item.History {
		blk, err := e.chain.At(h)
		if err != nil {
			continue
		}
		out = append(out, blk)
	}
	return out, true
}

// Reputations returns every known actor's trust score.
func (e *Engine) Reputations() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rep.Export()
}

// Reputation returns one actor's score, registering unknown actors at the
// initial value.
func (e *Engine) Reputation(actorID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rep.Score(actorID)
}

// FindUseRecord locates the UseHerb block for a finished-product batch id.
func (e *Engine) FindUseRecord(batchID string) (ledger.Block, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.findUseRecord(batchID)
}

// findUseRecord is the lock-free variant for callers already holding e.mu.
func (e *Engine) findUseRecord(batchID string) (ledger.Block, bool) {
	for _, blk := range e.chain.Blocks() {
		if blk.Record.Type == record.TypeUseHerb && blk.Record.BatchID == batchID {
			return blk, true
		}
	}
	return ledger.Block{}, false
}

// UseRecords returns every UseHerb block, oldest-first. The product tracer
// uses it to resolve unit ids back to their batch.
func (e *Engine) UseRecords() []ledger.Block {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []ledger.Block
	for _, blk := range e.chain.Blocks() {
		if blk.Record.Type == record.TypeUseHerb {
			out = append(out, blk)
		}
	}
	return out
}
