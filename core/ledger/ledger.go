package ledger

import (
	"fmt"
	"hash/fnv"
	"time"

	"herbledger/core/record"
)

// GenesisPrevHash is the sentinel previous-hash of the genesis block.
const GenesisPrevHash = "0"

// genesisTime is fixed so the genesis fingerprint is identical across runs,
// which lets snapshot loading detect a foreign or corrupted chain.
var genesisTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Block wraps one record with its position in the hash-linked chain.
type Block struct {
	Height    uint64        `json:"height"`
	Timestamp time.Time     `json:"timestamp"`
	PrevHash  string        `json:"prevHash"`
	Hash      string        `json:"hash"`
	Record    record.Record `json:"record"`
}

// Fingerprint digests prevHash + timestamp + payload into a hex string.
// FNV-1a is deliberately non-cryptographic: the chain detects accidental
// change, it does not resist tampering.
func Fingerprint(prevHash string, ts time.Time, payload []byte) string {
	h := fnv.New64a()
	h.Write([]byte(prevHash))
	h.Write([]byte(ts.UTC().Format(time.RFC3339Nano)))
	h.Write(payload)
	return fmt.Sprintf("%016x", h.Sum64())
}

// Chain is an append-only sequence of hash-linked blocks. It is not
// goroutine-safe on its own; the contract engine serializes access.
type Chain struct {
	blocks []Block
}

// NewChain returns a chain holding only the genesis block.
func NewChain() *Chain {
	return &Chain{blocks: []Block{Genesis()}}
}

// Genesis builds the fixed sentinel block.
func Genesis() Block {
	rec := record.Record{
		Type:      record.TypeGenesis,
		Timestamp: genesisTime,
		Name:      "herbledger genesis",
	}
	payload, _ := rec.Serialize()
	return Block{
		Height:    0,
		Timestamp: genesisTime,
		PrevHash:  GenesisPrevHash,
		Hash:      Fingerprint(GenesisPrevHash, genesisTime, payload),
		Record:    rec,
	}
}

// Append links a new block onto the tail and returns it. Appending cannot
// fail: the record was already validated by the engine.
func (c *Chain) Append(rec record.Record) Block {
	tail := c.blocks[len(c.blocks)-1]
	payload, _ := rec.Serialize()
	blk := Block{
		Height:    tail.Height + 1,
		Timestamp: rec.Timestamp,
		PrevHash:  tail.Hash,
		Hash:      Fingerprint(tail.Hash, rec.Timestamp, payload),
		Record:    rec,
	}
	c.blocks = append(c.blocks, blk)
	return blk
}

// Len returns the number of blocks including genesis.
func (c *Chain) Len() int {
	return len(c.blocks)
}

// At returns the block at the given height.
func (c *Chain) At(height uint64) (Block, error) {
	if height >= uint64(len(c.blocks)) {
		return Block{}, fmt.Errorf("no block at height %d (chain length %d)", height, len(c.blocks))
	}
	return c.blocks[height], nil
}

// Blocks returns a copy of the chain oldest-first.
func (c *Chain) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// NewestFirst returns a copy of the chain ordered for display.
func (c *Chain) NewestFirst() []Block {
	out := make([]Block, 0, len(c.blocks))
	for i := len(c.blocks) - 1; i >= 0; i-- {
		out = append(out, c.blocks[i])
	}
	return out
}

// Verify walks the chain recomputing every link and fingerprint.
func (c *Chain) Verify() error {
	if len(c.blocks) == 0 {
		return fmt.Errorf("chain is empty")
	}
	if c.blocks[0].PrevHash != GenesisPrevHash {
		return fmt.Errorf("genesis prevHash is %q, want %q", c.blocks[0].PrevHash, GenesisPrevHash)
	}
	for i, blk := range c.blocks {
		if blk.Height != uint64(i) {
			return fmt.Errorf("block %d carries height %d", i, blk.Height)
		}
		if i > 0 && blk.PrevHash != c.blocks[i-1].Hash {
			return fmt.Errorf("block %d prevHash does not match block %d hash", i, i-1)
		}
		payload, err := blk.Record.Serialize()
		if err != nil {
			return fmt.Errorf("block %d record not serializable: %w", i, err)
		}
		if got := Fingerprint(blk.PrevHash, blk.Timestamp, payload); got != blk.Hash {
			return fmt.Errorf("block %d fingerprint mismatch: stored %s, recomputed %s", i, blk.Hash, got)
		}
	}
	return nil
}

// Restore replaces the chain contents from a persisted snapshot after the
// caller has validated them. The first block must be the known genesis.
func Restore(blocks []Block) (*Chain, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("persisted chain is empty")
	}
	if g := Genesis(); blocks[0].Hash != g.Hash {
		return nil, fmt.Errorf("persisted genesis hash %s does not match %s", blocks[0].Hash, g.Hash)
	}
	c := &Chain{blocks: make([]Block, len(blocks))}
	copy(c.blocks, blocks)
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}
