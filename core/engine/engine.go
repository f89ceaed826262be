package engine

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"herbledger/core/audit"
	"herbledger/core/config"
	"herbledger/core/inventory"
	"herbledger/core/ledger"
	"herbledger/core/record"
	"herbledger/core/registry"
	"herbledger/core/reputation"
	"herbledger/core/scanlog"
	"herbledger/core/storage"
)

// OpContext carries the per-session request context the UI layer hands to
// every operation: no ambient globals, the caller states who is acting.
type OpContext struct {
	SessionID string
	Role      record.Role
}

// Engine is the contract engine: the sole writer of all ledger state.
// Every operation is a critical section — check-then-act sequences run
// under one mutex so inventory debits and status transitions are atomic.
type Engine struct {
	mu     sync.Mutex
	policy config.Policy

	chain *ledger.Chain
	items *registry.Registry
	inv   *inventory.Store
	rep   *reputation.Ledger
	scans *scanlog.Log

	auditLog audit.Logger
	store    storage.StateBackend // optional snapshot sink
	log      *logrus.Logger

	clock  func() time.Time
	lastTS time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore attaches a snapshot sink. After every mutating operation the
// engine persists a snapshot; a failed save is logged and never rolls back
// in-memory state.
func WithStore(backend storage.StateBackend) Option {
	return func(e *Engine) { e.store = backend }
}

// WithAuditLogger replaces the default audit logger.
func WithAuditLogger(l audit.Logger) Option {
	return func(e *Engine) { e.auditLog = l }
}

// WithClock replaces the time source. Tests pin it.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger replaces the logrus logger used for operational messages.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New builds an engine over a fresh genesis chain.
func New(policy config.Policy, opts ...Option) *Engine {
	e := &Engine{
		policy:   policy,
		chain:    ledger.NewChain(),
		items:    registry.NewRegistry(),
		inv:      inventory.NewStore(),
		rep:      reputation.NewLedger(),
		scans:    scanlog.NewLog(),
		auditLog: audit.NewLogrusAuditLogger(nil),
		log:      logrus.StandardLogger(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Restore builds an engine from a validated snapshot.
func Restore(snap storage.Snapshot, policy config.Policy, opts ...Option) (*Engine, error) {
	e := New(policy, opts...)
	chain, err := ledger.Restore(snap.Chain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrCorruptState, err)
	}
	e.chain = chain
	if err := e.items.Import(snap.ItemMaster); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrCorruptState, err)
	}
	if err := e.inv.Import(snap.Inventories); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrCorruptState, err)
	}
	e.rep.Import(snap.ReputationScores)
	e.scans.Import(snap.ScanLog)
	if tail := snap.Chain[len(snap.Chain)-1]; tail.Timestamp.After(e.lastTS) {
		e.lastTS = tail.Timestamp
	}
	return e, nil
}

// now returns a monotonically non-decreasing timestamp. Callers hold e.mu.
func (e *Engine) now() time.Time {
	t := e.clock().UTC()
	if t.Before(e.lastTS) {
		t = e.lastTS
	}
	e.lastTS = t
	return t
}

// persist writes a snapshot after a mutation. Append-after-commit: failure
// is logged, never propagated, never rolled back.
func (e *Engine) persist() {
	if e.store == nil {
		return
	}
	snap := storage.Snapshot{
		Chain:            e.chain.Blocks(),
		ItemMaster:       e.items.Export(),
		Inventories:      e.inv.Export(),
		ReputationScores: e.rep.Export(),
		ScanLog:          e.scans.Export(),
	}
	if err := storage.SaveSnapshot(e.store, snap); err != nil {
		e.log.WithError(err).Error("snapshot save failed; in-memory state unaffected")
	}
}

func (e *Engine) auditOp(ctx OpContext, op, actor, item string, res Result) {
	outcome := "success"
	if !res.OK {
		outcome = "failure"
	}
	e.auditLog.LogEvent(audit.Event{
		Timestamp: e.lastTS,
		Operation: op,
		ActorID:   actor,
		ItemID:    item,
		Result:    outcome,
		Reason:    string(res.Kind),
		Metadata:  map[string]string{"session": ctx.SessionID},
	})
}

// Register creates a new item master record in pending_verification state
// and appends the RegisterHerb record. No inventory is credited until the
// item passes verification. Quality gating before registration is the
// caller's policy (config.Policy.MinRegisterScore); the engine records
// whatever the collaborator decided to submit.
func (e *Engine) Register(ctx OpContext, collectorID, itemID, name, location string, quantity float64, unit string, quality record.Quality) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.items.Exists(itemID) {
		res := failure(ErrDuplicateItem, fmt.Sprintf("item %s is already registered", itemID))
		e.auditOp(ctx, "register", collectorID, itemID, res)
		return res
	}

	ts := e.now()
	q := quality
	blk := e.chain.Append(record.Record{
		Type:      record.TypeRegisterHerb,
		Timestamp: ts,
		ItemID:    itemID,
		Name:      name,
		Actor:     collectorID,
		Location:  location,
		Quantity:  quantity,
		Unit:      unit,
		Quality:   &q,
		Status:    record.StatusPendingVerification,
	})
	_ = e.items.Create(registry.Item{
		ItemID:     itemID,
		Name:       name,
		Origin:     location,
		Registrant: collectorID,
		Unit:       unit,
		Claimed:    quantity,
		Quality:    quality,
	})
	_ = e.items.AppendHistory(itemID, blk.Height)
	e.rep.Score(collectorID) // make the actor known at the initial score

	res := success(fmt.Sprintf("item %s registered, awaiting verification", itemID))
	e.auditOp(ctx, "register", collectorID, itemID, res)
	e.persist()
	return res
}

// VerifyReceipt runs the two-sided verification protocol. Within tolerance
// the item becomes verified and the verifier's inventory is credited with
// the measured quantity; outside it the item is disputed, the registrant is
// penalized, and a FraudAlert record lands on the chain.
func (e *Engine) VerifyReceipt(ctx OpContext, verifierID, itemID string, measured float64) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	item, ok := e.items.Get(itemID)
	if !ok || item.Status != record.StatusPendingVerification {
		res := failure(ErrNotAwaitingVerification, fmt.Sprintf("item %s is not awaiting verification", itemID))
		e.auditOp(ctx, "verify_receipt", verifierID, itemID, res)
		return res
	}

	tolerance := item.Claimed * e.policy.TolerancePct / 100
	difference := math.Abs(item.Claimed - measured)
	ts := e.now()

	if difference > tolerance {
		_ = e.items.SetStatus(itemID, record.StatusDisputed)
		e.rep.Adjust(item.Registrant, -e.policy.FraudPenalty)
		blk := e.chain.Append(record.Record{
			Type:      record.TypeFraudAlert,
			Timestamp: ts,
			ItemID:    itemID,
			Name:      item.Name,
			Actor:     verifierID,
			Claimed:   item.Claimed,
			Measured:  measured,
		})
		_ = e.items.AppendHistory(itemID, blk.Height)
		res := failure(ErrFraudDetected, fmt.Sprintf(
			"claimed %v %s but measured %v %s (tolerance %v): item disputed, registrant %s penalized",
			item.Claimed, item.Unit, measured, item.Unit, tolerance, item.Registrant))
		e.auditOp(ctx, "verify_receipt", verifierID, itemID, res)
		e.persist()
		return res
	}

	_ = e.items.SetStatus(itemID, record.StatusVerified)
	e.rep.Adjust(item.Registrant, e.policy.VerifyReward)
	e.rep.Adjust(verifierID, e.policy.VerifyReward)
	blk := e.chain.Append(record.Record{
		Type:      record.TypeVerifyReceipt,
		Timestamp: ts,
		ItemID:    itemID,
		Name:      item.Name,
		Actor:     verifierID,
		Quantity:  measured,
		Unit:      item.Unit,
	})
	_ = e.items.AppendHistory(itemID, blk.Height)
	// The measured quantity, not the claim, enters circulation.
	if err := e.inv.Credit(verifierID, itemID, item.Name, item.Unit, measured); err != nil {
		e.log.WithError(err).WithField("item", itemID).Error("inventory credit failed after verification")
	}

	res := success(fmt.Sprintf("item %s verified: %v %s credited to %s", itemID, measured, item.Unit, verifierID))
	e.auditOp(ctx, "verify_receipt", verifierID, itemID, res)
	e.persist()
	return res
}

// Transfer moves weight of a verified item between actors. Preconditions
// run in a fixed order so callers get stable error kinds.
func (e *Engine) Transfer(ctx OpContext, fromActor, toActor, itemID string, weight float64, location, unit string, quality record.Quality) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	fail := func(kind ErrorKind, msg string) Result {
		res := failure(kind, msg)
		e.auditOp(ctx, "transfer", fromActor, itemID, res)
		return res
	}

	entry, ok := e.inv.Get(fromActor, itemID)
	if !ok || entry.Quantity <= 0 {
		return fail(ErrItemNotFound, fmt.Sprintf("%s holds no stock of item %s", fromActor, itemID))
	}
	item, ok := e.items.Get(itemID)
	if !ok || item.Status != record.StatusVerified {
		return fail(ErrItemNotTransferable, fmt.Sprintf("item %s is not verified for transfer", itemID))
	}
	if entry.Unit != unit {
		return fail(ErrUnitMismatch, fmt.Sprintf("item %s is held in %s, not %s", itemID, entry.Unit, unit))
	}
	if weight > entry.Quantity {
		return fail(ErrInsufficientQuantity, fmt.Sprintf("requested %v %s but only %v available", weight, unit, entry.Quantity))
	}
	// Caller-side gate, re-checked here rather than trusted.
	if quality.Score < e.policy.MinTransferScore {
		return fail(ErrQualityBelowThreshold, fmt.Sprintf("quality score %d below transfer threshold %d", quality.Score, e.policy.MinTransferScore))
	}

	ts := e.now()
	_ = e.inv.Debit(fromActor, itemID, weight)
	if err := e.inv.Credit(toActor, itemID, entry.Name, entry.Unit, weight); err != nil {
		// Unit drift between actors for the same item id; restore and reject.
		_ = e.inv.Credit(fromActor, itemID, entry.Name, entry.Unit, weight)
		return fail(ErrUnitMismatch, err.Error())
	}
	q := quality
	blk := e.chain.Append(record.Record{
		Type:      record.TypeTransferHerb,
		Timestamp: ts,
		ItemID:    itemID,
		Name:      entry.Name,
		From:      fromActor,
		To:        toActor,
		Location:  location,
		Quantity:  weight,
		Unit:      unit,
		Quality:   &q,
	})
	_ = e.items.AppendHistory(itemID, blk.Height)

	res := success(fmt.Sprintf("%v %s of item %s moved from %s to %s", weight, unit, itemID, fromActor, toActor))
	e.auditOp(ctx, "transfer", fromActor, itemID, res)
	e.persist()
	return res
}

// ConsumeIntoProduct debits every used batch from the manufacturer's
// inventory and appends one UseHerb record referenced by each consumed
// item's history. The quality gate penalizes the manufacturer even when it
// rejects the call — the penalty is an intentional side effect of
// submitting sub-threshold product, not of succeeding.
func (e *Engine) ConsumeIntoProduct(ctx OpContext, manufacturerID, batchID, location string, usedBatches []record.UsedBatch, finalWeight float64, finalUnit string, quality record.Quality) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	fail := func(kind ErrorKind, msg string) Result {
		res := failure(kind, msg)
		e.auditOp(ctx, "consume", manufacturerID, batchID, res)
		return res
	}

	if quality.Score < e.policy.MinConsumeScore {
		e.rep.Adjust(manufacturerID, -e.policy.QualityGatePenalty)
		res := fail(ErrQualityBelowThreshold, fmt.Sprintf(
			"quality score %d below production threshold %d; reputation penalty applied", quality.Score, e.policy.MinConsumeScore))
		e.persist()
		return res
	}
	if !e.inv.HasActor(manufacturerID) {
		return fail(ErrManufacturerNotFound, fmt.Sprintf("manufacturer %s holds no inventory", manufacturerID))
	}
	if len(usedBatches) == 0 {
		return fail(ErrInsufficientOrMismatchedBatch, "no input batches supplied")
	}
	if _, taken := e.findUseRecord(batchID); taken {
		return fail(ErrDuplicateItem, fmt.Sprintf("batch id %s already has a production record", batchID))
	}

	// Collect every violation, not just the first. Requested units are
	// summed per item id so repeated entries are checked against the
	// balance in aggregate, not each in isolation.
	var violations []string
	requested := make(map[string]float64, len(usedBatches))
	for _, ub := range usedBatches {
		entry, ok := e.inv.Get(manufacturerID, ub.ItemID)
		requested[ub.ItemID] += ub.UnitsUsed
		switch {
		case !ok:
			violations = append(violations, fmt.Sprintf("%s: not in inventory", ub.ItemID))
		case entry.Unit != ub.Unit:
			violations = append(violations, fmt.Sprintf("%s: held in %s, not %s", ub.ItemID, entry.Unit, ub.Unit))
		case entry.Quantity < requested[ub.ItemID]:
			violations = append(violations, fmt.Sprintf("%s: need %v, have %v", ub.ItemID, requested[ub.ItemID], entry.Quantity))
		}
	}
	if len(violations) > 0 {
		return fail(ErrInsufficientOrMismatchedBatch, "cannot consume: "+strings.Join(violations, "; "))
	}

	ts := e.now()
	for _, ub := range usedBatches {
		if err := e.inv.Debit(manufacturerID, ub.ItemID, ub.UnitsUsed); err != nil {
			e.log.WithError(err).WithField("item", ub.ItemID).Error("inventory debit failed after batch validation")
		}
	}
	q := quality
	blk := e.chain.Append(record.Record{
		Type:        record.TypeUseHerb,
		Timestamp:   ts,
		BatchID:     batchID,
		Actor:       manufacturerID,
		Location:    location,
		Quality:     &q,
		UsedBatches: append([]record.UsedBatch(nil), usedBatches...),
		FinalWeight: finalWeight,
		FinalUnit:   finalUnit,
	})
	for _, ub := range usedBatches {
		_ = e.items.AppendHistory(ub.ItemID, blk.Height)
	}
	e.rep.Adjust(manufacturerID, e.policy.ConsumeReward)

	res := success(fmt.Sprintf("batch %s produced: %v %s from %d input batches", batchID, finalWeight, finalUnit, len(usedBatches)))
	e.auditOp(ctx, "consume", manufacturerID, batchID, res)
	e.persist()
	return res
}

// RecordScan registers a consumer scan of a finished-product unit id. The
// first scan wins; repeats return the original timestamp so the caller can
// warn about a possible counterfeit.
func (e *Engine) RecordScan(ctx OpContext, unitID string) scanlog.ScanResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	// Scan, audit, and persist all commit under the engine lock so the
	// snapshot can never lag a scan it claims to cover.
	res := e.scans.RecordScan(unitID)
	outcome := "duplicate"
	if res.FirstSeen {
		outcome = "first_seen"
		e.persist()
	}
	e.auditLog.LogEvent(audit.Event{
		Timestamp: res.FirstScanAt,
		Operation: "scan",
		ActorID:   ctx.SessionID,
		ItemID:    unitID,
		Result:    outcome,
	})
	return res
}
