package registry

import (
	"fmt"
	"sort"

	"herbledger/core/record"
)

// Item is the master record for one registered herb batch. History holds
// chain heights rather than record copies, so a record exists exactly once
// (in the chain) and the history cannot drift from it.
type Item struct {
	ItemID     string         `json:"itemId"`
	Name       string         `json:"name"`
	Origin     string         `json:"origin"`
	Registrant string         `json:"registrant"`
	Unit       string         `json:"unit"`
	Claimed    float64        `json:"claimed"`
	Quality    record.Quality `json:"quality"`
	Status     record.Status  `json:"status"`
	History    []uint64       `json:"history"`
}

// Registry holds every item master record ever created. Items are never
// deleted; status only moves pending_verification -> verified | disputed.
type Registry struct {
	items map[string]*Item
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*Item)}
}

// Exists reports whether an item id is already registered.
func (r *Registry) Exists(itemID string) bool {
	_, ok := r.items[itemID]
	return ok
}

// Create registers a new item master record in pending state.
func (r *Registry) Create(item Item) error {
	if r.Exists(item.ItemID) {
		return fmt.Errorf("item %s already registered", item.ItemID)
	}
	item.Status = record.StatusPendingVerification
	r.items[item.ItemID] = &item
	return nil
}

// Get returns a copy of the item master record.
func (r *Registry) Get(itemID string) (Item, bool) {
	it, ok := r.items[itemID]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// SetStatus transitions an item's lifecycle state. Only the two legal
// transitions out of pending are accepted.
func (r *Registry) SetStatus(itemID string, status record.Status) error {
	it, ok := r.items[itemID]
	if !ok {
		return fmt.Errorf("item %s not registered", itemID)
	}
	if it.Status != record.StatusPendingVerification {
		return fmt.Errorf("item %s is %s, cannot move to %s", itemID, it.Status, status)
	}
	if status != record.StatusVerified && status != record.StatusDisputed {
		return fmt.Errorf("illegal status transition to %s", status)
	}
	it.Status = status
	return nil
}

// AppendHistory links a chain height onto the item's ordered history.
func (r *Registry) AppendHistory(itemID string, height uint64) error {
	it, ok := r.items[itemID]
	if !ok {
		return fmt.Errorf("item %s not registered", itemID)
	}
	it.History = append(it.History, height)
	return nil
}

// Pending returns items still awaiting verification, sorted by id.
func (r *Registry) Pending() []Item {
	var out []Item
	for _, it := range r.items {
		if it.Status == record.StatusPendingVerification {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// Export returns all item records for snapshot persistence.
func (r *Registry) Export() map[string]Item {
	out := make(map[string]Item, len(r.items))
	for id, it := range r.items {
		cp := *it
		cp.History = append([]uint64(nil), it.History...)
		out[id] = cp
	}
	return out
}

// Import replaces the registry contents from a persisted snapshot.
func (r *Registry) Import(data map[string]Item) error {
	items := make(map[string]*Item, len(data))
	for id, it := range data {
		switch it.Status {
		case record.StatusPendingVerification, record.StatusVerified, record.StatusDisputed:
		default:
			return fmt.Errorf("persisted item %s carries unknown status %q", id, it.Status)
		}
		cp := it
		cp.History = append([]uint64(nil), it.History...)
		items[id] = &cp
	}
	r.items = items
	return nil
}
