package inventory

import (
	"fmt"
	"sort"
)

// Entry is one actor's holding of a single item.
type Entry struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
}

// Store maps actor id -> item id -> entry. All mutation goes through
// Credit and Debit so the quantity >= 0 and unit-consistency invariants
// hold; the contract engine serializes callers.
type Store struct {
	holdings map[string]map[string]*Entry
}

// NewStore returns an empty inventory store.
func NewStore() *Store {
	return &Store{holdings: make(map[string]map[string]*Entry)}
}

// HasActor reports whether the actor holds any inventory at all.
func (s *Store) HasActor(actorID string) bool {
	return len(s.holdings[actorID]) > 0
}

// Get returns a copy of the actor's entry for an item.
func (s *Store) Get(actorID, itemID string) (Entry, bool) {
	e, ok := s.holdings[actorID][itemID]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Credit adds quantity to the actor's holding, creating the entry on first
// credit. Crediting with a unit different from the recorded one is a
// programming error upstream and is rejected.
func (s *Store) Credit(actorID, itemID, name, unit string, quantity float64) error {
	if quantity < 0 {
		return fmt.Errorf("credit quantity must be non-negative, got %v", quantity)
	}
	if s.holdings[actorID] == nil {
		s.holdings[actorID] = make(map[string]*Entry)
	}
	e, ok := s.holdings[actorID][itemID]
	if !ok {
		s.holdings[actorID][itemID] = &Entry{ItemID: itemID, Name: name, Unit: unit, Quantity: quantity}
		return nil
	}
	if e.Unit != unit {
		return fmt.Errorf("item %s held in %s, cannot credit in %s", itemID, e.Unit, unit)
	}
	e.Quantity += quantity
	return nil
}

// Debit removes quantity from the actor's holding. The caller has already
// validated availability; Debit re-checks so the non-negativity invariant
// can never break.
func (s *Store) Debit(actorID, itemID string, quantity float64) error {
	e, ok := s.holdings[actorID][itemID]
	if !ok {
		return fmt.Errorf("actor %s holds no item %s", actorID, itemID)
	}
	if quantity < 0 {
		return fmt.Errorf("debit quantity must be non-negative, got %v", quantity)
	}
	if quantity > e.Quantity {
		return fmt.Errorf("debit %v exceeds balance %v for item %s", quantity, e.Quantity, itemID)
	}
	e.Quantity -= quantity
	return nil
}

// List returns copies of the actor's entries sorted by item id.
func (s *Store) List(actorID string) []Entry {
	items := s.holdings[actorID]
	out := make([]Entry, 0, len(items))
	for _, e := range items {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// Export returns the full holdings for snapshot persistence.
func (s *Store) Export() map[string]map[string]Entry {
	out := make(map[string]map[string]Entry, len(s.holdings))
	for actor, items := range s.holdings {
		m := make(map[string]Entry, len(items))
		for id, e := range items {
			m[id] = *e
		}
		out[actor] = m
	}
	return out
}

// Import replaces the holdings from a persisted snapshot.
func (s *Store) Import(data map[string]map[string]Entry) error {
	holdings := make(map[string]map[string]*Entry, len(data))
	for actor, items := range data {
		m := make(map[string]*Entry, len(items))
		for id, e := range items {
			if e.Quantity < 0 {
				return fmt.Errorf("persisted inventory for %s/%s is negative: %v", actor, id, e.Quantity)
			}
			cp := e
			m[id] = &cp
		}
		holdings[actor] = m
	}
	s.holdings = holdings
	return nil
}
