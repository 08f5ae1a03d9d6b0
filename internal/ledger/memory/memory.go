package memory

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"smartspend/internal/core"
)

// Store owns the session's transactions. The backing slice has no
// meaningful order; listings are sorted on the way out.
type Store struct {
	mu     sync.Mutex
	items  []core.Transaction
	lastID int64
}

func New() *Store {
	return &Store{}
}

// Load replaces the collection with txs. Validation is the loader's job.
func (s *Store) Load(txs []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Transaction(nil), txs...)
	s.lastID = 0
	for _, t := range s.items {
		s.lastID = max(s.lastID, t.ID)
	}
}

// NextID returns the id the next Add will assign.
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID()
}

// nextID is max(existing)+1, and never drops below an id already issued in
// this session, so deleting the newest record does not free its id.
func (s *Store) nextID() int64 {
	return s.lastID + 1
}

// Add validates and appends a new transaction, returning its id. Category
// and description are stored normalized so a save and reload returns them
// unchanged.
func (s *Store) Add(date core.Date, kind core.Kind, category, description string, amount core.Money) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := core.Transaction{
		ID:          s.nextID(),
		Date:        date,
		Kind:        kind,
		Category:    core.NormalizeText(category),
		Description: core.NormalizeText(description),
		Amount:      amount,
	}
	if err := t.Validate(); err != nil {
		return 0, err
	}
	s.items = append(s.items, t)
	s.lastID = t.ID
	return t.ID, nil
}

// DeleteByID removes the transaction with id. It reports false when no
// such transaction exists.
func (s *Store) DeleteByID(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.items, func(t core.Transaction) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// Get returns the transaction with id.
func (s *Store) Get(id int64) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.items {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// List returns every transaction ordered by date, then id.
func (s *Store) List() []core.Transaction {
	return s.filter(func(core.Transaction) bool { return true })
}

// ListByCategory is List restricted to a case-insensitive category match.
func (s *Store) ListByCategory(category string) []core.Transaction {
	return s.filter(func(t core.Transaction) bool {
		return strings.EqualFold(t.Category, category)
	})
}

func (s *Store) filter(keep func(core.Transaction) bool) []core.Transaction {
	s.mu.Lock()
	out := make([]core.Transaction, 0, len(s.items))
	for _, t := range s.items {
		if keep(t) {
			out = append(out, t)
		}
	}
	s.mu.Unlock()

	slices.SortFunc(out, byDateThenID)
	return out
}

func byDateThenID(a, b core.Transaction) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Summarize aggregates the whole collection.
func (s *Store) Summarize() core.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Summarize(s.items)
}

// Snapshot returns an unsorted copy for persisting.
func (s *Store) Snapshot() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
