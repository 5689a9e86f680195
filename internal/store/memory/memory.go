// Package memory implements the store ports on process-local maps. It is the
// default backend for development and the fixture backend for tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"finnexus/internal/core"
	"finnexus/internal/store"
)

type Store struct {
	mu           sync.RWMutex
	transactions map[string]core.Transaction
	taxSettings  []core.TaxSetting
}

var (
	_ store.TransactionStore = (*Store)(nil)
	_ store.TaxSettingStore  = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		transactions: make(map[string]core.Transaction),
	}
}

// ListTransactions returns every transaction ordered by date descending, then
// id, so pagination-free consumers render newest entries first.
func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Key() != out[j].Date.Key() {
			return out[i].Date.Key() > out[j].Date.Key()
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transactions[id]
	if !ok {
		return core.Transaction{}, store.ErrNotFound
	}
	return t, nil
}

func (s *Store) CreateTransaction(ctx context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions[t.ID] = t
	return nil
}

func (s *Store) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[t.ID]; !ok {
		return store.ErrNotFound
	}
	s.transactions[t.ID] = t
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) ClearTransactions(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = make(map[string]core.Transaction)
	return nil
}

func (s *Store) ListTaxSettings(ctx context.Context) ([]core.TaxSetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.TaxSetting, len(s.taxSettings))
	copy(out, s.taxSettings)
	return out, nil
}

func (s *Store) CreateTaxSetting(ctx context.Context, setting core.TaxSetting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.taxSettings = append(s.taxSettings, setting)
	return nil
}

func (s *Store) DeleteTaxSetting(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, setting := range s.taxSettings {
		if setting.ID == id {
			s.taxSettings = append(s.taxSettings[:i], s.taxSettings[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}
