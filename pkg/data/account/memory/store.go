package memory

import (
	"context"
	"sync"
	"time"

	"github.com/code-payments/code-vault/pkg/data/account"
)

type store struct {
	mu      sync.Mutex
	records map[string]*account.Record
	last    uint64
}

// New returns a new in memory account.Store
func New() account.Store {
	return &store{
		records: make(map[string]*account.Record),
	}
}

// Get implements account.Store.Get
func (s *store) Get(_ context.Context, address string) (*account.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.records[address]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return item.Clone(), nil
}

// GetBatch implements account.Store.GetBatch
func (s *store) GetBatch(_ context.Context, addresses ...string) (map[string]*account.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make(map[string]*account.Record)
	for _, address := range addresses {
		if item, ok := s.records[address]; ok {
			res[address] = item.Clone()
		}
	}
	return res, nil
}

// SaveBatch implements account.Store.SaveBatch
func (s *store) SaveBatch(_ context.Context, records ...*account.Record) error {
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if _, ok := seen[record.Address]; ok {
			return account.ErrStaleAccountState
		}
		seen[record.Address] = struct{}{}

		var currentVersion uint64
		if item, ok := s.records[record.Address]; ok {
			currentVersion = item.Version
		}
		if record.Version != currentVersion {
			return account.ErrStaleAccountState
		}
	}

	now := time.Now()
	for _, record := range records {
		if item, ok := s.records[record.Address]; ok {
			record.Id = item.Id
		} else {
			s.last++
			record.Id = s.last
		}

		record.Version++
		record.LastUpdatedAt = now

		s.records[record.Address] = record.Clone()
	}

	return nil
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*account.Record)
	s.last = 0
}
