package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/code-payments/code-vault/pkg/data/event"
	"github.com/code-payments/code-vault/pkg/database/query"
)

type store struct {
	mu      sync.Mutex
	records []*event.Record
	last    uint64
}

type ById []*event.Record

func (a ById) Len() int           { return len(a) }
func (a ById) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ById) Less(i, j int) bool { return a[i].Id < a[j].Id }

// New returns a new in memory event.Store
func New() event.Store {
	return &store{}
}

// Save implements event.Store.Save
func (s *store) Save(_ context.Context, data *event.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByEventId(data.EventId); item != nil {
		return event.ErrEventExists
	}

	s.last++
	data.Id = s.last
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	s.records = append(s.records, data.Clone())
	return nil
}

// Get implements event.Store.Get
func (s *store) Get(_ context.Context, eventId string) (*event.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByEventId(eventId); item != nil {
		return item.Clone(), nil
	}
	return nil, event.ErrEventNotFound
}

// GetAllByTransaction implements event.Store.GetAllByTransaction
func (s *store) GetAllByTransaction(_ context.Context, transaction string) ([]*event.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.findBy(func(r *event.Record) bool {
		return r.Transaction == transaction
	})
	if len(items) == 0 {
		return nil, event.ErrEventNotFound
	}
	return cloneAll(items), nil
}

// GetAll implements event.Store.GetAll
func (s *store) GetAll(_ context.Context, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*event.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.filter(s.records, cursor, limit, direction)
	if len(res) == 0 {
		return nil, event.ErrEventNotFound
	}
	return cloneAll(res), nil
}

// GetAllByProgram implements event.Store.GetAllByProgram
func (s *store) GetAllByProgram(_ context.Context, program string, opts ...query.Option) ([]*event.Record, error) {
	req, err := query.DefaultPaginationHandler(opts...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.findBy(func(r *event.Record) bool {
		return r.Program == program && req.InWindow(r.CreatedAt)
	})

	res := s.filter(items, req.Cursor, req.Limit, req.SortBy)
	if len(res) == 0 {
		return nil, event.ErrEventNotFound
	}
	return cloneAll(res), nil
}

func (s *store) findByEventId(eventId string) *event.Record {
	for _, item := range s.records {
		if item.EventId == eventId {
			return item
		}
	}
	return nil
}

func (s *store) findBy(predicate func(*event.Record) bool) []*event.Record {
	var res []*event.Record
	for _, item := range s.records {
		if predicate(item) {
			res = append(res, item)
		}
	}
	return res
}

func (s *store) filter(items []*event.Record, cursor query.Cursor, limit uint64, direction query.Ordering) []*event.Record {
	var start uint64
	if direction == query.Descending {
		start = s.last + 1
	}
	if len(cursor) > 0 {
		start = cursor.ToUint64()
	}

	var res []*event.Record
	for _, item := range items {
		if item.Id > start && direction == query.Ascending {
			res = append(res, item)
		}
		if item.Id < start && direction == query.Descending {
			res = append(res, item)
		}
	}

	if direction == query.Descending {
		sort.Sort(sort.Reverse(ById(res)))
	}

	if limit > 0 && len(res) > int(limit) {
		return res[:limit]
	}
	return res
}

func cloneAll(items []*event.Record) []*event.Record {
	res := make([]*event.Record, len(items))
	for i, item := range items {
		res[i] = item.Clone()
	}
	return res
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.last = 0
}
