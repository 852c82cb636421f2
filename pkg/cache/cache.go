package cache

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	ErrKeyExists  = errors.New("key already exists in cache")
	ErrOverBudget = errors.New("entry weight exceeds cache budget")
)

// Cache is a least recently used cache bounded by the total weight of its
// entries rather than their count. It is safe for concurrent use.
type Cache[V any] struct {
	log *logrus.Entry

	mu      sync.Mutex
	entries map[string]*entry[V]
	head    *entry[V]
	tail    *entry[V]
	weight  int
	budget  int
}

type entry[V any] struct {
	next   *entry[V]
	prev   *entry[V]
	key    string
	value  V
	weight int
}

func New[V any](name string, budget int) *Cache[V] {
	return &Cache[V]{
		log:     logrus.StandardLogger().WithFields(logrus.Fields{"type": "cache", "cache": name}),
		entries: make(map[string]*entry[V]),
		budget:  budget,
	}
}

// Insert adds a new entry as the most recently used, evicting the least
// recently used entries until the cache is back within budget.
func (c *Cache[V]) Insert(key string, value V, weight int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		return ErrKeyExists
	}
	if weight > c.budget {
		return ErrOverBudget
	}

	e := &entry[V]{
		key:    key,
		value:  value,
		weight: weight,
	}
	c.pushFront(e)
	c.entries[key] = e
	c.weight += weight

	for c.weight > c.budget && c.tail != nil {
		evicted := c.tail
		c.unlink(evicted)
		delete(c.entries, evicted.key)
		c.weight -= evicted.weight

		c.log.WithFields(logrus.Fields{
			"weight": evicted.weight,
			"spare":  c.budget - c.weight,
		}).Trace("evicted cache entry")
	}

	return nil
}

// Retrieve returns the entry for key, marking it as most recently used
func (c *Cache[V]) Retrieve(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	if e != c.head {
		c.unlink(e)
		c.pushFront(e)
	}

	return e.value, true
}

func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *Cache[V]) Weight() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.weight
}

func (c *Cache[V]) Budget() int {
	return c.budget
}

func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.head = nil
	c.tail = nil
	c.entries = make(map[string]*entry[V])
	c.weight = 0
}

func (c *Cache[V]) pushFront(e *entry[V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Cache[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.next = nil
	e.prev = nil
}
