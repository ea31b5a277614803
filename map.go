package automaton

import (
	"iter"
	"sync"
)

// Hashable is implemented by keys of a HashMap.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// HashMap is a chained hash table keyed by Hashable values. It is safe for concurrent use.
type HashMap[K Hashable, V any] struct {
	mutex      sync.RWMutex
	buckets    []*entry[K, V]
	size       int
	mask       uint64
	loadFactor float64
}

type entry[K Hashable, V any] struct {
	key   K
	value V
	next  *entry[K, V]
}

// NewHashMap creates a table with room for the WithCapacity hint, rounded up to a power of two.
func NewHashMap[K Hashable, V any](opts ...Option) *HashMap[K, V] {
	cfg := newConfig(opts...)

	capacity := 1
	for capacity < cfg.capacity {
		capacity <<= 1
	}

	return &HashMap[K, V]{
		buckets:    make([]*entry[K, V], capacity),
		mask:       uint64(capacity - 1),
		loadFactor: cfg.loadFactor,
	}
}

// Set inserts or replaces the value of key.
func (m *HashMap[K, V]) Set(key K, value V) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if e := m.find(key); e != nil {
		e.value = value
		return
	}
	m.insert(key, value)
}

// GetOrSet returns the value stored for key; if there is none it stores value and returns it with
// loaded set to false.
func (m *HashMap[K, V]) GetOrSet(key K, value V) (actual V, loaded bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if e := m.find(key); e != nil {
		return e.value, true
	}
	m.insert(key, value)
	return value, false
}

// Get returns the value of key.
func (m *HashMap[K, V]) Get(key K) (V, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if e := m.find(key); e != nil {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Delete removes key.
func (m *HashMap[K, V]) Delete(key K) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	index := key.Hash() & m.mask
	var prev *entry[K, V]
	for e := m.buckets[index]; e != nil; prev, e = e, e.next {
		if e.key.Equals(key) {
			if prev == nil {
				m.buckets[index] = e.next
			} else {
				prev.next = e.next
			}
			m.size--
			return
		}
	}
}

// Size returns the number of keys.
func (m *HashMap[K, V]) Size() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.size
}

// All iterates over the entries in bucket order. The table must not be modified during iteration.
func (m *HashMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, head := range m.buckets {
			for e := head; e != nil; e = e.next {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}

func (m *HashMap[K, V]) find(key K) *entry[K, V] {
	for e := m.buckets[key.Hash()&m.mask]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e
		}
	}
	return nil
}

// insert prepends a new entry to its chain and grows the table once the load factor is exceeded.
func (m *HashMap[K, V]) insert(key K, value V) {
	index := key.Hash() & m.mask
	m.buckets[index] = &entry[K, V]{key: key, value: value, next: m.buckets[index]}
	m.size++

	if float64(m.size)/float64(len(m.buckets)) > m.loadFactor {
		m.resize()
	}
}

func (m *HashMap[K, V]) resize() {
	newCap := len(m.buckets) << 1
	newBuckets := make([]*entry[K, V], newCap)
	newMask := uint64(newCap - 1)

	for _, head := range m.buckets {
		for e := head; e != nil; {
			next := e.next
			index := e.key.Hash() & newMask
			e.next = newBuckets[index]
			newBuckets[index] = e
			e = next
		}
	}

	m.buckets = newBuckets
	m.mask = newMask
}
