package collections

import (
	"fmt"
	"iter"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// IndexedMap keeps its values in a dense slice ordered by insertion and
// a key table pointing into that slice. Lookup by key is O(1), iteration
// walks the slice, and removal is O(n) because every later position has to
// be relinked to keep insertion order.
//
// Positions handed out by IndexOf, All or Backward, and pointers handed out
// by Ref, RefIndex, MustGet and MustGetIndex, are valid only until the next
// Insert, InsertOrAssign of a new key, Remove, Delete, Clear or Reserve.
// The zero value is an empty map ready to use. IndexedMap is not safe for
// concurrent use.
type IndexedMap[K comparable, V any] struct {
	indices map[K]int
	values  []V
	// capacity the index table was last allocated with
	reserved int
}

var _ Map[string, int] = (*IndexedMap[string, int])(nil)

func NewIndexedMap[K comparable, V any]() *IndexedMap[K, V] {
	return &IndexedMap[K, V]{
		indices: make(map[K]int),
		values:  make([]V, 0),
	}
}

func NewIndexedMapWithCapacity[K comparable, V any](capacity int) *IndexedMap[K, V] {
	return &IndexedMap[K, V]{
		indices:  make(map[K]int, capacity),
		values:   make([]V, 0, capacity),
		reserved: capacity,
	}
}

func (m *IndexedMap[K, V]) Size() int {
	return len(m.values)
}

func (m *IndexedMap[K, V]) IsEmpty() bool {
	return len(m.values) == 0
}

func (m *IndexedMap[K, V]) Capacity() int {
	return cap(m.values)
}

// Reserve preallocates room for n entries in both the value slice and the
// key table. It never changes the contents.
func (m *IndexedMap[K, V]) Reserve(n int) {
	if extra := n - len(m.values); extra > 0 {
		m.values = slices.Grow(m.values, extra)
	}
	if n > m.reserved {
		grown := make(map[K]int, n)
		maps.Copy(grown, m.indices)
		m.indices = grown
		m.reserved = n
	}
}

func (m *IndexedMap[K, V]) Clear() {
	clear(m.indices)
	clear(m.values)
	m.values = m.values[:0]
}

// Data exposes the backing slice. Elements may be modified in place but the
// slice itself must not be appended to or resliced by the caller.
func (m *IndexedMap[K, V]) Data() []V {
	return m.values
}

func (m *IndexedMap[K, V]) Contains(k K) bool {
	if _, ok := m.indices[k]; ok {
		return true
	}
	return false
}

func (m *IndexedMap[K, V]) IsIndexValid(index int) bool {
	return index >= 0 && index < len(m.values)
}

func (m *IndexedMap[K, V]) IndexOf(k K) (int, bool) {
	index, ok := m.indices[k]
	return index, ok
}

// Insert appends v under k. It returns false without touching the map when
// k is already present.
func (m *IndexedMap[K, V]) Insert(k K, v V) bool {
	if m.Contains(k) {
		return false
	}
	if m.indices == nil {
		m.indices = make(map[K]int)
	}
	m.values = append(m.values, v)
	m.indices[k] = len(m.values) - 1
	return true
}

// InsertOrAssign overwrites the value of an existing key in place and
// returns false, or inserts a new key and returns true.
func (m *IndexedMap[K, V]) InsertOrAssign(k K, v V) bool {
	if index, ok := m.indices[k]; ok {
		m.values[index] = v
		return false
	}
	return m.Insert(k, v)
}

// Remove deletes k and shifts every later value down by one position,
// relinking the keys that pointed at them. This costs O(n) per call.
func (m *IndexedMap[K, V]) Remove(k K) bool {
	index, ok := m.indices[k]
	if !ok {
		return false
	}
	for key, position := range m.indices {
		if position > index {
			m.indices[key] = position - 1
		}
	}
	delete(m.indices, k)
	n := len(m.values)
	m.values = slices.Delete(m.values, index, index+1)
	// drop the stale tail slot so its value can be collected
	clear(m.values[n-1 : n])
	return true
}

func (m *IndexedMap[K, V]) Put(k K, v V, forced bool) error {
	if forced {
		m.InsertOrAssign(k, v)
		return nil
	}
	if !m.Insert(k, v) {
		return ErrValueExisted
	}
	return nil
}

func (m *IndexedMap[K, V]) Delete(k K) error {
	if !m.Remove(k) {
		return ErrValueNotExisted
	}
	return nil
}

func (m *IndexedMap[K, V]) Get(k K) (v V, err error) {
	index, ok := m.indices[k]
	if !ok {
		return v, ErrValueNotExisted
	}
	return m.values[index], nil
}

func (m *IndexedMap[K, V]) GetIndex(index int) (v V, err error) {
	if !m.IsIndexValid(index) {
		return v, ErrIndexOutOfRange
	}
	return m.values[index], nil
}

// Ref returns a pointer to the stored value of k so it can be updated in
// place.
func (m *IndexedMap[K, V]) Ref(k K) (*V, bool) {
	index, ok := m.indices[k]
	if !ok {
		return nil, false
	}
	return &m.values[index], true
}

func (m *IndexedMap[K, V]) RefIndex(index int) (*V, bool) {
	if !m.IsIndexValid(index) {
		return nil, false
	}
	return &m.values[index], true
}

// MustGet is Ref for callers that already know k is present. It panics
// otherwise.
func (m *IndexedMap[K, V]) MustGet(k K) *V {
	v, ok := m.Ref(k)
	if !ok {
		panic(fmt.Errorf("%w: key %v", ErrValueNotExisted, k))
	}
	return v
}

func (m *IndexedMap[K, V]) MustGetIndex(index int) *V {
	v, ok := m.RefIndex(index)
	if !ok {
		panic(fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, len(m.values)))
	}
	return v
}

// Keys returns the keys ordered by position.
func (m *IndexedMap[K, V]) Keys() []K {
	arr := make([]K, len(m.values))
	for k, index := range m.indices {
		arr[index] = k
	}
	return arr
}

func (m *IndexedMap[K, V]) Values() []V {
	return slices.Clone(m.values)
}

// All yields positions and values from first to last. The map must not be
// mutated while the sequence is being consumed.
func (m *IndexedMap[K, V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i, v := range m.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Backward is All in reverse order.
func (m *IndexedMap[K, V]) Backward() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i := len(m.values) - 1; i >= 0; i-- {
			if !yield(i, m.values[i]) {
				return
			}
		}
	}
}

func (m *IndexedMap[K, V]) Clone() *IndexedMap[K, V] {
	return &IndexedMap[K, V]{
		indices:  maps.Clone(m.indices),
		values:   slices.Clone(m.values),
		reserved: len(m.indices),
	}
}

// Validate checks that every key points at a distinct valid position and
// that there are as many keys as values.
func (m *IndexedMap[K, V]) Validate() error {
	if len(m.indices) != len(m.values) {
		return fmt.Errorf("%w: %d keys for %d values", ErrCorrupted, len(m.indices), len(m.values))
	}
	owners := make([]bool, len(m.values))
	for k, index := range m.indices {
		if !m.IsIndexValid(index) {
			return fmt.Errorf("%w: key %v points at %d, size %d", ErrCorrupted, k, index, len(m.values))
		}
		if owners[index] {
			return fmt.Errorf("%w: position %d has more than one key", ErrCorrupted, index)
		}
		owners[index] = true
	}
	return nil
}

func (m IndexedMap[K, V]) String() string {
	return fmt.Sprint(m.values)
}
