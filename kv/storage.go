package kv

import (
	"iter"

	"github.com/indigo-web/utils/strcomp"
)

type Pair struct {
	Key, Value string
}

// Storage is an associative structure for storing (string, string) pairs with unique
// case-insensitive keys. It acts as a map but uses linear search instead, which proves to
// be more efficient on relatively low amount of entries, which is the case for headers.
type Storage struct {
	pairs []Pair
}

func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// NewFromMap returns a new instance with already inserted values from given map.
// Note: as maps are unordered, resulting underlying structure will also contain unordered
// pairs.
func NewFromMap(m map[string]string) *Storage {
	kv := NewPrealloc(len(m))

	for key, value := range m {
		kv.Set(key, value)
	}

	return kv
}

// Set inserts a pair, overriding the value of an already existing key.
func (s *Storage) Set(key, value string) *Storage {
	if i := s.index(key); i != -1 {
		s.pairs[i].Value = value
		return s
	}

	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// Value returns the value corresponding to the key. Otherwise, empty string is returned
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the value corresponding to the key or custom value, defined
// via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found. If it wasn't, it'll
// be an empty string.
func (s *Storage) Get(key string) (value string, found bool) {
	if i := s.index(key); i != -1 {
		return s.pairs[i].Value, true
	}

	return "", false
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	return s.index(key) != -1
}

// Delete removes the entry of the key, if any.
func (s *Storage) Delete(key string) *Storage {
	if i := s.index(key); i != -1 {
		s.pairs = append(s.pairs[:i], s.pairs[i+1:]...)
	}

	return s
}

// Keys returns all the keys.
func (s *Storage) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key) {
				break
			}
		}
	}
}

// Pairs returns an iterator over the pairs.
func (s *Storage) Pairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				break
			}
		}
	}
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Clone creates a deep copy, which may be used later or stored somewhere safely.
func (s *Storage) Clone() *Storage {
	return &Storage{
		pairs: clone(s.pairs),
	}
}

// Expose exposes the underlying pairs slice.
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Clear all the entries. However, all the allocated space won't be freed.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}

func (s *Storage) index(key string) int {
	for i, pair := range s.pairs {
		if strcomp.EqualFold(key, pair.Key) {
			return i
		}
	}

	return -1
}

func clone[T any](source []T) []T {
	if len(source) == 0 {
		return nil
	}

	newSlice := make([]T, len(source))
	copy(newSlice, source)

	return newSlice
}
