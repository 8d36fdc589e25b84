package keypath

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Elements adapts a slice to Iterable. Field names are the bracketed indices
// ("[0]", "[1]", ...).
type Elements[E any] []E

// Fields returns one field per element, in index order.
func (e Elements[E]) Fields() []Field {
	fields := make([]Field, len(e))
	for i, v := range e {
		fields[i] = Field{Name: IndexName(i), Value: v}
	}
	return fields
}

// WithField returns a copy of e with the element named name replaced.
func (e Elements[E]) WithField(name string, value any) (any, bool) {
	i, ok := ParseIndex(name)
	if !ok || i >= len(e) {
		return nil, false
	}
	v, ok := value.(E)
	if !ok {
		return nil, false
	}
	out := slices.Clone(e)
	out[i] = v
	return out, true
}

// Entries adapts a map to Iterable. Field names are the formatted keys,
// enumerated in ascending key order so that paths are deterministic.
type Entries[K cmp.Ordered, V any] map[K]V

// Fields returns one field per entry, sorted by key.
func (e Entries[K, V]) Fields() []Field {
	keys := make([]K, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fields := make([]Field, len(keys))
	for i, k := range keys {
		fields[i] = Field{Name: fmt.Sprint(k), Value: e[k]}
	}
	return fields
}

// WithField returns a copy of e with the entry whose formatted key is name
// replaced. Entries cannot be added.
func (e Entries[K, V]) WithField(name string, value any) (any, bool) {
	v, ok := value.(V)
	if !ok {
		return nil, false
	}
	for k := range e {
		if fmt.Sprint(k) == name {
			out := make(Entries[K, V], len(e))
			for kk, vv := range e {
				out[kk] = vv
			}
			out[k] = v
			return out, true
		}
	}
	return nil, false
}

// IndexName returns the field name used for the i-th element of a list.
func IndexName(i int) string {
	return fmt.Sprintf("[%d]", i)
}

// ParseIndex is the inverse of IndexName.
func ParseIndex(name string) (int, bool) {
	if !strings.HasPrefix(name, "[") || !strings.HasSuffix(name, "]") {
		return 0, false
	}
	i, err := strconv.Atoi(name[1 : len(name)-1])
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}
