// Package entity provides a normalized, ordered collection of records keyed
// by string ID.
//
// A Collection is an immutable value: every mutating method returns a new
// Collection and leaves the receiver untouched, so a collection handed to a
// reader never changes underneath it. Each value carries a Version that is
// unique across the process; two collections with the same Version hold the
// same records in the same order.
package entity

import (
	"slices"
	"sync/atomic"
)

var versionSeq atomic.Uint64

func nextVersion() uint64 {
	return versionSeq.Add(1)
}

// Options configures how a Collection identifies, orders and merges records.
type Options[T any] struct {
	// ID extracts the unique key of a record. Required.
	ID func(T) string

	// Compare orders records for iteration. Records comparing equal keep
	// their previous relative order. When nil, first-insertion order is kept.
	Compare func(a, b T) int

	// Merge combines an existing record with an incoming one during
	// UpsertMany. When nil, the incoming record replaces the existing one.
	Merge func(existing, incoming T) T
}

// Collection is an ordered map from ID to record.
type Collection[T any] struct {
	opts     *Options[T]
	ids      []string
	entities map[string]T
	version  uint64
}

// New returns an empty collection using opts.
func New[T any](opts Options[T]) Collection[T] {
	if opts.ID == nil {
		panic("entity: Options.ID is required")
	}
	o := opts
	return Collection[T]{
		opts:     &o,
		entities: map[string]T{},
		version:  nextVersion(),
	}
}

// Version identifies this collection value.
func (c Collection[T]) Version() uint64 {
	return c.version
}

// Len returns the number of records.
func (c Collection[T]) Len() int {
	return len(c.ids)
}

// IDs returns the record IDs in iteration order.
func (c Collection[T]) IDs() []string {
	return slices.Clone(c.ids)
}

// All returns the records in iteration order.
func (c Collection[T]) All() []T {
	out := make([]T, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.entities[id])
	}
	return out
}

// ByID returns the record with the given ID, if present.
func (c Collection[T]) ByID(id string) (T, bool) {
	v, ok := c.entities[id]
	return v, ok
}

// Has reports whether a record with the given ID exists.
func (c Collection[T]) Has(id string) bool {
	_, ok := c.entities[id]
	return ok
}

// AddOne inserts record, replacing any record with the same ID.
func (c Collection[T]) AddOne(record T) Collection[T] {
	next := c.clone()
	next.put(record)
	next.sort()
	return next
}

// UpsertMany merges records by ID: matching IDs are updated (through
// Options.Merge when set) and new IDs are inserted. Later records in the
// batch win over earlier ones with the same ID.
func (c Collection[T]) UpsertMany(records []T) Collection[T] {
	next := c.clone()
	for _, r := range records {
		id := next.opts.ID(r)
		if existing, ok := next.entities[id]; ok && next.opts.Merge != nil {
			r = next.opts.Merge(existing, r)
		}
		next.put(r)
	}
	next.sort()
	return next
}

// SetAll replaces the contents of the collection with records.
func (c Collection[T]) SetAll(records []T) Collection[T] {
	next := Collection[T]{
		opts:     c.opts,
		entities: make(map[string]T, len(records)),
		version:  nextVersion(),
	}
	for _, r := range records {
		next.put(r)
	}
	next.sort()
	return next
}

// UpdateOne applies fn to the record with the given ID. It returns the
// receiver unchanged when no such record exists.
func (c Collection[T]) UpdateOne(id string, fn func(T) T) Collection[T] {
	existing, ok := c.entities[id]
	if !ok {
		return c
	}
	next := c.clone()
	updated := fn(existing)
	// The ID of a record is fixed; fn must not move it.
	next.entities[id] = updated
	next.sort()
	return next
}

// UpdateAll applies fn to every record.
func (c Collection[T]) UpdateAll(fn func(T) T) Collection[T] {
	next := c.clone()
	for id, v := range next.entities {
		next.entities[id] = fn(v)
	}
	next.sort()
	return next
}

func (c Collection[T]) clone() Collection[T] {
	entities := make(map[string]T, len(c.entities))
	for id, v := range c.entities {
		entities[id] = v
	}
	return Collection[T]{
		opts:     c.opts,
		ids:      slices.Clone(c.ids),
		entities: entities,
		version:  nextVersion(),
	}
}

// put stores r without re-sorting. The receiver must be a fresh clone.
func (c *Collection[T]) put(r T) {
	id := c.opts.ID(r)
	if _, ok := c.entities[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.entities[id] = r
}

func (c *Collection[T]) sort() {
	if c.opts.Compare == nil {
		return
	}
	slices.SortStableFunc(c.ids, func(a, b string) int {
		return c.opts.Compare(c.entities[a], c.entities[b])
	})
}
