// Package selector derives read-only views from the store state.
//
// Selectors are memoized on the Version of the collections they read, so
// repeated calls against an unchanged state return the cached result
// without recomputing it. Returned slices are shared between callers and
// must not be modified.
package selector

import gosync "sync"

// Memo caches the result of the last computation together with the key of
// the inputs that produced it. It is safe for concurrent use.
type Memo[K comparable, R any] struct {
	mu     gosync.Mutex
	key    K
	result R
	valid  bool
	misses int
}

// Get returns the cached result when key matches the last key, and
// otherwise calls compute and caches its result under key.
func (m *Memo[K, R]) Get(key K, compute func() R) R {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.key == key {
		return m.result
	}
	m.result = compute()
	m.key = key
	m.valid = true
	m.misses++
	return m.result
}

// Recomputations reports how many times compute has run.
func (m *Memo[K, R]) Recomputations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.misses
}
