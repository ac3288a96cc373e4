package store

import (
	gosync "sync"
	"sync/atomic"

	"github.com/golang/glog"
)

// request is one unit of work for the dispatch loop.
type request struct {
	cond   func(State) bool
	action Action
	done   chan bool
}

// Store owns the application State and applies actions to it one at a
// time on a single dispatch goroutine.
type Store struct {
	state   atomic.Pointer[State]
	queue   chan request
	stopCh  chan struct{}
	stopped chan struct{}

	mu      gosync.Mutex
	running bool
	closed  bool
	subs    map[int]chan struct{}
	nextSub int
}

// New creates a Store holding the initial state. Call Start before
// dispatching.
func New() *Store {
	s := &Store{
		queue:   make(chan request),
		stopCh:  make(chan struct{}),
		stopped: make(chan struct{}),
		subs:    make(map[int]chan struct{}),
	}
	initial := NewState()
	s.state.Store(&initial)
	return s
}

// Start launches the dispatch loop. Calling Start more than once has no
// effect.
func (s *Store) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || s.closed {
		return
	}
	s.running = true
	go s.run()
}

// Close stops the dispatch loop and waits for it to exit. Pending and
// future dispatches are dropped.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	wasRunning := s.running
	close(s.stopCh)
	s.mu.Unlock()

	if wasRunning {
		<-s.stopped
	}
}

// State returns the current state snapshot.
func (s *Store) State() State {
	return *s.state.Load()
}

// Dispatch applies a and returns once the new state is published. Actions
// dispatched before Start or after Close are dropped.
func (s *Store) Dispatch(a Action) {
	s.enqueue(nil, a)
}

// DispatchIf applies a only if cond holds for the current state. The check
// and the update happen in the same dispatch step, so no other action can
// run in between. It reports whether a was applied.
func (s *Store) DispatchIf(cond func(State) bool, a Action) bool {
	return s.enqueue(cond, a)
}

// Subscribe returns a channel that is signalled after every applied
// action. Signals are coalesced: a slow reader sees at least one signal
// after the latest change, not one per change. The returned func
// unsubscribes.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) enqueue(cond func(State) bool, a Action) bool {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		glog.Warningf("[store]not started, dropping %s", a.Type())
		return false
	}

	req := request{cond: cond, action: a, done: make(chan bool, 1)}

	select {
	case s.queue <- req:
	case <-s.stopCh:
		glog.V(1).Infof("[store]closed, dropping %s", a.Type())
		return false
	}

	select {
	case applied := <-req.done:
		return applied
	case <-s.stopCh:
		return false
	}
}

func (s *Store) run() {
	defer close(s.stopped)

	for {
		select {
		case <-s.stopCh:
			return
		case req := <-s.queue:
			req.done <- s.apply(req)
		}
	}
}

// apply runs on the dispatch goroutine only.
func (s *Store) apply(req request) bool {
	current := *s.state.Load()
	if req.cond != nil && !req.cond(current) {
		glog.V(1).Infof("[store]skip %s", req.action.Type())
		return false
	}

	next := Reduce(current, req.action)
	s.state.Store(&next)
	glog.V(1).Infof("[store]%s", req.action.Type())

	s.notify()
	return true
}

// notify signals every subscriber without blocking.
func (s *Store) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
			// A signal is already pending for this subscriber.
		}
	}
}
