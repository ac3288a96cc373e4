package sync

import (
	"context"
	"errors"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"
)

// PollResultMsg is a tea.Msg sent when a notifications poll completes.
type PollResultMsg struct {
	// NewCount is the number of notifications flagged new after the poll.
	NewCount int
	Err      error
}

// Poller refreshes notifications in the background, on a fixed interval
// and on demand.
type Poller struct {
	thunks   *Thunks
	interval time.Duration

	resultCh  chan PollResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu       gosync.Mutex
	running  bool
	lastSync time.Time
	lastErr  error
}

// NewPoller creates a Poller that runs t.FetchNotifications. An interval
// of zero disables periodic polling; Refresh still works.
func NewPoller(t *Thunks, interval time.Duration) *Poller {
	return &Poller{
		thunks:    t,
		interval:  interval,
		resultCh:  make(chan PollResultMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the polling goroutine and returns a tea.Cmd that waits
// for the first result. It returns nil if the poller is already running.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.waitForResult()
}

// Stop halts the polling goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Refresh requests an immediate poll. Requests made while one is already
// queued are collapsed into it.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// LastSync returns the time of the last successful poll and the error of
// the most recent failed one, if the last poll failed.
func (p *Poller) LastSync() (time.Time, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastSync, p.lastErr
}

// WaitForNextResult returns a tea.Cmd that waits for the next poll result.
// Call it after handling a PollResultMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}

func (p *Poller) loop() {
	var tick <-chan time.Time
	if p.interval > 0 {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-p.stopCh:
			return
		case <-tick:
			p.poll()
		case <-p.triggerCh:
			p.poll()
		}
	}
}

func (p *Poller) poll() {
	err := p.thunks.FetchNotifications(context.Background())
	if errors.Is(err, ErrConditionFailed) {
		glog.V(1).Info("[sync]notifications poll skipped, fetch in flight")
		return
	}

	p.mu.Lock()
	if err == nil {
		p.lastSync = time.Now()
	}
	p.lastErr = err
	p.mu.Unlock()

	newCount := 0
	for _, n := range p.thunks.store.State().Notifications.Items.All() {
		if n.IsNew {
			newCount++
		}
	}

	p.sendResult(PollResultMsg{NewCount: newCount, Err: err})
}

// sendResult drops msg when nobody is draining results.
func (p *Poller) sendResult(msg PollResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
	}
}

func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		select {
		case result := <-p.resultCh:
			return result
		case <-p.stopCh:
			return nil
		}
	}
}
