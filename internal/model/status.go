package model

// AsyncStatus tracks the lifecycle of a collection-level request.
type AsyncStatus string

const (
	StatusIdle      AsyncStatus = "idle"
	StatusLoading   AsyncStatus = "loading"
	StatusSucceeded AsyncStatus = "succeeded"
	StatusFailed    AsyncStatus = "failed"
)

// AsyncState pairs a request status with the error message of the last
// failure. Error is only set while Status is StatusFailed.
type AsyncState struct {
	Status AsyncStatus
	Error  string
}

// IdleState returns the initial request state.
func IdleState() AsyncState {
	return AsyncState{Status: StatusIdle}
}

// Loading returns the state entered when a request starts.
func (s AsyncState) Loading() AsyncState {
	return AsyncState{Status: StatusLoading}
}

// Succeeded returns the state entered when a request completes.
func (s AsyncState) Succeeded() AsyncState {
	return AsyncState{Status: StatusSucceeded}
}

// Failed returns the state entered when a request fails with msg.
func (s AsyncState) Failed(msg string) AsyncState {
	return AsyncState{Status: StatusFailed, Error: msg}
}

// CanFetch reports whether a fresh collection fetch may start.
// Fetches are skipped while one is in flight or after one succeeded.
func (s AsyncState) CanFetch() bool {
	return s.Status == StatusIdle || s.Status == StatusFailed
}
