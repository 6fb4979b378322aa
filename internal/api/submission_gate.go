package api

import "sync"

// submissionGate keeps one outbound submission per page session across concurrent requests.
type submissionGate struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newSubmissionGate() *submissionGate {
	return &submissionGate{active: make(map[string]struct{})}
}

func (gate *submissionGate) acquire(sessionID string) bool {
	gate.mu.Lock()
	defer gate.mu.Unlock()

	if _, busy := gate.active[sessionID]; busy {
		return false
	}
	gate.active[sessionID] = struct{}{}
	return true
}

func (gate *submissionGate) release(sessionID string) {
	gate.mu.Lock()
	defer gate.mu.Unlock()
	delete(gate.active, sessionID)
}
