package testutil

import "sync"

// RecordingNavigator records every path it is sent to.
//
// Thread-safety: RecordingNavigator is safe for concurrent use via internal mutex.
type RecordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

// Navigate implements nav.Navigator.
func (n *RecordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

// Paths returns a copy of the recorded paths in order.
func (n *RecordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// Last returns the most recent path, or "" if none.
func (n *RecordingNavigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}
