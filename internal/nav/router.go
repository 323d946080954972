package nav

import (
	"net/url"
	"strings"
	"sync"
)

// Navigator moves the UI to a new path. Workflows depend on this interface
// rather than on a concrete router.
type Navigator interface {
	Navigate(path string)
}

// DefaultSegment is the segment reported for the root path.
const DefaultSegment = "new"

// Router holds the current pathname.
//
// Thread-safety: Router is safe for concurrent use via internal mutex.
type Router struct {
	mu        sync.Mutex
	pathname  string
	listeners map[int]func(string)
	nextID    int
}

// NewRouter returns a router positioned at initialPath.
func NewRouter(initialPath string) *Router {
	if initialPath == "" {
		initialPath = "/"
	}
	return &Router{
		pathname:  initialPath,
		listeners: make(map[int]func(string)),
	}
}

// Pathname returns the current path.
func (r *Router) Pathname() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pathname
}

// Navigate implements Navigator. Listeners run after the path changes.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	r.pathname = path
	fns := make([]func(string), 0, len(r.listeners))
	for i := 0; i < r.nextID; i++ {
		if fn, ok := r.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(path)
	}
}

// Subscribe registers fn to run after every Navigate.
func (r *Router) Subscribe(fn func(path string)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// Segment returns the last non-empty element of the current path,
// unescaped. The root path yields DefaultSegment.
func (r *Router) Segment() string {
	return SegmentOf(r.Pathname())
}

// SegmentOf returns the last non-empty, unescaped element of path.
func SegmentOf(path string) string {
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == "" {
			continue
		}
		seg, err := url.PathUnescape(parts[i])
		if err != nil {
			return parts[i]
		}
		return seg
	}
	return DefaultSegment
}
