package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/roach88/storytime/internal/story"
)

// DefaultKey is the slot key the story collection lives under.
const DefaultKey = "my-stories"

// Stories is the single persisted collection of all stories.
//
// Readers must call Load again after any Save to observe changes;
// Subscribe is the only change notification.
type Stories struct {
	slot   Slot
	key    string
	logger *slog.Logger

	mu        sync.Mutex
	listeners map[int]func([]story.Story)
	nextID    int
}

// NewStories returns the collection stored in slot under key.
// An empty key selects DefaultKey; a nil logger selects slog.Default().
func NewStories(slot Slot, key string, logger *slog.Logger) *Stories {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Stories{
		slot:      slot,
		key:       key,
		logger:    logger,
		listeners: make(map[int]func([]story.Story)),
	}
}

// Key returns the slot key.
func (s *Stories) Key() string {
	return s.key
}

// Load returns the stored collection.
//
// An absent slot yields an empty collection. Malformed data also yields an
// empty collection; it is logged and not returned as an error. Only slot
// I/O failures are errors. The result is never nil.
func (s *Stories) Load(ctx context.Context) ([]story.Story, error) {
	data, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load stories: %w", err)
	}
	if !ok {
		return []story.Story{}, nil
	}

	stories, err := unmarshalStories(data)
	if err != nil {
		s.logger.Warn("discarding malformed story collection",
			"key", s.key,
			"error", err,
		)
		return []story.Story{}, nil
	}
	return stories, nil
}

// Save overwrites the stored collection and then notifies subscribers.
func (s *Stories) Save(ctx context.Context, stories []story.Story) error {
	data, err := marshalStories(stories)
	if err != nil {
		return fmt.Errorf("save stories: %w", err)
	}
	if err := s.slot.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("save stories: %w", err)
	}

	s.logger.Debug("stories saved",
		"key", s.key,
		"count", len(stories),
	)

	s.notify(stories)
	return nil
}

// Subscribe registers fn to run after every successful Save. fn receives
// the saved collection and runs synchronously on the saving goroutine.
// The returned function removes the subscription.
func (s *Stories) Subscribe(fn func([]story.Story)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Stories) notify(stories []story.Story) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	fns := make([]func([]story.Story), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		snapshot := make([]story.Story, len(stories))
		for i, st := range stories {
			snapshot[i] = st.Clone()
		}
		fn(snapshot)
	}
}
