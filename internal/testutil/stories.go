package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/roach88/storytime/internal/store"
	"github.com/roach88/storytime/internal/story"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewMemoryStories returns a story collection on a fresh MemorySlot,
// seeded with stories when any are given. The slot is returned so tests
// can count writes.
func NewMemoryStories(t *testing.T, seed ...story.Story) (*store.Stories, *store.MemorySlot) {
	t.Helper()
	slot := store.NewMemorySlot()
	stories := store.NewStories(slot, store.DefaultKey, DiscardLogger())
	if len(seed) > 0 {
		if err := stories.Save(context.Background(), seed); err != nil {
			t.Fatalf("seed stories: %v", err)
		}
	}
	return stories, slot
}

// MustLoad loads the collection or fails the test.
func MustLoad(t *testing.T, stories *store.Stories) []story.Story {
	t.Helper()
	all, err := stories.Load(context.Background())
	if err != nil {
		t.Fatalf("load stories: %v", err)
	}
	return all
}
