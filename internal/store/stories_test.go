package store

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/storytime/internal/story"
)

func TestStories_LoadAbsentIsEmpty(t *testing.T) {
	s := NewStories(NewMemorySlot(), "", discardLogger())

	stories, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if stories == nil || len(stories) != 0 {
		t.Errorf("Load() = %#v, want empty non-nil slice", stories)
	}
	if s.Key() != DefaultKey {
		t.Errorf("Key() = %q, want %q", s.Key(), DefaultKey)
	}
}

func TestStories_LoadMalformedIsEmpty(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()
	if err := slot.Set(ctx, DefaultKey, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	s := NewStories(slot, DefaultKey, discardLogger())

	stories, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() returned error for malformed data: %v", err)
	}
	if len(stories) != 0 {
		t.Errorf("Load() = %d stories, want 0", len(stories))
	}
}

func TestStories_SaveLoadRoundTrip(t *testing.T) {
	s := NewStories(createTestSlot(t), DefaultKey, discardLogger())
	ctx := context.Background()

	draft := story.New("Draft")
	draft.Content[1].Content[0].Text = "Body text"
	draft.Content[1].Content[0].Styles = story.Styles{"textColor": "red"}
	want := []story.Story{draft, story.New("Second")}

	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if title := story.DeriveTitle(got[0].Content); title != "Draft" {
		t.Errorf("derived title = %q, want %q", title, "Draft")
	}
}

func TestStories_SaveOverwrites(t *testing.T) {
	s := NewStories(NewMemorySlot(), DefaultKey, discardLogger())
	ctx := context.Background()

	if err := s.Save(ctx, []story.Story{story.New("a"), story.New("b")}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, []story.Story{story.New("c")}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if titles := story.Titles(got); !cmp.Equal(titles, []string{"c"}) {
		t.Errorf("titles = %v, want [c]", titles)
	}
}

func TestStories_KeysAreIsolated(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()
	a := NewStories(slot, "a", discardLogger())
	b := NewStories(slot, "b", discardLogger())

	if err := a.Save(ctx, []story.Story{story.New("only in a")}); err != nil {
		t.Fatal(err)
	}

	got, err := b.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("b.Load() = %v, want empty", story.Titles(got))
	}
}

func TestStories_LastWriterWins(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()
	tab1 := NewStories(slot, DefaultKey, discardLogger())
	tab2 := NewStories(slot, DefaultKey, discardLogger())

	stale1, _ := tab1.Load(ctx)
	stale2, _ := tab2.Load(ctx)

	if err := tab1.Save(ctx, append(stale1, story.New("from tab 1"))); err != nil {
		t.Fatal(err)
	}
	if err := tab2.Save(ctx, append(stale2, story.New("from tab 2"))); err != nil {
		t.Fatal(err)
	}

	got, _ := tab1.Load(ctx)
	if titles := story.Titles(got); !cmp.Equal(titles, []string{"from tab 2"}) {
		t.Errorf("titles = %v, want [from tab 2]", titles)
	}
}

func TestStories_SubscribeNotifiesAfterSave(t *testing.T) {
	s := NewStories(NewMemorySlot(), DefaultKey, discardLogger())
	ctx := context.Background()

	var calls [][]string
	unsubscribe := s.Subscribe(func(stories []story.Story) {
		calls = append(calls, story.Titles(stories))
	})

	if err := s.Save(ctx, []story.Story{story.New("one")}); err != nil {
		t.Fatal(err)
	}
	unsubscribe()
	if err := s.Save(ctx, []story.Story{story.New("two")}); err != nil {
		t.Fatal(err)
	}

	want := [][]string{{"one"}}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestStories_SubscriberGetsCopy(t *testing.T) {
	s := NewStories(NewMemorySlot(), DefaultKey, discardLogger())
	ctx := context.Background()
	saved := []story.Story{story.New("one")}

	s.Subscribe(func(stories []story.Story) {
		stories[0].Content[0].Content[0].Text = "mutated"
	})
	if err := s.Save(ctx, saved); err != nil {
		t.Fatal(err)
	}

	if saved[0].Content[0].Content[0].Text != "one" {
		t.Error("subscriber mutation leaked into caller's slice")
	}
}
