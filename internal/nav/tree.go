package nav

import (
	"net/url"
	"strings"

	"github.com/roach88/storytime/internal/story"
)

// Fixed segments.
const (
	SegmentHome    = "home"
	SegmentStories = "stories"
	SegmentAdd     = "add"

	storyPrefix = "story-"
)

// Item kinds.
const (
	KindPage    = "page"
	KindHeader  = "header"
	KindDivider = "divider"
)

// Item is one entry of the navigation tree.
type Item struct {
	Kind     string `json:"kind"`
	Segment  string `json:"segment,omitempty"`
	Title    string `json:"title,omitempty"`
	Children []Item `json:"children,omitempty"`
}

// StorySegment returns the segment addressing the story titled title.
func StorySegment(title string) string {
	return storyPrefix + title
}

// StoryTitle extracts the title from a story segment.
func StoryTitle(segment string) (string, bool) {
	if !strings.HasPrefix(segment, storyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(segment, storyPrefix), true
}

// StoryPath returns the full path of a story view. The segment is path
// escaped so titles containing "/" survive the round trip through
// SegmentOf.
func StoryPath(title string) string {
	return "/" + SegmentStories + "/" + url.PathEscape(StorySegment(title))
}

// AddPath is the path of the creation view.
func AddPath() string {
	return "/" + SegmentStories + "/" + SegmentAdd
}

// Build derives the navigation tree from the story collection. The
// stories section lists the fixed "add" entry followed by one entry per
// story in collection order.
func Build(stories []story.Story) []Item {
	children := make([]Item, 0, len(stories)+1)
	children = append(children, Item{Kind: KindPage, Segment: SegmentAdd, Title: "Add a new story"})
	for _, s := range stories {
		children = append(children, Item{
			Kind:    KindPage,
			Segment: StorySegment(s.Title),
			Title:   s.Title,
		})
	}

	return []Item{
		{Kind: KindHeader, Title: "Main items"},
		{Kind: KindPage, Segment: SegmentHome, Title: "Home"},
		{Kind: KindDivider},
		{Kind: KindHeader, Title: "Library"},
		{Kind: KindPage, Segment: SegmentStories, Title: "My Stories", Children: children},
	}
}

// StoriesSection returns the children of the stories section of tree.
func StoriesSection(tree []Item) []Item {
	for _, item := range tree {
		if item.Kind == KindPage && item.Segment == SegmentStories {
			return item.Children
		}
	}
	return nil
}
