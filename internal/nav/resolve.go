package nav

import "github.com/roach88/storytime/internal/story"

// ViewKind names what a segment renders.
type ViewKind string

const (
	ViewWelcome       ViewKind = "welcome"
	ViewHome          ViewKind = "home"
	ViewStoryIndex    ViewKind = "stories"
	ViewCreate        ViewKind = "create"
	ViewStory         ViewKind = "story"
	ViewStoryNotFound ViewKind = "story_not_found"
)

// View is the resolved target of a segment.
type View struct {
	Kind  ViewKind
	Title string      // requested title, for story views
	Story story.Story // set when Kind == ViewStory
}

// Resolve maps a segment to its view, looking story segments up in
// stories by exact title.
func Resolve(segment string, stories []story.Story) View {
	if title, ok := StoryTitle(segment); ok {
		s, found := story.Find(stories, title)
		if !found {
			return View{Kind: ViewStoryNotFound, Title: title}
		}
		return View{Kind: ViewStory, Title: title, Story: s}
	}

	switch segment {
	case SegmentAdd:
		return View{Kind: ViewCreate}
	case SegmentStories:
		return View{Kind: ViewStoryIndex}
	case SegmentHome:
		return View{Kind: ViewHome}
	default:
		return View{Kind: ViewWelcome}
	}
}
