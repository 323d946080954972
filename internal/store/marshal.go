package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/storytime/internal/story"
)

// marshalStories encodes the collection as a flat JSON array.
// HTML escaping is disabled so stored text reads as typed.
func marshalStories(stories []story.Story) ([]byte, error) {
	if stories == nil {
		stories = []story.Story{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(stories); err != nil {
		return nil, fmt.Errorf("marshal stories: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// unmarshalStories decodes a stored collection. Anything other than a JSON
// array of story records, including records without a title, is malformed.
func unmarshalStories(data []byte) ([]story.Story, error) {
	var stories []story.Story
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, fmt.Errorf("unmarshal stories: %w", err)
	}
	if stories == nil {
		return nil, fmt.Errorf("unmarshal stories: not an array")
	}
	for i, s := range stories {
		if s.Title == "" {
			return nil, fmt.Errorf("unmarshal stories: record %d has no title", i)
		}
	}
	return stories, nil
}
