package workflow

import (
	"context"
	"fmt"

	"github.com/roach88/storytime/internal/schema"
	"github.com/roach88/storytime/internal/store"
	"github.com/roach88/storytime/internal/story"
)

// ImportResult describes a completed import.
type ImportResult struct {
	Titles     []string `json:"titles"`
	Normalized int      `json:"normalized"`
}

// Import appends the stories in data to the collection.
//
// The document must satisfy the story schema. Each story's content is
// normalized with the editing rules and its title re-derived from the
// first block. A title that is empty, repeated within the file or already
// stored rejects the whole file. Nothing is written unless every story is
// accepted; on success exactly one Store write happens.
func Import(ctx context.Context, stories *store.Stories, validator *schema.Validator, filename string, data []byte, opts Options) (ImportResult, error) {
	logger := opts.logger().With("flow", "import", "session", opts.sessions().Generate())

	incoming, err := validator.ValidateStories(filename, data)
	if err != nil {
		logger.Debug("import rejected", "file", filename, "error", err)
		return ImportResult{}, err
	}

	existing, err := stories.Load(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import: %w", err)
	}

	var result ImportResult
	merged := existing
	for _, s := range incoming {
		content, changed := story.Normalize(s.Content)
		if changed {
			result.Normalized++
		}
		title := story.DeriveTitle(content)
		if err := story.ValidateTitle(title, merged, ""); err != nil {
			logger.Debug("import rejected", "file", filename, "title", title, "error", err)
			return ImportResult{}, err
		}
		merged = append(merged, story.Story{Title: title, Content: content})
		result.Titles = append(result.Titles, title)
	}

	if len(result.Titles) == 0 {
		return result, nil
	}
	if err := stories.Save(ctx, merged); err != nil {
		return ImportResult{}, fmt.Errorf("import: %w", err)
	}
	logger.Info("stories imported", "file", filename, "count", len(result.Titles), "normalized", result.Normalized)
	return result, nil
}
