// Package export renders stories as Markdown files.
//
// Each story becomes one file named after its title slug. Headings render
// with one '#' per level, paragraphs as plain text and links as inline
// Markdown links. Text colors have no Markdown form and are dropped.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/multierr"

	"github.com/roach88/storytime/internal/story"
)

// Extension is appended to every exported file name.
const Extension = ".md"

// fallbackName is used for titles that slug to nothing (emoji-only, punctuation).
const fallbackName = "story"

// FileName returns the file name for a story title.
func FileName(title string) string {
	name := slug.Make(title)
	if name == "" {
		name = fallbackName
	}
	return name + Extension
}

// Render returns the Markdown form of s.
func Render(s story.Story) string {
	var b strings.Builder
	for i, block := range s.Content {
		if i > 0 {
			b.WriteString("\n")
		}
		renderBlock(&b, block)
	}
	return b.String()
}

func renderBlock(b *strings.Builder, block story.Block) {
	text := renderInline(block.Content)
	if block.Type == story.BlockHeading {
		level := block.Props.Level
		if level < 1 {
			level = 1
		}
		b.WriteString(strings.Repeat("#", level))
		b.WriteString(" ")
	}
	b.WriteString(text)
	b.WriteString("\n")
	for _, child := range block.Children {
		b.WriteString("\n")
		renderBlock(b, child)
	}
}

func renderInline(items []story.InlineContent) string {
	var b strings.Builder
	for _, item := range items {
		switch item.Type {
		case story.InlineLink:
			fmt.Fprintf(&b, "[%s](%s)", renderInline(item.Content), item.Href)
		default:
			b.WriteString(item.Text)
		}
	}
	return b.String()
}

// WriteAll writes every story into dir, creating it if needed, and returns
// the paths written. Titles that slug to the same name get a numeric
// suffix. A failing file does not stop the others; all failures are
// returned together.
func WriteAll(dir string, stories []story.Story) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	var (
		written []string
		errs    error
	)
	used := make(map[string]int)
	for _, s := range stories {
		name := uniqueName(FileName(s.Title), used)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(Render(s)), 0o644); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("export %q: %w", s.Title, err))
			continue
		}
		written = append(written, path)
	}
	return written, errs
}

func uniqueName(name string, used map[string]int) string {
	n := used[name]
	used[name] = n + 1
	if n == 0 {
		return name
	}
	base := strings.TrimSuffix(name, Extension)
	return base + "-" + strconv.Itoa(n+1) + Extension
}
