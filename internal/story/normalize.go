package story

// NormalizeBlock applies the document rules to the block at index i and
// reports whether anything changed. The input is not modified.
//
// Rules:
//   - index 0 must be a heading; anything else becomes a level 1 heading
//   - every other block, nested children included, must be a paragraph
//   - emoji are stripped from every text span; untouched spans keep identity
func NormalizeBlock(i int, b Block) (Block, bool) {
	out := b
	changed := false

	if i == 0 {
		if out.Type != BlockHeading {
			out.Type = BlockHeading
			out.Props.Level = 1
			changed = true
		}
	} else if out.Type != BlockParagraph {
		out.Type = BlockParagraph
		out.Props.Level = 0
		changed = true
	}

	if content, ok := stripInline(out.Content); ok {
		out.Content = content
		changed = true
	}

	if len(out.Children) > 0 {
		var children []Block
		for j, child := range out.Children {
			// Children never hold the title.
			fixed, ok := NormalizeBlock(j+1, child)
			if !ok {
				continue
			}
			if children == nil {
				children = make([]Block, len(out.Children))
				copy(children, out.Children)
			}
			children[j] = fixed
		}
		if children != nil {
			out.Children = children
			changed = true
		}
	}

	return out, changed
}

// stripInline returns a copy of items with emoji removed, or ok=false when
// no span needed rewriting.
func stripInline(items []InlineContent) ([]InlineContent, bool) {
	var out []InlineContent
	for i, item := range items {
		fixed := item
		dirty := false
		if cleaned := StripEmoji(item.Text); cleaned != item.Text {
			fixed.Text = cleaned
			dirty = true
		}
		if nested, ok := stripInline(item.Content); ok {
			fixed.Content = nested
			dirty = true
		}
		if !dirty {
			continue
		}
		if out == nil {
			out = make([]InlineContent, len(items))
			copy(out, items)
		}
		out[i] = fixed
	}
	return out, out != nil
}

// Normalize applies NormalizeBlock to every block and returns the result
// with a flag telling whether any block changed. Blocks that did not
// change are shared with the input.
func Normalize(blocks []Block) ([]Block, bool) {
	var out []Block
	for i, b := range blocks {
		fixed, ok := NormalizeBlock(i, b)
		if !ok {
			continue
		}
		if out == nil {
			out = make([]Block, len(blocks))
			copy(out, blocks)
		}
		out[i] = fixed
	}
	if out == nil {
		return blocks, false
	}
	return out, true
}
