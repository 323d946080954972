package story

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Emoji code point classes removed from text spans.
var (
	// Planes reached through surrogate pairs: mahjong tiles through
	// symbols & pictographs, emoticons, transport & map symbols, and the
	// supplemental / extended-A pictograph blocks.
	surrogateEmoji = &unicode.RangeTable{
		R32: []unicode.Range32{
			{Lo: 0x1F000, Hi: 0x1F7FF, Stride: 1},
			{Lo: 0x1F900, Hi: 0x1FAFF, Stride: 1},
		},
	}

	regionalIndicators = &unicode.RangeTable{
		R32: []unicode.Range32{{Lo: 0x1F1E6, Hi: 0x1F1FF, Stride: 1}},
	}

	miscSymbols = &unicode.RangeTable{
		R16: []unicode.Range16{{Lo: 0x2600, Hi: 0x26FF, Stride: 1}},
	}

	dingbats = &unicode.RangeTable{
		R16: []unicode.Range16{{Lo: 0x2700, Hi: 0x27BF, Stride: 1}},
	}

	emojiTable = rangetable.Merge(surrogateEmoji, regionalIndicators, miscSymbols, dingbats)

	// Sequence glue that only has meaning attached to an emoji: zero width
	// joiner, variation selectors and the combining keycap.
	emojiJoiners = rangetable.New('\u200D', '\uFE0E', '\uFE0F', '\u20E3')
)

// IsEmoji reports whether r falls in one of the stripped emoji classes.
func IsEmoji(r rune) bool {
	return unicode.Is(emojiTable, r)
}

// StripEmoji removes emoji code points from s. Joiners and variation
// selectors are dropped only when they trail a removed emoji, so text in
// scripts that use ZWJ on its own is left alone. All other characters,
// including surrounding spaces, are preserved.
func StripEmoji(s string) string {
	if !strings.ContainsFunc(s, IsEmoji) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inSequence := false
	for _, r := range s {
		switch {
		case IsEmoji(r):
			inSequence = true
		case inSequence && unicode.Is(emojiJoiners, r):
		default:
			inSequence = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
