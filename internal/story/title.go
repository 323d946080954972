package story

import "strings"

// DeriveTitle returns the trimmed concatenation of every text span in the
// first block. An empty document yields "".
func DeriveTitle(blocks []Block) string {
	if len(blocks) == 0 {
		return ""
	}
	return strings.TrimSpace(blocks[0].Text())
}
