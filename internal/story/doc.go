// Package story provides the document model for storytime.
//
// A Story is a titled document made of ordered blocks. The package holds
// the types and every pure transformation the workflows apply to them:
//
//   - NewSkeleton: the two-block document a new story starts with
//   - DeriveTitle: the title read back from the first block
//   - Normalize: structural enforcement and emoji stripping
//   - ValidateTitle: missing and duplicate title checks
//   - ContentHash: canonical identity of a block sequence
//
// Key invariants:
//   - Titles are unique (case-sensitive exact match) and never empty
//   - content[0] is a heading carrying the title text
//   - Every block after the first is a paragraph
//   - Text spans never contain emoji code points
//
// This package imports nothing internal. Storage, editing and navigation
// packages all build on it.
package story
