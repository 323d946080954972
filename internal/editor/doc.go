// Package editor models the rich-text widget boundary.
//
// A Document holds the block sequence the user is editing. It is seeded
// once with initial content and owns every later in-memory edit. Callers
// observe edits through OnChange listeners, which run synchronously after
// each mutation with no payload; listeners re-read Blocks.
//
// A Schema restricts what the document accepts: block types and inline
// style names. Edits outside the schema are rejected.
//
// Listeners may mutate the document from inside a notification. Mutations
// that leave the document unchanged do not notify, so a normalizing
// listener settles after one extra pass.
package editor
