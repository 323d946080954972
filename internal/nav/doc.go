// Package nav provides routing and the navigation tree.
//
// Story views are addressed by the path segment "story-<title>" under the
// "stories" section. The Router tracks the current pathname; Build derives
// the menu from the story collection; Resolve maps a segment to the view
// that should render it.
package nav
