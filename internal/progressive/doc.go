// Package progressive renders page regions as a placeholder first and swaps in
// the real content once the region's data has loaded.
//
// A Region is a two-state machine (Pending, Resolved). The transition fires at
// most once, only after the loader returned and its markup was rendered in
// full, and never after the page context was canceled. Stream writes a
// document with every region's placeholder, flushes it, then resolves the
// regions concurrently and appends each one's content as it becomes ready.
package progressive
