// Package search registers isearch-forward/isearch-backward: a plain,
// case-insensitive substring search over the focused buffer from
// point that wraps around the buffer end, grounded on
// the teacher's search.Handler but reduced to the spec's single
// literal incremental search (no regex modes, no replace — those are
// Non-goals here).
package search
