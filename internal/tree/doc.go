// Package tree builds a task forest from a flat fetch and applies the
// tree-aware date-range filter.
//
// Both operations are pure: they never perform I/O and never mutate
// their input. A fresh forest is built on every fetch.
package tree
