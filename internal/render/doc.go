// Package render drives the block render pipeline: parse the block
// parameters, fetch tasks from the remote source, shape them into a
// tree, apply the date window, and emit markdown.
//
// A controller owns the mounted blocks. Every render pass carries a
// per-block sequence number; a result that arrives after a newer pass
// has already been applied is dropped, so a slow fetch can never
// overwrite fresher output.
package render
