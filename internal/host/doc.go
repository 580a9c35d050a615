// Package host carries the engine's view of host-owned collaborators.
//
// The engine only ever reads document text and addresses it by (line,
// UTF-16 column); the Buffer type here is a minimal line-based store that
// applies ContentChange batches with exactly those semantics. It backs the
// demo editor, the script harness, and tests. It is a host stand-in, not a
// text engine: no rope, no undo, no syntax awareness.
package host
