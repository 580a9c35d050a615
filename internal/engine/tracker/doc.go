// Package tracker maintains the per-editor model of autoclosed bracket
// pairs.
//
// A Tracker owns one pair cluster per cursor, index-aligned with the host's
// cursor list. It consumes document-change and selection-change events,
// translating tracked positions, detecting freshly autoclosed pairs, and
// dropping pairs whose invariants no longer hold (a side destroyed, sides
// separated onto different lines, the cursor moved out). From the resulting
// state it derives two booleans the host uses to gate keybindings: whether
// the primary cursor is inside any tracked pair, and whether only whitespace
// separates it from the nearest closing character.
//
// All methods must be called from a single event-processing goroutine; the
// tracker performs no internal locking.
//
// Failure policy: structural violations never propagate. A pair that cannot
// be re-established is dropped; a cluster whose translation turns malformed
// is reset to empty. Decorations for dropped pairs are always released.
package tracker
