// Package pair provides the tracked bracket-pair data model.
//
// A Pair records the positions of one autoclosed opening/closing character
// pair. A Cluster is the nesting-ordered set of pairs enclosing a single
// cursor, outermost first. Clusters only ever hold pairs whose sides share
// one line and which form a strictly nested containment chain; callers are
// responsible for dropping pairs that break those invariants after edits.
package pair
