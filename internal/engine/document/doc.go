// Package document provides position addressing and change description for
// host text documents.
//
// Positions are (line, column) where the column is measured in UTF-16 code
// units, matching the addressing used by host editors. The package also
// implements position translation across document edits, which is the
// foundation for keeping tracked bracket-pair sides pinned to the correct
// characters as the document changes.
//
// A ContentChange describes a single text replacement in pre-edit
// coordinates. Hosts deliver edits as ordered batches; translation through a
// batch processes changes in descending start order so earlier ranges remain
// valid (each change is expressed against the same pre-edit document).
package document
