// Package huffman builds canonical Huffman coding trees from byte-frequency
// tables.
//
// # Overview
//
// Huffview visualizes the coding tree an external compressor would build for
// a given input. This package provides the tree itself: a [Table] counts
// symbol occurrences, [Build] turns the table into a binary tree by greedy
// merging, and [Codes] derives the per-symbol bit strings implied by the
// tree shape. Layout and rendering live in separate packages and consume
// the [Node] tree produced here.
//
// # Construction Semantics
//
// Build reproduces a specific, reproducible merge order rather than an
// arbitrary priority-queue tie-break:
//
//  1. Seed the working collection with one leaf per symbol whose count is
//     positive, ordered by ascending symbol value.
//  2. Stable-sort the collection by ascending frequency, so equal
//     frequencies keep their existing relative order.
//  3. Remove the two lowest nodes, merge them into an internal node
//     (first removed becomes the left child), and append the merged node
//     at the end of the collection.
//  4. Repeat until one node remains.
//
// The stable sort plus append-at-end rule fixes which symbols end up
// deeper in the tree when frequencies collide, so identical tables always
// produce identical tree shapes. The full rescan per merge is intentional;
// see [Build] for details.
//
// # Edge Cases
//
// An empty table (or one with no positive counts) yields a nil tree, which
// downstream consumers render as an explicit "no data" state. A table with
// exactly one positive entry yields a single leaf with no merge step; its
// code is defined as "0".
//
// # Concurrency
//
// All functions are pure: they read their input, allocate fresh output,
// and keep no state. They are safe to call from any goroutine.
package huffman
