// Package render turns positioned Huffman trees into output artifacts.
//
// # Renderers
//
// Four renderers share one input contract: a positioned [layout.Tree], its
// bounding [layout.Box], and optionally a viewport transform.
//
//   - [SVG]: self-contained vector drawing with circles, edges, and bit
//     labels; a viewport option maps to an SVG scale-then-translate
//     transform
//   - [DOT] and [DOTSVG]: deterministic Graphviz source, optionally
//     rendered to SVG through goccy/go-graphviz
//   - [Document]: the JSON/BSON interchange format used by the snapshot
//     store and the HTTP API
//   - [Text] and [Screen]: terminal output; Screen projects the tree
//     through a viewport transform onto a character grid for the
//     interactive explorer
//
// # Placeholders
//
// A nil tree is not an error: every renderer emits an explicit "no tree
// data" placeholder so empty input stays a first-class state all the way
// to the user.
//
// # Determinism
//
// All renderers are pure functions of their inputs. Node identity in DOT
// and Document output is the pre-order index, so identical trees always
// produce byte-identical artifacts.
package render

// Placeholder is the message every renderer shows for an absent tree.
const Placeholder = "No tree data available"
