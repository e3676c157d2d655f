// Package pipeline implements the Markdown-to-notebook transformation
// stages:
//   - inline stylization of emphasis, code spans, and links into styled
//     text runs
//   - classification of fenced code blocks against the recognized
//     external-language set
//   - conversion of tables into aligned, word-wrapping grids
//   - the cell mapper, which walks the normalized block tree and builds
//     the notebook's grouped, style-tagged cell hierarchy
//
// Parsing and normalization live in internal/markdown; serialization of
// the finished cell tree lives in internal/notebook. Every stage here is
// a pure function from one immutable tree to the next.
package pipeline
