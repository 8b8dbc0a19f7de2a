// Package pipeline converts the Markdown body of a letter into LaTeX.
//
// The body passes through two stages:
//   - preprocessing (line ending normalization, blank line compression)
//   - a goldmark parse whose AST is walked into a fixed set of LaTeX
//     fragments, with every text run escaped exactly once
//
// Template filling and document assembly live in the letter package; this
// package only produces the body fragment.
package pipeline
