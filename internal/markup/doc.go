// Package markup parses the constrained HTML produced by the manuscript
// editor into an ordered sequence of blocks.
//
// Supported blocks are paragraphs, headings (h1-h4), unordered and ordered
// lists, and blockquotes. Inline formatting is read one level deep:
// b/strong, i/em, s/strike and u on the immediate children of a block.
// Alignment comes from an inline text-align style or a legacy align
// attribute and defaults to justified.
//
// Known simplifications:
//   - list items and blockquotes are flattened to plain text
//   - nested lists become part of their parent item's text
//   - formatting nested below a block's immediate children is dropped
//
// Any other element is parsed as a paragraph, and stray text at the root
// becomes a paragraph of its own. The parser never returns an error.
//
// PlainText provides the markup-free rendition used by the paginated
// export.
package markup
