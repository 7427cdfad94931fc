// Package pipeline implements the conversions around the manuscript markup.
//
// Import stages bring outside content into the editor's constrained markup:
//   - Markdown cleanup (line endings, front matter, blank line runs)
//   - Markdown to HTML conversion via Goldmark
//   - HTML normalization (full documents unwrapped, tag aliases renamed)
//   - sanitization to the supported tag set via bluemonday
//
// The export stage converts assembled markup to Markdown with
// html-to-markdown.
//
// The structured and paginated exports live in internal/docx and
// internal/paginate; this package only ever produces markup or Markdown
// text.
package pipeline
