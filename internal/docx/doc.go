// Package docx builds the structured manuscript document and serializes it
// as a WordprocessingML (.docx) package.
//
// Build turns parsed chapters into an ordered list of paragraphs carrying
// their style, spacing, numbering and alignment. Write packs that model
// into the ZIP container Word expects: document, styles, one shared
// numbering part, and core properties. Output is deterministic for a
// given document.
package docx
