// Package paginate lays manuscript plain text out on fixed-size PDF pages.
//
// The layout is a strict greedy fill: the title block opens page 1, each
// chapter heading starts a new page only when too little room remains,
// and body text is wrapped to the content width and placed line by line.
// There is no widow or orphan control.
//
// Text is drawn with the PDF core fonts, so anything outside Latin-1 is
// folded to its closest ASCII form or replaced with '?'.
package paginate
