package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	blockTags  = []string{"p", "h1", "h2", "h3", "h4", "ul", "ol", "li", "blockquote"}
	inlineTags = []string{"b", "strong", "i", "em", "s", "strike", "u", "br"}

	alignValue = regexp.MustCompile(`^(?i)(left|center|right|justify|start|end)$`)
)

// Sanitizer reduces HTML to the tags the markup parser supports.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds the policy: supported block and inline elements,
// and alignment through the align attribute or a text-align style on
// block elements. Everything else is stripped, keeping its text.
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(blockTags...)
	p.AllowElements(inlineTags...)
	p.AllowAttrs("align").Matching(alignValue).OnElements(blockTags...)
	p.AllowStyles("text-align").
		MatchingEnum("left", "center", "right", "justify", "start", "end").
		OnElements(blockTags...)
	return &Sanitizer{policy: p}
}

// Sanitize returns content reduced to the supported markup.
func (s *Sanitizer) Sanitize(content string) string {
	return s.policy.Sanitize(content)
}
