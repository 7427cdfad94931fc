package tccexport

import (
	"regexp"
	"strings"
)

// DefaultFilenameSuffix is appended to the title stem of every artifact.
const DefaultFilenameSuffix = "_TCC"

// fallbackStem names artifacts of untitled manuscripts.
const fallbackStem = "manuscript"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	// Characters no common filesystem accepts in a file name.
	unsafeFilenameChars = strings.NewReplacer(
		"/", "-", `\`, "-", ":", "-", "*", "-",
		"?", "", `"`, "", "<", "", ">", "", "|", "-",
	)
)

// Filename derives the artifact name from a manuscript title: surrounding
// whitespace is trimmed, every inner whitespace run becomes one underscore,
// then the default suffix and the format extension are appended.
//
//	Filename("Impacto  da IA", FormatDOCX) // "Impacto_da_IA_TCC.docx"
func Filename(title string, f Format) string {
	return filename(title, DefaultFilenameSuffix, f)
}

func filename(title, suffix string, f Format) string {
	stem := whitespaceRun.ReplaceAllString(strings.TrimSpace(title), "_")
	stem = unsafeFilenameChars.Replace(stem)
	if stem == "" {
		stem = fallbackStem
	}
	return stem + suffix + "." + f.Extension()
}
