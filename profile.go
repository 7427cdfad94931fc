package tccexport

import (
	"errors"
	"fmt"

	"github.com/alnah/go-tccexport/internal/assets"
	"github.com/alnah/go-tccexport/internal/docx"
	"github.com/alnah/go-tccexport/internal/paginate"
	"github.com/alnah/go-tccexport/internal/yamlutil"
)

// DefaultProfileName is the built-in profile used when none is selected.
const DefaultProfileName = assets.DefaultProfileName

// Profile is the immutable formatting configuration shared by the DOCX
// builder and the PDF renderer.
type Profile struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Document    DocumentStyle `yaml:"document"`
	Pages       PageLayout    `yaml:"pages"`
}

// DocumentStyle holds the DOCX formatting values. Sizes are half-points,
// distances twips (1/1440 inch), line spacing 240ths of a line.
type DocumentStyle struct {
	FontFamily  string `yaml:"font_family"`
	FontSize    int    `yaml:"font_size"`
	LineSpacing int    `yaml:"line_spacing"`

	ParagraphAfter int `yaml:"paragraph_after"`

	TitleBefore   int `yaml:"title_before"`
	TitleAfter    int `yaml:"title_after"`
	SubtitleAfter int `yaml:"subtitle_after"`
	ChapterAfter  int `yaml:"chapter_after"`

	QuoteIndent int `yaml:"quote_indent"`
	QuoteAfter  int `yaml:"quote_after"`

	ListIndent  int `yaml:"list_indent"`
	ListHanging int `yaml:"list_hanging"`

	PageWidth    int `yaml:"page_width"`
	PageHeight   int `yaml:"page_height"`
	MarginTop    int `yaml:"margin_top"`
	MarginRight  int `yaml:"margin_right"`
	MarginBottom int `yaml:"margin_bottom"`
	MarginLeft   int `yaml:"margin_left"`
}

// PageLayout holds the PDF layout values. Sizes are points, distances
// millimetres.
type PageLayout struct {
	PageSize   string `yaml:"page_size"`
	FontFamily string `yaml:"font_family"`

	TitleSize    float64 `yaml:"title_size"`
	SubtitleSize float64 `yaml:"subtitle_size"`
	ChapterSize  float64 `yaml:"chapter_size"`
	BodySize     float64 `yaml:"body_size"`

	Margin     float64 `yaml:"margin"`
	TitleTop   float64 `yaml:"title_top"`
	TitleGap   float64 `yaml:"title_gap"`
	FrontGap   float64 `yaml:"front_gap"`
	PageTop    float64 `yaml:"page_top"`
	LineHeight float64 `yaml:"line_height"`

	ChapterRoom  float64 `yaml:"chapter_room"`
	BottomRoom   float64 `yaml:"bottom_room"`
	ChapterGap   float64 `yaml:"chapter_gap"`
	AfterChapter float64 `yaml:"after_chapter"`
}

// DefaultProfile returns the formatting of the original editor: Times 12pt,
// 1.5 line spacing, A4.
func DefaultProfile() Profile {
	return Profile{
		Name:        DefaultProfileName,
		Description: "Times New Roman 12pt, 1.5 line spacing, 1 inch margins, A4",
		Document:    DocumentStyle(docx.DefaultStyle()),
		Pages:       PageLayout(paginate.DefaultLayout()),
	}
}

// Validate checks both halves of the profile.
func (p Profile) Validate() error {
	if err := p.style().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if err := p.layout().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return nil
}

func (p Profile) style() docx.Style {
	return docx.Style(p.Document)
}

func (p Profile) layout() paginate.Layout {
	return paginate.Layout(p.Pages)
}

// ParseProfile decodes a YAML profile. Unknown keys are rejected.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yamlutil.Decode(data, &p); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// ProfileLoader loads formatting profiles by name.
type ProfileLoader interface {
	// LoadProfile returns ErrProfileNotFound if the profile doesn't exist.
	LoadProfile(name string) (Profile, error)
	ListProfiles() ([]string, error)
}

// NewProfileLoader creates a ProfileLoader for the given base path.
// If basePath is empty, only the built-in profiles are available.
// If basePath is set, {basePath}/profiles/{name}.yaml takes precedence
// over the built-in profile of the same name.
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewProfileLoader(basePath string) (ProfileLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &profileLoaderAdapter{resolver: resolver}, nil
}

// LoadProfile loads a built-in profile by name.
func LoadProfile(name string) (Profile, error) {
	return (&profileLoaderAdapter{resolver: assets.NewEmbeddedLoader()}).LoadProfile(name)
}

// profileLoaderAdapter decodes the raw YAML served by an internal loader.
type profileLoaderAdapter struct {
	resolver assets.AssetLoader
}

func (a *profileLoaderAdapter) LoadProfile(name string) (Profile, error) {
	data, err := a.resolver.LoadProfile(name)
	if err != nil {
		return Profile{}, convertAssetError(err)
	}
	p, err := ParseProfile(data)
	if err != nil {
		return Profile{}, fmt.Errorf("profile %q: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}

func (a *profileLoaderAdapter) ListProfiles() ([]string, error) {
	names, err := a.resolver.ListProfiles()
	if err != nil {
		return nil, convertAssetError(err)
	}
	return names, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrProfileNotFound), errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrProfileNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError keeps the original message while matching the public sentinel
// through errors.Is. Internal errors are not exposed.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}

var _ ProfileLoader = (*profileLoaderAdapter)(nil)
