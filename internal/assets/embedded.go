package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed profiles/*.yaml
var profiles embed.FS

// EmbeddedLoader loads profiles from the embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadProfile loads a profile from embedded assets by name.
func (e *EmbeddedLoader) LoadProfile(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	content, err := profiles.ReadFile("profiles/" + name + profileExt)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return content, nil
}

// ListProfiles returns the embedded profile names.
func (e *EmbeddedLoader) ListProfiles() ([]string, error) {
	entries, err := fs.ReadDir(profiles, "profiles")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetRead, err)
	}
	return profileNames(entries), nil
}

func profileNames(entries []fs.DirEntry) []string {
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), profileExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), profileExt)
		if ValidateAssetName(name) == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
