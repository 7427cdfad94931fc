package assets

import (
	"errors"
	"slices"
)

// AssetResolver serves profiles from an ordered stack of loaders. The first
// layer that has a profile wins; built-in profiles always form the last layer.
type AssetResolver struct {
	layers []AssetLoader
}

// NewAssetResolver stacks a filesystem loader rooted at customBasePath on top
// of the embedded profiles. An empty customBasePath leaves only the embedded
// layer.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	var layers []AssetLoader
	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		layers = append(layers, custom)
	}
	return &AssetResolver{layers: append(layers, NewEmbeddedLoader())}, nil
}

// LoadProfile walks the layers in order. Only ErrProfileNotFound moves on to
// the next layer; a bad name or an unreadable file stops the walk.
func (r *AssetResolver) LoadProfile(name string) ([]byte, error) {
	err := ErrProfileNotFound
	for _, l := range r.layers {
		var data []byte
		data, err = l.LoadProfile(name)
		if !errors.Is(err, ErrProfileNotFound) {
			return data, err
		}
	}
	return nil, err
}

// ListProfiles merges the names of every layer, sorted and deduplicated.
func (r *AssetResolver) ListProfiles() ([]string, error) {
	var names []string
	for _, l := range r.layers {
		n, err := l.ListProfiles()
		if err != nil {
			return nil, err
		}
		names = append(names, n...)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

var _ AssetLoader = (*AssetResolver)(nil)
