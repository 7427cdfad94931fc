package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// profilesDir is the subdirectory of a base path holding profile documents.
const profilesDir = "profiles"

// FilesystemLoader loads profiles from {basePath}/profiles. Every read goes
// through an os.Root opened on basePath, so neither ".." nor a symlink can
// reach a file outside it.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader returns a loader for basePath, which must be a
// readable directory. Otherwise the error wraps ErrInvalidBasePath.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	defer root.Close()

	if _, err := fs.ReadDir(root.FS(), "."); err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %v", ErrInvalidBasePath, abs, err)
	}
	return &FilesystemLoader{basePath: abs}, nil
}

// LoadProfile reads profiles/{name}.yaml under the base path.
func (f *FilesystemLoader) LoadProfile(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(f.basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer root.Close()

	rel := path.Join(profilesDir, name+profileExt)
	content, err := root.ReadFile(rel)
	switch {
	case err == nil:
		return content, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	case isSymlink(root, rel):
		// os.Root refuses links that resolve outside the base path.
		return nil, fmt.Errorf("%w: %s", ErrPathTraversal, rel)
	}
	return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
}

// ListProfiles returns the profile names under {basePath}/profiles, sorted.
// A missing profiles directory yields no names.
func (f *FilesystemLoader) ListProfiles() ([]string, error) {
	root, err := os.OpenRoot(f.basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer root.Close()

	entries, err := fs.ReadDir(root.FS(), profilesDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return profileNames(entries), nil
}

func isSymlink(root *os.Root, name string) bool {
	info, err := root.Lstat(name)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

var _ AssetLoader = (*FilesystemLoader)(nil)
