package assets

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidAssetName rejects names that are empty, too long, or hold a
	// path separator, a dot or a NUL byte.
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid base path")
	ErrAssetRead       = errors.New("failed to read asset")
	ErrPathTraversal   = errors.New("path traversal detected")
)
