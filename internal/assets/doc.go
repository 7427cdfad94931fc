// Package assets provides the formatting profiles applied to exported
// manuscripts. Profiles are YAML documents loaded from embedded files or
// from a custom directory.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default, abnt, apa)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - stacks them, custom layer first
//
// AssetResolver asks each layer in turn and moves on only when a profile
// is not found, so a directory may override one built-in profile and
// inherit the rest.
//
// # Directory Structure
//
//	{basePath}/
//	└── profiles/
//	    └── {name}.yaml
//
// # Security
//
// Profile names are validated before any lookup, and FilesystemLoader reads
// through an os.Root, so links leading outside basePath fail with
// ErrPathTraversal.
package assets
