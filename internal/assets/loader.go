package assets

// AssetLoader defines the contract for loading formatting profiles.
type AssetLoader interface {
	// LoadProfile loads a profile document by name (without .yaml extension).
	// Returns ErrProfileNotFound if the profile doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadProfile(name string) ([]byte, error)

	// ListProfiles returns the available profile names, sorted.
	ListProfiles() ([]string, error)
}

// profileExt is the file extension of profile documents.
const profileExt = ".yaml"
