package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// DefaultProfileName is the name of the profile used when none is given.
const DefaultProfileName = "default"

// LoadProfile loads a built-in formatting profile by name.
// Returns ErrProfileNotFound if the profile does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadProfile(name string) ([]byte, error) {
	return defaultLoader.LoadProfile(name)
}

// ListProfiles returns the names of the built-in profiles, sorted.
func ListProfiles() ([]string, error) {
	return defaultLoader.ListProfiles()
}
