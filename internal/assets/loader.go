package assets

// AssetLoader loads CSS styles by name (without the .css extension).
type AssetLoader interface {
	// LoadStyle returns ErrStyleNotFound if the style doesn't exist and
	// ErrInvalidAssetName if the name is unsafe.
	LoadStyle(name string) (string, error)
}
