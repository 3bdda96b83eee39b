package assets

// DefaultStyleName names the embedded policy stylesheet.
const DefaultStyleName = "vivaly"

// Stylesheet returns the complete fixed stylesheet: the VIVALY rules
// followed by the code highlighting palette.
func Stylesheet(loader AssetLoader) (string, error) {
	base, err := loader.LoadStyle(DefaultStyleName)
	if err != nil {
		return "", err
	}

	highlight, err := HighlightCSS(HighlightStyleName)
	if err != nil {
		return "", err
	}

	return base + "\n/* Code highlighting */\n" + highlight, nil
}
