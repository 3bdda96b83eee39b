package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName accepts bare names only: no separators and no dots, so a
// name can never point outside the styles directory or carry its own extension.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, `/\.`):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
