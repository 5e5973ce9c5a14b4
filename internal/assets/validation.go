package assets

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateFilename checks that a declared filename stays inside its group
// directory. Forward-slash subdirectories are allowed ("vendor/reset.css");
// empty names, absolute paths, ".." segments, and backslashes are not.
func ValidateFilename(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "\\\x00") || !filepath.IsLocal(filepath.FromSlash(name)) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidateGroup checks that a group is a single path segment.
func ValidateGroup(group string) error {
	if group == "" {
		return fmt.Errorf("%w: empty group", ErrInvalidAssetName)
	}
	if strings.ContainsAny(group, "/\\\x00") || group == "." || group == ".." {
		return fmt.Errorf("%w: group %q", ErrInvalidAssetName, group)
	}
	return nil
}
