package assetkit

import (
	"path"
	"slices"
)

// IsDisabled reports whether disabled lists group itself or the
// "group/filename" pair.
func IsDisabled(group, filename string, disabled []string) bool {
	if slices.Contains(disabled, group) {
		return true
	}
	return filename != "" && slices.Contains(disabled, path.Join(group, filename))
}

// DisableList is a plugin's "disable" configuration.
type DisableList []string

// Has reports whether group or group/filename is disabled.
func (d DisableList) Has(group, filename string) bool {
	return IsDisabled(group, filename, d)
}

// AnyOf reports whether filename is disabled under any of groups.
func (d DisableList) AnyOf(filename string, groups ...string) bool {
	for _, g := range groups {
		if d.Has(g, filename) {
			return true
		}
	}
	return false
}
