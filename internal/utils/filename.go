package utils

import (
	"os/exec"
	"strings"
)

// characters that are invalid in filenames on at least one supported
// platform (Windows being the strictest)
const illegalFilenameChars = `<>:"/\|?*`

// SaneFilename converts a clip title into a string that is safe to use as a
// filename on all supported platforms. Characters listed in excludeChars are
// replaced in addition to the always-illegal ones.
func SaneFilename(title, excludeChars string) string {
	mapped := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return '_'
		}
		if strings.ContainsRune(illegalFilenameChars, r) || strings.ContainsRune(excludeChars, r) {
			return '_'
		}
		return r
	}, title)

	mapped = strings.Trim(mapped, " .")
	if mapped == "" {
		return "ylestream"
	}
	return mapped
}

// FindBinary returns the full path of an executable, or an empty string when
// it is not installed.
func FindBinary(name string) string {
	if name == "" {
		return ""
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return ""
	}
	return path
}
