// ABOUTME: Path helpers for loading sounds
// ABOUTME: Separator normalization, filename extraction and extension checks
package sound

import "strings"

// Extension is the file extension Load accepts
const Extension = ".wav"

// CleanPath turns backslashes into slashes and collapses repeated separators
func CleanPath(path string) string {
	var b strings.Builder
	b.Grow(len(path))

	lastWasSlash := false
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '\\' {
			c = '/'
		}
		if c == '/' {
			if lastWasSlash {
				continue
			}
			lastWasSlash = true
		} else {
			lastWasSlash = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Filename returns the segment after the last separator
func Filename(path string) string {
	path = CleanPath(path)
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ValidExtension reports whether path names a file with the .wav extension.
// The match is case-sensitive. A dot that starts the filename (".wav",
// "dir/.wav") does not begin an extension.
func ValidExtension(path string) bool {
	name := Filename(path)
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return false
	}
	return name[dot:] == Extension
}
