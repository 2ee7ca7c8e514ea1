package panorama

import (
	"path/filepath"
	"strings"
)

// Renamer injects a keyword into file names that lack it.
type Renamer struct {
	Keyword string
	Suffix  string
}

// NewRenamer returns a Renamer appending suffix when keyword is absent.
func NewRenamer(keyword, suffix string) Renamer {
	return Renamer{Keyword: keyword, Suffix: suffix}
}

// Adjust returns path with Suffix inserted before the extension when the base
// name (without extension) does not contain Keyword. The directory portion is
// preserved as given.
func (r Renamer) Adjust(path string) string {
	dir, file := filepath.Split(path)
	name, ext := splitExt(file)
	if strings.Contains(name, r.Keyword) {
		return path
	}
	return dir + name + r.Suffix + ext
}

// splitExt splits file into name and extension. Leading dots belong to the
// name, so ".hidden" has no extension and "..jpg" has none either.
func splitExt(file string) (string, string) {
	idx := strings.LastIndexByte(file, '.')
	if idx <= 0 {
		return file, ""
	}
	if strings.Trim(file[:idx], ".") == "" {
		return file, ""
	}
	return file[:idx], file[idx:]
}
