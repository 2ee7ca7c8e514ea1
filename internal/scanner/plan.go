package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"panosort/internal/panorama"
)

// PlanDestination maps source, a file under inputRoot, to its copy location
// under outputRoot. The renamer only changes the destination name; callers
// still read from source.
func PlanDestination(source, inputRoot, outputRoot string, renamer panorama.Renamer) (string, error) {
	renamed := renamer.Adjust(source)
	rel, err := filepath.Rel(inputRoot, renamed)
	if err != nil {
		return "", fmt.Errorf("relative path for %s: %w", source, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside input root %s", source, inputRoot)
	}
	return filepath.Join(outputRoot, rel), nil
}

// extensionOf returns the lower-cased text after the last dot in name, or the
// whole name when it has no dot.
func extensionOf(name string) string {
	return strings.ToLower(name[strings.LastIndexByte(name, '.')+1:])
}

// within reports whether path equals root or lies beneath it.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
