package filesystem

import (
	"strings"

	"github.com/brettbedarf/treefs"
)

// JoinPath composes a child path with exactly one separator between
// parentPath and name, whether or not either side already carries one.
// Joining the root onto itself yields the root.
func JoinPath(parentPath, name string) string {
	return strings.TrimRight(parentPath, treefs.Separator) + treefs.Separator + strings.TrimLeft(name, treefs.Separator)
}

// SplitSegments splits a relative descriptor path into trimmed, non-empty segments
func SplitSegments(p string) []string {
	parts := strings.Split(p, treefs.Separator)
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// DirName returns name with the trailing separator every directory name carries
func DirName(name string) string {
	if strings.HasSuffix(name, treefs.Separator) {
		return name
	}
	return name + treefs.Separator
}
