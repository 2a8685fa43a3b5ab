// Package hierarchy computes common ancestors and builds and renders the
// nested model of a resolved path set.
package hierarchy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/bundle/internal/types"
)

const (
	// warningDisjointRootsFormat reports paths without any common path prefix.
	warningDisjointRootsFormat = "no common ancestor for the input paths; using working directory %s"
)

// FindAncestor returns the deepest existing directory that is an ancestor of
// every path in the non-empty resolved set. When the paths share no path
// prefix at all the working directory is returned together with an
// AncestorResolution warning and the run continues in degraded mode.
func FindAncestor(resolvedPaths []string, workingDirectory string) (string, []types.Warning) {
	if len(resolvedPaths) == 1 {
		return filepath.Dir(resolvedPaths[0]), nil
	}

	commonPrefix := CommonPathPrefix(resolvedPaths)
	if commonPrefix == "" {
		warning := types.Warning{
			Kind:    types.WarningAncestorResolution,
			Message: fmt.Sprintf(warningDisjointRootsFormat, workingDirectory),
		}
		return workingDirectory, []types.Warning{warning}
	}

	return nearestExistingDirectory(commonPrefix), nil
}

// CommonPathPrefix returns the longest path shared by every input when
// compared segment by segment, so "/ab" and "/abc" share only the root.
// An empty string means the paths have no common prefix.
func CommonPathPrefix(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	prefixSegments := splitPathSegments(paths[0])
	for _, currentPath := range paths[1:] {
		currentSegments := splitPathSegments(currentPath)
		if len(currentSegments) < len(prefixSegments) {
			prefixSegments = prefixSegments[:len(currentSegments)]
		}
		for segmentIndex := range prefixSegments {
			if currentSegments[segmentIndex] != prefixSegments[segmentIndex] {
				prefixSegments = prefixSegments[:segmentIndex]
				break
			}
		}
		if len(prefixSegments) == 0 {
			return ""
		}
	}

	joinedPrefix := strings.Join(prefixSegments, "/")
	if joinedPrefix == "" {
		// A single empty segment remains when absolute paths share only "/".
		return string(filepath.Separator)
	}
	return filepath.FromSlash(joinedPrefix)
}

// nearestExistingDirectory walks upward from candidatePath until it reaches a
// path that exists as a directory, stopping at the filesystem root.
func nearestExistingDirectory(candidatePath string) string {
	currentCandidate := candidatePath
	for {
		candidateInfo, statError := os.Stat(currentCandidate)
		if statError == nil && candidateInfo.IsDir() {
			return currentCandidate
		}
		parentCandidate := filepath.Dir(currentCandidate)
		if parentCandidate == currentCandidate {
			return currentCandidate
		}
		currentCandidate = parentCandidate
	}
}

// splitPathSegments breaks a path into forward-slash segments. Absolute Unix
// paths begin with an empty segment that stands for the root.
func splitPathSegments(path string) []string {
	return strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")
}
