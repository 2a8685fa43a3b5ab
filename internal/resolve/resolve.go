// Package resolve expands file patterns into a validated, ordered path set.
package resolve

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	warningInvalidPatternFormat = "Warning: skipping invalid pattern %q: %v\n"
	warningNoMatchFormat        = "Warning: pattern %q did not match any files\n"
	warningNotRegularFormat     = "Warning: skipping %s: not a regular file\n"
	warningUnreadableFormat     = "Warning: skipping unreadable file %s: %v\n"
	warningStatFormat           = "Warning: skipping %s: %v\n"

	errorAbsolutePathFormat = "getting absolute path for %s: %w"
)

// ErrNoFilesResolved reports that pattern expansion left no usable files.
// It is the only fatal condition of the resolution step.
var ErrNoFilesResolved = errors.New("no files resolved from the provided patterns")

// Expand resolves the provided patterns against the filesystem and returns
// the deduplicated, lexicographically sorted set of absolute regular-file
// paths. Patterns support doublestar globs including "**". Matches that are
// not readable regular files are skipped with a warning on warningWriter;
// only an empty final set is an error.
func Expand(patterns []string, warningWriter io.Writer) ([]string, error) {
	uniquePaths := make(map[string]struct{})

	for _, pattern := range patterns {
		matchedPaths, globError := doublestar.FilepathGlob(pattern)
		if globError != nil {
			fmt.Fprintf(warningWriter, warningInvalidPatternFormat, pattern, globError)
			continue
		}
		if len(matchedPaths) == 0 {
			fmt.Fprintf(warningWriter, warningNoMatchFormat, pattern)
			continue
		}

		for _, matchedPath := range matchedPaths {
			absolutePath, absolutePathError := filepath.Abs(matchedPath)
			if absolutePathError != nil {
				return nil, fmt.Errorf(errorAbsolutePathFormat, matchedPath, absolutePathError)
			}
			cleanPath := filepath.Clean(absolutePath)
			if _, alreadySeen := uniquePaths[cleanPath]; alreadySeen {
				continue
			}

			pathInfo, statError := os.Stat(cleanPath)
			if statError != nil {
				fmt.Fprintf(warningWriter, warningStatFormat, cleanPath, statError)
				continue
			}
			if !pathInfo.Mode().IsRegular() {
				fmt.Fprintf(warningWriter, warningNotRegularFormat, cleanPath)
				continue
			}
			if readableError := checkReadable(cleanPath); readableError != nil {
				fmt.Fprintf(warningWriter, warningUnreadableFormat, cleanPath, readableError)
				continue
			}

			uniquePaths[cleanPath] = struct{}{}
		}
	}

	if len(uniquePaths) == 0 {
		return nil, ErrNoFilesResolved
	}

	resolvedPaths := make([]string, 0, len(uniquePaths))
	for resolvedPath := range uniquePaths {
		resolvedPaths = append(resolvedPaths, resolvedPath)
	}
	sort.Strings(resolvedPaths)
	return resolvedPaths, nil
}

// checkReadable opens the file for reading to confirm access and releases the
// handle immediately.
func checkReadable(path string) error {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return openError
	}
	return fileHandle.Close()
}
