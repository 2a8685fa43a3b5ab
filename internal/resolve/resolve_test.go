package resolve_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/temirov/bundle/internal/resolve"
)

// alphaFileName, betaFileName, and nestedFileName are the files created for expansion tests.
const alphaFileName = "alpha.txt"
const betaFileName = "beta.txt"
const nestedFileName = "gamma.txt"

// nestedDirectoryName holds the nested test file.
const nestedDirectoryName = "nested"

// sampleContent is written to every test file.
const sampleContent = "sample"

// missingPattern matches nothing in the test tree.
const missingPattern = "*.does-not-exist"

// createExpansionTree creates the test files and returns their absolute paths.
func createExpansionTree(testingInstance *testing.T) (string, []string) {
	testingInstance.Helper()
	rootDirectory := testingInstance.TempDir()
	nestedDirectory := filepath.Join(rootDirectory, nestedDirectoryName)
	if makeError := os.MkdirAll(nestedDirectory, 0o755); makeError != nil {
		testingInstance.Fatalf("mkdir %s: %v", nestedDirectory, makeError)
	}

	createdPaths := []string{
		filepath.Join(rootDirectory, alphaFileName),
		filepath.Join(rootDirectory, betaFileName),
		filepath.Join(nestedDirectory, nestedFileName),
	}
	for _, createdPath := range createdPaths {
		if writeError := os.WriteFile(createdPath, []byte(sampleContent), 0o644); writeError != nil {
			testingInstance.Fatalf("write %s: %v", createdPath, writeError)
		}
	}
	sort.Strings(createdPaths)
	return rootDirectory, createdPaths
}

// TestExpandRecursiveGlob verifies that ** matches nested files and the
// result is sorted and absolute.
func TestExpandRecursiveGlob(testingInstance *testing.T) {
	rootDirectory, createdPaths := createExpansionTree(testingInstance)
	var warningBuffer bytes.Buffer

	resolvedPaths, expandError := resolve.Expand([]string{filepath.Join(rootDirectory, "**", "*.txt")}, &warningBuffer)
	if expandError != nil {
		testingInstance.Fatalf("expand failed: %v", expandError)
	}
	if strings.Join(resolvedPaths, ",") != strings.Join(createdPaths, ",") {
		testingInstance.Errorf("expected %v, got %v", createdPaths, resolvedPaths)
	}
	if warningBuffer.Len() != 0 {
		testingInstance.Errorf("unexpected warnings: %s", warningBuffer.String())
	}
}

// TestExpandDeduplicatesOverlappingPatterns verifies set semantics across patterns.
func TestExpandDeduplicatesOverlappingPatterns(testingInstance *testing.T) {
	rootDirectory, _ := createExpansionTree(testingInstance)
	var warningBuffer bytes.Buffer

	overlappingPatterns := []string{
		filepath.Join(rootDirectory, alphaFileName),
		filepath.Join(rootDirectory, "*.txt"),
	}
	resolvedPaths, expandError := resolve.Expand(overlappingPatterns, &warningBuffer)
	if expandError != nil {
		testingInstance.Fatalf("expand failed: %v", expandError)
	}
	if len(resolvedPaths) != 2 {
		testingInstance.Errorf("expected 2 deduplicated paths, got %v", resolvedPaths)
	}
}

// TestExpandWarnsOnMissingPattern verifies the per-pattern no-match warning.
func TestExpandWarnsOnMissingPattern(testingInstance *testing.T) {
	rootDirectory, _ := createExpansionTree(testingInstance)
	var warningBuffer bytes.Buffer

	patterns := []string{
		filepath.Join(rootDirectory, missingPattern),
		filepath.Join(rootDirectory, alphaFileName),
	}
	resolvedPaths, expandError := resolve.Expand(patterns, &warningBuffer)
	if expandError != nil {
		testingInstance.Fatalf("expand failed: %v", expandError)
	}
	if len(resolvedPaths) != 1 {
		testingInstance.Errorf("expected a single resolved path, got %v", resolvedPaths)
	}
	if !strings.Contains(warningBuffer.String(), "did not match any files") {
		testingInstance.Errorf("expected a no-match warning, got %q", warningBuffer.String())
	}
}

// TestExpandSkipsDirectories verifies that matched directories are skipped with a warning.
func TestExpandSkipsDirectories(testingInstance *testing.T) {
	rootDirectory, _ := createExpansionTree(testingInstance)
	var warningBuffer bytes.Buffer

	resolvedPaths, expandError := resolve.Expand([]string{filepath.Join(rootDirectory, "*")}, &warningBuffer)
	if expandError != nil {
		testingInstance.Fatalf("expand failed: %v", expandError)
	}
	for _, resolvedPath := range resolvedPaths {
		if filepath.Base(resolvedPath) == nestedDirectoryName {
			testingInstance.Errorf("directory %s leaked into the resolved set", resolvedPath)
		}
	}
	if !strings.Contains(warningBuffer.String(), "not a regular file") {
		testingInstance.Errorf("expected a non-regular-file warning, got %q", warningBuffer.String())
	}
}

// TestExpandEmptyResultIsFatal verifies the terminal empty-set error.
func TestExpandEmptyResultIsFatal(testingInstance *testing.T) {
	rootDirectory, _ := createExpansionTree(testingInstance)
	var warningBuffer bytes.Buffer

	_, expandError := resolve.Expand([]string{filepath.Join(rootDirectory, missingPattern)}, &warningBuffer)
	if !errors.Is(expandError, resolve.ErrNoFilesResolved) {
		testingInstance.Errorf("expected ErrNoFilesResolved, got %v", expandError)
	}
}
