package hierarchy_test

import (
	"testing"

	"github.com/temirov/bundle/internal/hierarchy"
	"github.com/temirov/bundle/internal/types"
)

// ancestorDirectoryPath is the fixed ancestor used by the builder tests.
const ancestorDirectoryPath = "/a"

// countFileLeaves returns the number of file leaves reachable from node.
func countFileLeaves(node *hierarchy.Node) int {
	if node.Kind == hierarchy.KindFile {
		return 1
	}
	leafCount := 0
	for _, childNode := range node.Children {
		leafCount += countFileLeaves(childNode)
	}
	return leafCount
}

// TestBuildOneLeafPerPath verifies that every input path produces exactly one file leaf.
func TestBuildOneLeafPerPath(testingInstance *testing.T) {
	resolvedPaths := []string{"/a/b/x.txt", "/a/b/y.txt", "/a/z.txt"}

	rootNode, warnings := hierarchy.Build(resolvedPaths, ancestorDirectoryPath)
	if len(warnings) != 0 {
		testingInstance.Fatalf("unexpected warnings: %v", warnings)
	}
	if leafCount := countFileLeaves(rootNode); leafCount != len(resolvedPaths) {
		testingInstance.Errorf("expected %d leaves, got %d", len(resolvedPaths), leafCount)
	}
}

// TestBuildConflictFileBecomesDirectory verifies that a file entry reused as
// an intermediate segment is replaced with a directory and reported.
func TestBuildConflictFileBecomesDirectory(testingInstance *testing.T) {
	resolvedPaths := []string{"/a/b", "/a/b/c.txt"}

	rootNode, warnings := hierarchy.Build(resolvedPaths, ancestorDirectoryPath)
	if len(warnings) != 1 || warnings[0].Kind != types.WarningPathConflict {
		testingInstance.Fatalf("expected a single path conflict warning, got %v", warnings)
	}

	conflictedNode, nodePresent := rootNode.Children["b"]
	if !nodePresent || conflictedNode.Kind != hierarchy.KindDirectory {
		testingInstance.Fatalf("expected %q to become a directory node", "b")
	}
	leafNode, leafPresent := conflictedNode.Children["c.txt"]
	if !leafPresent || leafNode.Kind != hierarchy.KindFile {
		testingInstance.Errorf("expected %q to remain a file leaf under the directory", "c.txt")
	}
}

// TestBuildConflictDirectoryKeepsPriority verifies that a file landing on an
// existing directory name is dropped with a warning, not silently merged.
func TestBuildConflictDirectoryKeepsPriority(testingInstance *testing.T) {
	resolvedPaths := []string{"/a/b/c.txt", "/a/b"}

	rootNode, warnings := hierarchy.Build(resolvedPaths, ancestorDirectoryPath)
	if len(warnings) != 1 || warnings[0].Kind != types.WarningPathConflict {
		testingInstance.Fatalf("expected a single path conflict warning, got %v", warnings)
	}

	directoryNode, nodePresent := rootNode.Children["b"]
	if !nodePresent || directoryNode.Kind != hierarchy.KindDirectory {
		testingInstance.Fatalf("expected %q to stay a directory node", "b")
	}
	if leafCount := countFileLeaves(rootNode); leafCount != 1 {
		testingInstance.Errorf("expected a single surviving leaf, got %d", leafCount)
	}
}

// TestBuildRelativeFallback verifies that a path outside the ancestor falls
// back to its base name and produces a warning.
func TestBuildRelativeFallback(testingInstance *testing.T) {
	resolvedPaths := []string{"/elsewhere/q.txt"}

	rootNode, warnings := hierarchy.Build(resolvedPaths, ancestorDirectoryPath)
	if len(warnings) != 1 || warnings[0].Kind != types.WarningRelativePathFallback {
		testingInstance.Fatalf("expected a single relative path fallback warning, got %v", warnings)
	}
	leafNode, leafPresent := rootNode.Children["q.txt"]
	if !leafPresent || leafNode.Kind != hierarchy.KindFile {
		testingInstance.Errorf("expected base name leaf %q at the root", "q.txt")
	}
}

// TestLabelMatchesRelativeSegments verifies that labels join the same
// segments the builder walks.
func TestLabelMatchesRelativeSegments(testingInstance *testing.T) {
	displayLabel, isRelative := hierarchy.Label("/a/b/c.txt", ancestorDirectoryPath)
	if !isRelative {
		testingInstance.Fatal("expected the path to be relative to the ancestor")
	}
	if displayLabel != "b/c.txt" {
		testingInstance.Errorf("expected label %q, got %q", "b/c.txt", displayLabel)
	}

	fallbackLabel, fallbackRelative := hierarchy.Label("/elsewhere/q.txt", ancestorDirectoryPath)
	if fallbackRelative {
		testingInstance.Fatal("expected the base name fallback to be reported")
	}
	if fallbackLabel != "q.txt" {
		testingInstance.Errorf("expected fallback label %q, got %q", "q.txt", fallbackLabel)
	}
}
