package hierarchy

import (
	"path/filepath"
	"strings"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	// currentDirectoryName is the relative form that stands for the working directory.
	currentDirectoryName = "."
)

// Render walks the directory-rooted node graph depth first and returns the
// display lines of the tree. Children are visited in lexicographic name
// order, so the rendering does not depend on insertion order. The first line
// is the provided root display name.
func Render(rootNode *Node, rootDisplayName string) []string {
	displayLines := []string{rootDisplayName}
	appendNodeLines(rootNode, "", &displayLines)
	return displayLines
}

// appendNodeLines emits one line per child of directoryNode and recurses into
// directory children only; file leaves never expand further.
func appendNodeLines(directoryNode *Node, linePrefix string, displayLines *[]string) {
	childNames := directoryNode.SortedChildNames()
	for childIndex, childName := range childNames {
		connector := treeBranchConnector
		childPadding := treeBranchPadding
		if childIndex == len(childNames)-1 {
			connector = treeLastConnector
			childPadding = treeLastPadding
		}
		*displayLines = append(*displayLines, linePrefix+connector+childName)

		childNode := directoryNode.Children[childName]
		if childNode.Kind == KindDirectory {
			appendNodeLines(childNode, linePrefix+childPadding, displayLines)
		}
	}
}

// RootDisplayName derives the first tree line from the ancestor directory.
// The ancestor is shown relative to the working directory when one contains
// the other; otherwise its absolute path is used. A relative form that
// reduces to "." is replaced with the directory's own name, falling back to
// "." for a nameless root.
func RootDisplayName(ancestorDirectory, workingDirectory string) string {
	if !isPathPrefix(workingDirectory, ancestorDirectory) && !isPathPrefix(ancestorDirectory, workingDirectory) {
		return ancestorDirectory
	}

	relativeName, relativeError := filepath.Rel(workingDirectory, ancestorDirectory)
	if relativeError != nil {
		return ancestorDirectory
	}
	if relativeName == currentDirectoryName {
		baseName := filepath.Base(ancestorDirectory)
		if baseName == string(filepath.Separator) {
			return currentDirectoryName
		}
		return baseName
	}
	return relativeName
}

// isPathPrefix reports whether ancestorCandidate equals descendantCandidate
// or contains it as a path prefix, compared segment-wise.
func isPathPrefix(ancestorCandidate, descendantCandidate string) bool {
	cleanAncestor := filepath.Clean(ancestorCandidate)
	cleanDescendant := filepath.Clean(descendantCandidate)
	if cleanAncestor == cleanDescendant {
		return true
	}
	withSeparator := cleanAncestor
	if !strings.HasSuffix(withSeparator, string(filepath.Separator)) {
		withSeparator += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanDescendant, withSeparator)
}
