package hierarchy

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/bundle/internal/types"
)

const (
	// warningLeafBecomesDirectoryFormat reports a file entry superseded by a directory.
	warningLeafBecomesDirectoryFormat = "path conflict: %q already bundled as a file but %s treats it as a directory; the file entry is dropped"
	// warningDirectoryStaysFormat reports a file entry refused because the name is a directory.
	warningDirectoryStaysFormat = "path conflict: %q already holds a directory; the file entry for %s is dropped"
	// warningNotRelativeFormat reports a path that falls back to its base name.
	warningNotRelativeFormat = "path %s is not relative to %s; using its base name"
)

// NodeKind distinguishes directory nodes from file leaves.
type NodeKind int

const (
	KindDirectory NodeKind = iota
	KindFile
)

// Node is one entry of the bundle hierarchy. A directory node carries a
// mapping from child name to child node; a file leaf carries nothing beyond
// its kind.
type Node struct {
	Kind     NodeKind
	Children map[string]*Node
}

// NewDirectoryNode returns an empty directory node.
func NewDirectoryNode() *Node {
	return &Node{Kind: KindDirectory, Children: make(map[string]*Node)}
}

// NewFileNode returns a file leaf.
func NewFileNode() *Node {
	return &Node{Kind: KindFile}
}

// SortedChildNames returns the node's child names in lexicographic order.
func (node *Node) SortedChildNames() []string {
	childNames := make([]string, 0, len(node.Children))
	for childName := range node.Children {
		childNames = append(childNames, childName)
	}
	sort.Strings(childNames)
	return childNames
}

// Build folds the resolved paths, relative to the ancestor directory, into a
// directory-rooted node graph. Structural conflicts are recovered in place
// and reported as warnings rather than aborting the build.
func Build(resolvedPaths []string, ancestorDirectory string) (*Node, []types.Warning) {
	rootNode := NewDirectoryNode()
	var warnings []types.Warning

	for _, absolutePath := range resolvedPaths {
		pathSegments, isRelative := RelativeSegments(absolutePath, ancestorDirectory)
		if !isRelative {
			warnings = append(warnings, types.Warning{
				Kind:    types.WarningRelativePathFallback,
				Message: fmt.Sprintf(warningNotRelativeFormat, absolutePath, ancestorDirectory),
			})
		}

		currentNode := rootNode
		for segmentIndex, segmentName := range pathSegments {
			isLeafSegment := segmentIndex == len(pathSegments)-1
			if isLeafSegment {
				existingNode, nameTaken := currentNode.Children[segmentName]
				if nameTaken && existingNode.Kind == KindDirectory {
					warnings = append(warnings, types.Warning{
						Kind:    types.WarningPathConflict,
						Message: fmt.Sprintf(warningDirectoryStaysFormat, segmentName, absolutePath),
					})
					break
				}
				currentNode.Children[segmentName] = NewFileNode()
				break
			}

			childNode, nameTaken := currentNode.Children[segmentName]
			if !nameTaken {
				childNode = NewDirectoryNode()
				currentNode.Children[segmentName] = childNode
			} else if childNode.Kind == KindFile {
				warnings = append(warnings, types.Warning{
					Kind:    types.WarningPathConflict,
					Message: fmt.Sprintf(warningLeafBecomesDirectoryFormat, segmentName, absolutePath),
				})
				childNode = NewDirectoryNode()
				currentNode.Children[segmentName] = childNode
			}
			currentNode = childNode
		}
	}

	return rootNode, warnings
}

// RelativeSegments returns the ancestor-relative path segments for
// absolutePath. When the path cannot be expressed relative to the ancestor
// the base name is returned alone and the second result is false.
func RelativeSegments(absolutePath, ancestorDirectory string) ([]string, bool) {
	relativePath, relativeError := filepath.Rel(ancestorDirectory, absolutePath)
	if relativeError != nil || relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(filepath.Separator)) {
		return []string{filepath.Base(absolutePath)}, false
	}
	return strings.Split(filepath.ToSlash(relativePath), "/"), true
}

// Label returns the display label shared by the rendered tree and the content
// blocks for absolutePath. The second result is false when the base-name
// fallback was used.
func Label(absolutePath, ancestorDirectory string) (string, bool) {
	pathSegments, isRelative := RelativeSegments(absolutePath, ancestorDirectory)
	return strings.Join(pathSegments, "/"), isRelative
}
