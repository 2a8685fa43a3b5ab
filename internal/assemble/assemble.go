// Package assemble reads bundled files and produces the final artifact text.
package assemble

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/temirov/bundle/internal/hierarchy"
	"github.com/temirov/bundle/internal/utils"
)

const (
	fenceDelimiter = "```"
	// blockSeparator joins the tree section and every content block.
	blockSeparator = "\n\n"

	warningReadFileFormat      = "Warning: could not read file %s: %v\n"
	warningBinaryContentFormat = "Warning: skipping binary file %s\n"
)

// Block pairs a display label with the file content it frames. The label is
// exactly the ancestor-relative form used by the rendered tree, so tree
// entries and content blocks correlate by name.
type Block struct {
	AbsolutePath string
	Label        string
	Content      string
}

// CollectBlocks reads every resolved path in order and returns one block per
// readable text file. Read failures and binary content are reported on
// warningWriter and the affected file is omitted; collection never aborts.
func CollectBlocks(resolvedPaths []string, ancestorDirectory string, warningWriter io.Writer) []Block {
	blocks := make([]Block, 0, len(resolvedPaths))
	for _, absolutePath := range resolvedPaths {
		fileData, readError := os.ReadFile(absolutePath)
		if readError != nil {
			fmt.Fprintf(warningWriter, warningReadFileFormat, absolutePath, readError)
			continue
		}
		if utils.IsBinary(fileData) {
			fmt.Fprintf(warningWriter, warningBinaryContentFormat, absolutePath)
			continue
		}

		displayLabel, _ := hierarchy.Label(absolutePath, ancestorDirectory)
		blocks = append(blocks, Block{
			AbsolutePath: absolutePath,
			Label:        displayLabel,
			Content:      string(fileData),
		})
	}
	return blocks
}

// FormatBlock renders one content block as a Markdown fence whose info string
// is the block's label. Surrounding whitespace of the content is trimmed.
func FormatBlock(block Block) string {
	return fenceDelimiter + block.Label + "\n" + strings.TrimSpace(block.Content) + "\n" + fenceDelimiter
}

// Artifact joins the rendered tree lines and the content blocks into the
// final artifact text. Sections are separated by one blank line; no trailing
// newline is appended here, that is the writer's concern.
func Artifact(treeLines []string, blocks []Block) string {
	sections := make([]string, 0, len(blocks)+1)
	sections = append(sections, strings.Join(treeLines, "\n"))
	for _, block := range blocks {
		sections = append(sections, FormatBlock(block))
	}
	return strings.Join(sections, blockSeparator)
}
