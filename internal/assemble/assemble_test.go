package assemble_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/bundle/internal/assemble"
)

// textFileName is the readable text file used by the tests.
const textFileName = "note.txt"

// binaryFileName is the file holding binary content.
const binaryFileName = "blob.bin"

// textFileContent includes surrounding whitespace to verify trimming.
const textFileContent = "\nhello world\n\n"

// trimmedFileContent is the expected fenced body.
const trimmedFileContent = "hello world"

// binaryFileContent contains a NUL byte so it is detected as binary.
var binaryFileContent = []byte{0x00, 0x01, 0x02}

// TestFormatBlock verifies the fence framing and content trimming.
func TestFormatBlock(testingInstance *testing.T) {
	block := assemble.Block{Label: "b/note.txt", Content: textFileContent}
	expected := "```b/note.txt\n" + trimmedFileContent + "\n```"
	if actual := assemble.FormatBlock(block); actual != expected {
		testingInstance.Errorf("expected %q, got %q", expected, actual)
	}
}

// TestArtifactJoinsSections verifies the blank-line separation of tree and blocks.
func TestArtifactJoinsSections(testingInstance *testing.T) {
	treeLines := []string{"b", "└── note.txt"}
	blocks := []assemble.Block{{Label: "note.txt", Content: trimmedFileContent}}

	expected := "b\n└── note.txt\n\n```note.txt\n" + trimmedFileContent + "\n```"
	if actual := assemble.Artifact(treeLines, blocks); actual != expected {
		testingInstance.Errorf("expected %q, got %q", expected, actual)
	}
}

// TestCollectBlocksLabelsAndSkips verifies label derivation, binary skipping,
// and that collection survives unreadable entries.
func TestCollectBlocksLabelsAndSkips(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	textFilePath := filepath.Join(rootDirectory, textFileName)
	binaryFilePath := filepath.Join(rootDirectory, binaryFileName)
	missingFilePath := filepath.Join(rootDirectory, "missing.txt")

	if writeError := os.WriteFile(textFilePath, []byte(textFileContent), 0o644); writeError != nil {
		testingInstance.Fatalf("write %s: %v", textFilePath, writeError)
	}
	if writeError := os.WriteFile(binaryFilePath, binaryFileContent, 0o644); writeError != nil {
		testingInstance.Fatalf("write %s: %v", binaryFilePath, writeError)
	}

	var warningBuffer bytes.Buffer
	blocks := assemble.CollectBlocks([]string{binaryFilePath, missingFilePath, textFilePath}, rootDirectory, &warningBuffer)

	if len(blocks) != 1 {
		testingInstance.Fatalf("expected a single collected block, got %d", len(blocks))
	}
	if blocks[0].Label != textFileName {
		testingInstance.Errorf("expected label %q, got %q", textFileName, blocks[0].Label)
	}
	warningText := warningBuffer.String()
	if !strings.Contains(warningText, "binary") {
		testingInstance.Errorf("expected a binary-content warning, got %q", warningText)
	}
	if !strings.Contains(warningText, "could not read file") {
		testingInstance.Errorf("expected a read-failure warning, got %q", warningText)
	}
}
