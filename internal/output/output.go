// Package output converts run results into their raw, JSON, and XML renderings.
package output

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/bundle/internal/assemble"
	"github.com/temirov/bundle/internal/hierarchy"
	"github.com/temirov/bundle/internal/tokenizer"
	"github.com/temirov/bundle/internal/types"
	"github.com/temirov/bundle/internal/utils"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	warningTokenCountFormat = "Warning: failed to count tokens for %s: %v\n"
)

// BuildFileOutputs converts collected content blocks into structured file
// records enriched with size, timestamp, and MIME metadata. When counter is
// non-nil, a token count is attached to every countable file.
func BuildFileOutputs(blocks []assemble.Block, counter tokenizer.Counter) []types.FileOutput {
	fileOutputs := make([]types.FileOutput, 0, len(blocks))
	for _, block := range blocks {
		fileOutput := types.FileOutput{
			Path:    block.Label,
			Type:    types.NodeTypeFile,
			Content: strings.TrimSpace(block.Content),
		}
		if fileInfo, statError := os.Stat(block.AbsolutePath); statError == nil {
			fileOutput.SizeBytes = fileInfo.Size()
			fileOutput.Size = utils.FormatFileSize(fileInfo.Size())
			fileOutput.LastModified = utils.FormatTimestamp(fileInfo.ModTime())
		}
		fileOutput.MimeType = utils.DetectMimeType(block.AbsolutePath)
		if counter != nil {
			countResult, countError := tokenizer.CountBytes(counter, []byte(block.Content))
			if countError != nil {
				fmt.Fprintf(os.Stderr, warningTokenCountFormat, block.AbsolutePath, countError)
			} else if countResult.Counted {
				fileOutput.Tokens = countResult.Tokens
			}
		}
		fileOutputs = append(fileOutputs, fileOutput)
	}
	return fileOutputs
}

// TreeOutputFromNode converts a hierarchy node graph into its serializable
// mirror. Children appear in lexicographic name order.
func TreeOutputFromNode(name string, node *hierarchy.Node) *types.TreeOutputNode {
	outputNode := &types.TreeOutputNode{Name: name}
	if node.Kind == hierarchy.KindFile {
		outputNode.Type = types.NodeTypeFile
		return outputNode
	}

	outputNode.Type = types.NodeTypeDirectory
	for _, childName := range node.SortedChildNames() {
		outputNode.Children = append(outputNode.Children, TreeOutputFromNode(childName, node.Children[childName]))
	}
	return outputNode
}

// BuildPackOutput assembles the full structured result of a pack run.
func BuildPackOutput(rootDisplayName string, rootNode *hierarchy.Node, fileOutputs []types.FileOutput, summary *types.OutputSummary) *types.PackOutput {
	return &types.PackOutput{
		Root:    rootDisplayName,
		Tree:    TreeOutputFromNode(rootDisplayName, rootNode),
		Files:   fileOutputs,
		Summary: summary,
	}
}

// ComputeSummary aggregates file counts, sizes, and token totals.
func ComputeSummary(fileOutputs []types.FileOutput, modelName string) *types.OutputSummary {
	var totalBytes int64
	var totalTokens int
	for _, fileOutput := range fileOutputs {
		totalBytes += fileOutput.SizeBytes
		totalTokens += fileOutput.Tokens
	}
	return &types.OutputSummary{
		TotalFiles:  len(fileOutputs),
		TotalSize:   utils.FormatFileSize(totalBytes),
		TotalTokens: totalTokens,
		Model:       modelName,
	}
}

// FormatSummaryLine formats an OutputSummary into the raw summary line.
func FormatSummaryLine(summary *types.OutputSummary) string {
	if summary == nil {
		summary = &types.OutputSummary{}
	}
	label := "files"
	if summary.TotalFiles == 1 {
		label = "file"
	}
	tokenSuffix := ""
	if summary.TotalTokens > 0 {
		tokenSuffix = fmt.Sprintf(", %d tokens", summary.TotalTokens)
	}
	modelSuffix := ""
	if summary.Model != "" {
		modelSuffix = fmt.Sprintf(" (model: %s)", summary.Model)
	}
	return fmt.Sprintf("Summary: %d %s, %s%s%s", summary.TotalFiles, label, summary.TotalSize, tokenSuffix, modelSuffix)
}

// RenderJSON marshals the pack output as indented JSON.
func RenderJSON(packOutput *types.PackOutput) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(packOutput, indentPrefix, indentSpacer)
	return string(encoded), jsonEncodeError
}

// RenderXML marshals the pack output as an XML document.
func RenderXML(packOutput *types.PackOutput) (string, error) {
	encoded, xmlMarshalError := xml.MarshalIndent(packOutput, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xmlHeader + string(encoded), nil
}
