// Package types defines every cross‑package data structure used by the bundle CLI.
package types

import "encoding/xml"

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	CommandPack = "pack"
	CommandTree = "tree"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// WarningKind identifies a recoverable condition reported during a run.
type WarningKind string

const (
	// WarningAncestorResolution reports that no common ancestor exists and the
	// working directory was used instead.
	WarningAncestorResolution WarningKind = "ancestor_resolution"
	// WarningPathConflict reports a name bound as both a file and a directory.
	WarningPathConflict WarningKind = "path_conflict"
	// WarningRelativePathFallback reports a path that could not be expressed
	// relative to the ancestor directory.
	WarningRelativePathFallback WarningKind = "relative_path_fallback"
)

// Warning describes a recovered condition surfaced to the operator.
type Warning struct {
	Kind    WarningKind
	Message string
}

// FileOutput represents one bundled file in structured output. Path carries
// the ancestor-relative label used by the rendered tree.
type FileOutput struct {
	Path         string `json:"path" xml:"path"`
	Type         string `json:"type" xml:"type"`
	Content      string `json:"content" xml:"content"`
	Size         string `json:"size,omitempty" xml:"size,omitempty"`
	SizeBytes    int64  `json:"-" xml:"-"`
	LastModified string `json:"lastModified,omitempty" xml:"lastModified,omitempty"`
	MimeType     string `json:"mimeType,omitempty" xml:"mimeType,omitempty"`
	Tokens       int    `json:"tokens,omitempty" xml:"tokens,omitempty"`
}

// TreeOutputNode mirrors one node of the bundle hierarchy in structured output.
type TreeOutputNode struct {
	XMLName  xml.Name          `json:"-" xml:"node"`
	Name     string            `json:"name" xml:"name"`
	Type     string            `json:"type" xml:"type"`
	Children []*TreeOutputNode `json:"children,omitempty" xml:"children>node,omitempty"`
}

// OutputSummary captures aggregate information about bundled files.
type OutputSummary struct {
	TotalFiles  int    `json:"totalFiles" xml:"totalFiles"`
	TotalSize   string `json:"totalSize" xml:"totalSize"`
	TotalTokens int    `json:"totalTokens,omitempty" xml:"totalTokens,omitempty"`
	Model       string `json:"model,omitempty" xml:"model,omitempty"`
}

// PackOutput is the full structured result of a pack run.
type PackOutput struct {
	XMLName xml.Name        `json:"-" xml:"bundle"`
	Root    string          `json:"root" xml:"root"`
	Tree    *TreeOutputNode `json:"tree" xml:"tree>node"`
	Files   []FileOutput    `json:"files,omitempty" xml:"files>file,omitempty"`
	Summary *OutputSummary  `json:"summary,omitempty" xml:"summary,omitempty"`
}
