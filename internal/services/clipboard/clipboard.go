// Package clipboard copies bundle artifacts to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Writer places textual data on the system clipboard.
type Writer interface {
	Write(text string) error
}

// SystemWriter implements Writer using github.com/atotto/clipboard.
type SystemWriter struct{}

// NewSystemWriter constructs a clipboard writer backed by the OS clipboard.
func NewSystemWriter() *SystemWriter {
	return &SystemWriter{}
}

// Write copies text to the system clipboard.
func (writer *SystemWriter) Write(text string) error {
	return clipboard.WriteAll(text)
}

var _ Writer = (*SystemWriter)(nil)
