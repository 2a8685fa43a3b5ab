package cli

import (
	"io"

	"github.com/fatih/color"

	"github.com/temirov/bundle/internal/types"
)

// warningMessageFormat frames every recovered condition reported to the operator.
const warningMessageFormat = "Warning: %s\n"

var warningColor = color.New(color.FgYellow)

// reportWarnings prints every recovered condition to the warning writer.
// Output is colored when the writer is a terminal.
func reportWarnings(warningWriter io.Writer, warnings []types.Warning) {
	for _, warning := range warnings {
		warningColor.Fprintf(warningWriter, warningMessageFormat, warning.Message)
	}
}
