// Package tokenizer estimates token counts for bundled text.
package tokenizer

import (
	"fmt"
	"strings"
)

// DefaultModel is the tokenizer model used when none is configured.
const DefaultModel = "gpt-4o"

// Counter estimates token counts for strings.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config selects the tokenizer model.
type Config struct {
	Model string
}

// NewCounter returns a Counter for the configured model together with the
// resolved model name.
func NewCounter(configuration Config) (Counter, string, error) {
	modelName := strings.TrimSpace(configuration.Model)
	if modelName == "" {
		modelName = DefaultModel
	}
	counter, counterError := newOpenAICounter(modelName)
	if counterError != nil {
		return nil, "", fmt.Errorf("resolve tokenizer model %s: %w", modelName, counterError)
	}
	return counter, modelName, nil
}
