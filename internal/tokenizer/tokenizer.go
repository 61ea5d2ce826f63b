// Package tokenizer estimates token counts for generated documents.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	// DefaultModel is assumed when no model is configured.
	DefaultModel = "gpt-4o"
	// fallbackEncodingName serves models without a dedicated encoding.
	fallbackEncodingName = "cl100k_base"
)

// openAIModelPrefixes identify models with dedicated tiktoken encodings.
var openAIModelPrefixes = []string{
	"gpt-",
	"text-embedding",
	"davinci",
	"curie",
	"babbage",
	"ada",
	"code-",
}

// NewCounter returns a Counter for the requested model together with the
// name reported in the summary. Models without a dedicated encoding fall
// back to cl100k_base.
func NewCounter(configuration Config) (Counter, string, error) {
	modelName := strings.TrimSpace(configuration.Model)
	if modelName == "" {
		modelName = DefaultModel
	}
	normalizedModelName := strings.ToLower(modelName)

	if isOpenAIModel(normalizedModelName) {
		encoding, encodingError := tiktoken.EncodingForModel(normalizedModelName)
		if encodingError == nil && encoding != nil {
			return openAICounter{encoding: encoding, name: normalizedModelName}, modelName, nil
		}
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(fallbackEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return openAICounter{encoding: fallbackEncoding, name: fallbackEncodingName}, fallbackEncodingName, nil
}

func isOpenAIModel(modelName string) bool {
	for _, modelPrefix := range openAIModelPrefixes {
		if strings.HasPrefix(modelName, modelPrefix) {
			return true
		}
	}
	return false
}
