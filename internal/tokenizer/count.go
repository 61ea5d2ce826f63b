package tokenizer

import (
	"errors"
)

// CountResult captures the outcome of counting a document.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountDocument estimates tokens for the rendered document text.
func CountDocument(counter Counter, documentText string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	tokenCount, countError := counter.CountString(documentText)
	if countError != nil {
		return CountResult{}, countError
	}
	return CountResult{Tokens: tokenCount, Counted: true}, nil
}
