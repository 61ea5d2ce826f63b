package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"
)

// openAICounter counts tokens with a tiktoken encoding.
type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

var _ Counter = openAICounter{}

func (counter openAICounter) Name() string {
	return counter.name
}

func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}
