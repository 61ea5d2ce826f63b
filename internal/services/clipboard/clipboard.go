// Package clipboard copies generated documents to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier places textual content on the system clipboard.
type Copier interface {
	CopyText(content string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard service.
func NewService() *Service {
	return &Service{}
}

// CopyText writes content to the system clipboard.
func (service *Service) CopyText(content string) error {
	return clipboard.WriteAll(content)
}

var _ Copier = (*Service)(nil)
