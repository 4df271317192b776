package service

import (
	"fmt"

	"github.com/phrazzld/minisocial/internal/domain"
)

// ContentSpec describes post content as it arrives from an outer surface
// (an HTTP request or a command line). Only the fields relevant to Type are read.
type ContentSpec struct {
	Type      string
	Text      string
	ImagePath string
	Title     string
	Price     float64
	Location  string
}

// PostFactory builds posts from content variants.
type PostFactory struct{}

// NewPostFactory creates a PostFactory.
func NewPostFactory() *PostFactory {
	return &PostFactory{}
}

// Create builds a post by author carrying content.
func (f *PostFactory) Create(author *domain.User, content domain.PostContent) (*domain.Post, error) {
	post, err := domain.NewPost(author, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// Content turns a ContentSpec into a sealed content variant. The type tag
// must be one of "Text", "Image" or "Sale"; anything else yields
// domain.ErrUnknownPostType.
func (f *PostFactory) Content(spec ContentSpec) (domain.PostContent, error) {
	kind, err := domain.ParsePostKind(spec.Type)
	if err != nil {
		return nil, err
	}

	var content domain.PostContent
	switch kind {
	case domain.PostKindText:
		content = &domain.TextContent{Body: spec.Text}
	case domain.PostKindImage:
		content = &domain.ImageContent{Path: spec.ImagePath}
	case domain.PostKindSale:
		content = domain.NewSaleContent(spec.Title, spec.Price, spec.Location)
	}

	if err := content.Validate(); err != nil {
		return nil, err
	}
	return content, nil
}
