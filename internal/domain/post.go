package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Post
var (
	ErrEmptyPostID     = errors.New("post ID cannot be empty")
	ErrEmptyPostAuthor = errors.New("post author cannot be empty")
	ErrNilPostContent  = errors.New("post content cannot be nil")
)

// Post is a piece of content published by a user. The author is fixed at
// creation; only a sale listing's price and status change afterwards.
type Post struct {
	ID         uuid.UUID   `json:"id"`
	Kind       PostKind    `json:"kind"`
	AuthorID   uuid.UUID   `json:"author_id"`
	AuthorName string      `json:"author_name"`
	Content    PostContent `json:"content"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewPost creates a post authored by author with the given content.
// Returns an error if validation fails.
func NewPost(author *User, content PostContent) (*Post, error) {
	if author == nil {
		return nil, ErrEmptyPostAuthor
	}
	if content == nil {
		return nil, ErrNilPostContent
	}

	post := &Post{
		ID:         uuid.New(),
		Kind:       content.Kind(),
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPostID
	}
	if p.AuthorID == uuid.Nil {
		return ErrEmptyPostAuthor
	}
	if p.Content == nil {
		return ErrNilPostContent
	}
	if p.Kind != p.Content.Kind() {
		return NewValidationError("kind", "does not match content", nil)
	}
	return p.Content.Validate()
}

// Info returns the text body, image path or sale title of the post.
func (p *Post) Info() string {
	return p.Content.Info()
}

// IsAuthoredBy reports whether user published the post.
func (p *Post) IsAuthoredBy(user *User) bool {
	return user != nil && user.ID == p.AuthorID
}

// Sale returns the sale payload when the post is a listing.
func (p *Post) Sale() (*SaleContent, bool) {
	c, ok := p.Content.(*SaleContent)
	return c, ok
}

// Image returns the image payload when the post is an image post.
func (p *Post) Image() (*ImageContent, bool) {
	c, ok := p.Content.(*ImageContent)
	return c, ok
}

// Describe renders the post as it appears in a feed.
func (p *Post) Describe() string {
	d := &describer{author: p.AuthorName}
	p.Content.Accept(d)
	return d.out.String()
}

// Clone returns a deep copy of the post, content included.
func (p *Post) Clone() *Post {
	c := &cloner{}
	p.Content.Accept(c)
	clone := *p
	clone.Content = c.out
	return &clone
}

type cloner struct {
	out PostContent
}

func (c *cloner) VisitText(t *TextContent)   { cp := *t; c.out = &cp }
func (c *cloner) VisitImage(i *ImageContent) { cp := *i; c.out = &cp }
func (c *cloner) VisitSale(s *SaleContent)   { cp := *s; c.out = &cp }

type describer struct {
	author string
	out    strings.Builder
}

func (d *describer) VisitText(c *TextContent) {
	fmt.Fprintf(&d.out, "%s published a post:\n\"%s\"\n", d.author, c.Body)
}

func (d *describer) VisitImage(c *ImageContent) {
	fmt.Fprintf(&d.out, "%s posted a picture\n", d.author)
}

func (d *describer) VisitSale(c *SaleContent) {
	state := "For sale!"
	if c.IsSold() {
		state = "Sold!"
	}
	fmt.Fprintf(&d.out, "%s posted a product for sale:\n%s %s, price: %s, pickup from: %s\n",
		d.author, state, c.Title, FormatPrice(c.Price), c.Location)
}
