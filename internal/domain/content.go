package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PostKind is the tag of a post's content variant.
type PostKind string

// Supported post kinds. The string values match the type tags accepted at the
// API and CLI boundaries.
const (
	PostKindText  PostKind = "Text"
	PostKindImage PostKind = "Image"
	PostKindSale  PostKind = "Sale"
)

// SaleStatus is the state of a sale listing. ForSale is the only state that
// accepts discounts; Sold is terminal.
type SaleStatus string

// Possible sale status values
const (
	SaleStatusForSale SaleStatus = "for_sale"
	SaleStatusSold    SaleStatus = "sold"
)

// Content errors
var (
	ErrUnknownPostType = errors.New("unsupported post type")
	ErrEmptyImagePath  = errors.New("image path cannot be empty")
	ErrEmptySaleTitle  = errors.New("sale title cannot be empty")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrAlreadySold     = errors.New("the product has already been sold")
	ErrInvalidDiscount = errors.New("discount percent must be between 0 and 100")
)

// ParsePostKind converts a type tag into a PostKind.
// Returns ErrUnknownPostType for anything other than "Text", "Image" or "Sale".
func ParsePostKind(s string) (PostKind, error) {
	switch PostKind(s) {
	case PostKindText, PostKindImage, PostKindSale:
		return PostKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPostType, s)
	}
}

// ContentVisitor is implemented by anything that needs per-variant behaviour.
// Adding a content variant adds a method here, so every visitor stops
// compiling until it handles the new variant.
type ContentVisitor interface {
	VisitText(c *TextContent)
	VisitImage(c *ImageContent)
	VisitSale(c *SaleContent)
}

// PostContent is the variant payload of a Post. It is sealed: only the
// content types in this package implement it.
type PostContent interface {
	Kind() PostKind
	// Info is the text body, image path or sale title.
	Info() string
	Accept(v ContentVisitor)
	Validate() error
	sealed()
}

// TextContent is the payload of a text post.
type TextContent struct {
	Body string `json:"body"`
}

// ImageContent is the payload of an image post.
type ImageContent struct {
	Path string `json:"path"`
}

// SaleContent is the payload of a sale listing.
type SaleContent struct {
	Title    string     `json:"title"`
	Price    float64    `json:"price"`
	Location string     `json:"location"`
	Status   SaleStatus `json:"status"`
}

// NewSaleContent creates a listing in the ForSale state.
func NewSaleContent(title string, price float64, location string) *SaleContent {
	return &SaleContent{
		Title:    title,
		Price:    price,
		Location: location,
		Status:   SaleStatusForSale,
	}
}

func (c *TextContent) Kind() PostKind          { return PostKindText }
func (c *TextContent) Info() string            { return c.Body }
func (c *TextContent) Accept(v ContentVisitor) { v.VisitText(c) }
func (c *TextContent) sealed()                 {}

// Validate accepts any body, including an empty one.
func (c *TextContent) Validate() error {
	return nil
}

func (c *ImageContent) Kind() PostKind          { return PostKindImage }
func (c *ImageContent) Info() string            { return c.Path }
func (c *ImageContent) Accept(v ContentVisitor) { v.VisitImage(c) }
func (c *ImageContent) sealed()                 {}

// Validate checks that the image path is present.
func (c *ImageContent) Validate() error {
	if c.Path == "" {
		return ErrEmptyImagePath
	}
	return nil
}

func (c *SaleContent) Kind() PostKind          { return PostKindSale }
func (c *SaleContent) Info() string            { return c.Title }
func (c *SaleContent) Accept(v ContentVisitor) { v.VisitSale(c) }
func (c *SaleContent) sealed()                 {}

// Validate checks the listing's title, price and status.
func (c *SaleContent) Validate() error {
	if c.Title == "" {
		return ErrEmptySaleTitle
	}
	if c.Price < 0 {
		return ErrNegativePrice
	}
	switch c.Status {
	case SaleStatusForSale, SaleStatusSold:
		return nil
	default:
		return NewValidationError("status", "is not a valid sale status", nil)
	}
}

// IsSold reports whether the listing reached the terminal Sold state.
func (c *SaleContent) IsSold() bool {
	return c.Status == SaleStatusSold
}

// ApplyDiscount lowers the price by percent. Percent must lie in [0, 100] so
// the price never increases and never drops below zero.
func (c *SaleContent) ApplyDiscount(percent float64) error {
	if c.IsSold() {
		return ErrAlreadySold
	}
	if !(percent >= 0 && percent <= 100) { // also rejects NaN
		return ErrInvalidDiscount
	}
	c.Price -= (c.Price * percent) / 100
	return nil
}

// MarkSold moves the listing to the Sold state.
func (c *SaleContent) MarkSold() error {
	if c.IsSold() {
		return ErrAlreadySold
	}
	c.Status = SaleStatusSold
	return nil
}

// FormatPrice renders a price the way listings display it: integral prices
// keep one decimal ("100.0"), others use the shortest exact form ("92.5").
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
