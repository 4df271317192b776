package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/service"
)

// Common request/response structures

// CredentialsRequest defines the payload for the sign-up and log-in
// endpoints. Password length is checked by the network so the client sees
// the same rule the console does.
type CredentialsRequest struct {
	Name     string `json:"name"     validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}

// UserResponse describes a member of the network.
type UserResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Online    bool      `json:"online"`
	PostCount int       `json:"post_count"`
}

// SessionResponse defines the successful response for the log-in endpoint.
type SessionResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT used for API authorization
	AccessToken string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// NetworkResponse defines the response for the network summary endpoint.
type NetworkResponse struct {
	Name    string         `json:"name"`
	Summary string         `json:"summary"`
	Users   []UserResponse `json:"users"`
}

// CreatePostRequest defines the payload for publishing a post. Which fields
// are used depends on Type: "Text" reads Text, "Image" reads ImagePath and
// "Sale" reads Title, Price and Location.
type CreatePostRequest struct {
	Type      string  `json:"type"                 validate:"required"`
	Text      string  `json:"text,omitempty"`
	ImagePath string  `json:"image_path,omitempty"`
	Title     string  `json:"title,omitempty"`
	Price     float64 `json:"price,omitempty"      validate:"gte=0"`
	Location  string  `json:"location,omitempty"`
}

// ContentSpec converts the request into the factory's input.
func (r CreatePostRequest) ContentSpec() service.ContentSpec {
	return service.ContentSpec{
		Type:      r.Type,
		Text:      r.Text,
		ImagePath: r.ImagePath,
		Title:     r.Title,
		Price:     r.Price,
		Location:  r.Location,
	}
}

// PostResponse describes a post. Sale fields are only set for sale listings.
type PostResponse struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	AuthorID    uuid.UUID `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Info        string    `json:"info"`
	Description string    `json:"description"`
	Price       *float64  `json:"price,omitempty"`
	Location    string    `json:"location,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommentRequest defines the payload for commenting on a post. An empty
// text is a valid comment.
type CommentRequest struct {
	Text string `json:"text"`
}

// DiscountRequest defines the payload for discounting a sale listing.
type DiscountRequest struct {
	Percent  *float64 `json:"percent"  validate:"required"`
	Password string   `json:"password" validate:"required"`
}

// SoldRequest defines the payload for marking a sale listing as sold.
type SoldRequest struct {
	Password string `json:"password" validate:"required"`
}

// NotificationResponse is one entry of a user's notification list.
type NotificationResponse struct {
	Type      string    `json:"type"`
	Actor     string    `json:"actor"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationsResponse defines the response for the notifications endpoint.
// Text holds the same rendering the console prints.
type NotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Text          string                 `json:"text"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.ID,
		Name:      u.Name,
		Online:    u.Online,
		PostCount: u.PostCount,
	}
}

func postToResponse(p *domain.Post) PostResponse {
	resp := PostResponse{
		ID:          p.ID,
		Kind:        string(p.Kind),
		AuthorID:    p.AuthorID,
		AuthorName:  p.AuthorName,
		Info:        p.Info(),
		Description: p.Describe(),
		CreatedAt:   p.CreatedAt,
	}
	if sale, ok := p.Sale(); ok {
		price := sale.Price
		resp.Price = &price
		resp.Location = sale.Location
		resp.Status = string(sale.Status)
	}
	return resp
}

func notificationToResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		Type:      string(n.Type),
		Actor:     n.ActorName,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
}
