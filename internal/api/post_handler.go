package api

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/phrazzld/minisocial/internal/api/shared"
	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/platform/logger"
	"github.com/phrazzld/minisocial/internal/service"
	"github.com/phrazzld/minisocial/internal/store"
)

// PostHandler handles post-related API requests. Posts published through
// the API are kept in a PostStore so later requests can address them by ID.
type PostHandler struct {
	network Network
	posts   store.PostStore
	factory *service.PostFactory
	logger  *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(network Network, posts store.PostStore, logger *slog.Logger) *PostHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostHandler{
		network: network,
		posts:   posts,
		factory: service.NewPostFactory(),
		logger:  logger.With("component", "post_handler"),
	}
}

// CreatePost handles POST /posts.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	author, ok := currentUser(w, r, h.network.Accounts())
	if !ok {
		return
	}

	var req CreatePostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	content, err := h.factory.Content(req.ContentSpec())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	post, err := h.network.Accounts().PublishPost(r.Context(), author, content)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.posts.Create(r.Context(), post); err != nil {
		log.Error("failed to save published post", "error", err, "post_id", post.ID)
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, postToResponse(post))
}

// GetPost handles GET /posts/{id}.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// GetPicture handles GET /posts/{id}/picture, drawing an image post as text.
func (h *PostHandler) GetPicture(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.network.Posts().Display(r.Context(), post, &buf); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithText(w, r, http.StatusOK, buf.String())
}

// LikePost handles POST /posts/{id}/likes.
func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	actor, post, ok := h.actorAndPost(w, r)
	if !ok {
		return
	}

	if err := h.network.Posts().Like(r.Context(), post, actor); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CommentPost handles POST /posts/{id}/comments.
func (h *PostHandler) CommentPost(w http.ResponseWriter, r *http.Request) {
	actor, post, ok := h.actorAndPost(w, r)
	if !ok {
		return
	}

	var req CommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.network.Posts().Comment(r.Context(), post, actor, req.Text); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DiscountPost handles POST /posts/{id}/discount.
func (h *PostHandler) DiscountPost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.ownPost(w, r)
	if !ok {
		return
	}

	var req DiscountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.network.Posts().Discount(r.Context(), post, *req.Percent, req.Password); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.saveAndRespond(w, r, post)
}

// MarkPostSold handles POST /posts/{id}/sold.
func (h *PostHandler) MarkPostSold(w http.ResponseWriter, r *http.Request) {
	post, ok := h.ownPost(w, r)
	if !ok {
		return
	}

	var req SoldRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.network.Posts().MarkSold(r.Context(), post, req.Password); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.saveAndRespond(w, r, post)
}

func (h *PostHandler) loadPost(w http.ResponseWriter, r *http.Request) (*domain.Post, bool) {
	postID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return nil, false
	}

	post, err := h.posts.GetByID(r.Context(), postID)
	if err != nil {
		HandleAPIError(w, r, err)
		return nil, false
	}
	return post, true
}

func (h *PostHandler) actorAndPost(w http.ResponseWriter, r *http.Request) (*domain.User, *domain.Post, bool) {
	actor, ok := currentUser(w, r, h.network.Accounts())
	if !ok {
		return nil, nil, false
	}
	post, ok := h.loadPost(w, r)
	if !ok {
		return nil, nil, false
	}
	return actor, post, true
}

// ownPost loads the post and checks the caller wrote it. The password in the
// request body is still verified by the service.
func (h *PostHandler) ownPost(w http.ResponseWriter, r *http.Request) (*domain.Post, bool) {
	actor, post, ok := h.actorAndPost(w, r)
	if !ok {
		return nil, false
	}
	if !post.IsAuthoredBy(actor) {
		HandleAPIError(w, r, domain.ErrUnauthorized)
		return nil, false
	}
	return post, true
}

func (h *PostHandler) saveAndRespond(w http.ResponseWriter, r *http.Request, post *domain.Post) {
	if err := h.posts.Update(r.Context(), post); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Error("failed to save post", "error", err, "post_id", post.ID)
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}
