package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/events"
	"github.com/phrazzld/minisocial/internal/notify"
	"github.com/phrazzld/minisocial/internal/platform/render"
	"github.com/phrazzld/minisocial/internal/service/auth"
	"github.com/phrazzld/minisocial/internal/store"
)

// PostService provides the operations other users, and the author, perform
// on a published post.
type PostService interface {
	// Like records "<actor> liked your post" for the author.
	Like(ctx context.Context, post *domain.Post, actor *domain.User) error

	// Comment records "<actor> commented on your post: <text>" for the author.
	Comment(ctx context.Context, post *domain.Post, actor *domain.User, text string) error

	// Discount lowers a sale listing's price by percent. Only the author may
	// do this, proven by password.
	Discount(ctx context.Context, post *domain.Post, percent float64, password string) error

	// MarkSold moves a sale listing to the sold state. Only the author may do
	// this, proven by password.
	MarkSold(ctx context.Context, post *domain.Post, password string) error

	// Display renders an image post onto w.
	Display(ctx context.Context, post *domain.Post, w io.Writer) error
}

// PostServiceImpl implements the PostService interface
type PostServiceImpl struct {
	users    store.UserStore
	verifier auth.PasswordVerifier
	events   events.EventEmitter
	renderer render.ImageRenderer
	logger   *slog.Logger
}

var _ PostService = (*PostServiceImpl)(nil)

func newPostService(
	users store.UserStore,
	verifier auth.PasswordVerifier,
	emitter events.EventEmitter,
	renderer render.ImageRenderer,
	logger *slog.Logger,
) *PostServiceImpl {
	if renderer == nil {
		renderer = render.NewASCIIRenderer(render.DefaultWidth, logger)
	}
	return &PostServiceImpl{
		users:    users,
		verifier: verifier,
		events:   emitter,
		renderer: renderer,
		logger:   logger.With("component", "post_service"),
	}
}

// author re-reads the stored state of post's author.
func (s *PostServiceImpl) author(ctx context.Context, post *domain.Post) (*domain.User, error) {
	if post == nil {
		return nil, ErrNilPost
	}
	user, err := s.users.GetByID(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve author of post %s: %w", post.ID, err)
	}
	return user, nil
}

// Like sends the author "<actor> liked your post" unless actor is the
// author. The author must be online.
func (s *PostServiceImpl) Like(ctx context.Context, post *domain.Post, actor *domain.User) error {
	if actor == nil {
		return ErrNilUser
	}
	author, err := s.author(ctx, post)
	if err != nil {
		return err
	}
	if !author.Online {
		return domain.ErrUserOffline
	}
	if author.ID == actor.ID {
		return nil
	}

	msg := domain.LikeMessage(actor.Name)
	s.logger.Info(fmt.Sprintf("notification to %s: %s", author.Name, msg),
		"post_id", post.ID,
		"actor", actor.Name)
	return s.emit(ctx, events.TypePostLiked, author, actor.Name, msg)
}

// Comment sends the author "<actor> commented on your post: <text>" unless
// actor is the author. The author must be online.
func (s *PostServiceImpl) Comment(ctx context.Context, post *domain.Post, actor *domain.User, text string) error {
	if actor == nil {
		return ErrNilUser
	}
	author, err := s.author(ctx, post)
	if err != nil {
		return err
	}
	if !author.Online {
		return domain.ErrUserOffline
	}
	if author.ID == actor.ID {
		return nil
	}

	msg := domain.CommentMessage(actor.Name, text)
	s.logger.Info(fmt.Sprintf("notification to %s: %s", author.Name, msg),
		"post_id", post.ID,
		"actor", actor.Name)
	return s.emit(ctx, events.TypePostCommented, author, actor.Name, msg)
}

func (s *PostServiceImpl) emit(ctx context.Context, eventType string, author *domain.User, actor, msg string) error {
	event, err := notify.NewEvent(eventType, author.ID, actor, msg)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	if err := s.events.EmitEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	return nil
}

// Discount applies price -= price*percent/100 to a sale listing. Checks run
// in order, before anything changes: the author is online, the item is not
// sold, the password is the author's, percent lies in [0,100].
func (s *PostServiceImpl) Discount(ctx context.Context, post *domain.Post, percent float64, password string) error {
	sale, author, err := s.saleAndAuthor(ctx, post)
	if err != nil {
		return err
	}
	if !author.Online {
		return domain.ErrUserOffline
	}
	if sale.IsSold() {
		s.logger.Info("The product has already been sold", "post_id", post.ID)
		return domain.ErrAlreadySold
	}

	decision := auth.AuthorizeOwner(s.verifier, author, password)
	if !decision.Allowed() {
		s.logger.Debug("discount denied",
			"post_id", post.ID,
			"outcome", decision.Outcome.String())
		return decision.Err()
	}

	if err := sale.ApplyDiscount(percent); err != nil {
		return err
	}

	s.logger.Info(fmt.Sprintf("Discount on %s product! the new price is: %s",
		author.Name, domain.FormatPrice(sale.Price)),
		"post_id", post.ID,
		"percent", percent)
	return nil
}

// MarkSold moves a sale listing to the sold state. A sold listing yields
// domain.ErrAlreadySold and keeps its price.
func (s *PostServiceImpl) MarkSold(ctx context.Context, post *domain.Post, password string) error {
	sale, author, err := s.saleAndAuthor(ctx, post)
	if err != nil {
		return err
	}
	if sale.IsSold() {
		s.logger.Info("The product has already been sold", "post_id", post.ID)
		return domain.ErrAlreadySold
	}

	decision := auth.AuthorizeOwner(s.verifier, author, password)
	if !decision.Allowed() {
		s.logger.Debug("mark sold denied",
			"post_id", post.ID,
			"outcome", decision.Outcome.String())
		return decision.Err()
	}

	if err := sale.MarkSold(); err != nil {
		return err
	}

	s.logger.Info(fmt.Sprintf("%s's product is sold", author.Name), "post_id", post.ID)
	return nil
}

func (s *PostServiceImpl) saleAndAuthor(ctx context.Context, post *domain.Post) (*domain.SaleContent, *domain.User, error) {
	if post == nil {
		return nil, nil, ErrNilPost
	}
	sale, ok := post.Sale()
	if !ok {
		return nil, nil, ErrNotSalePost
	}
	author, err := s.author(ctx, post)
	if err != nil {
		return nil, nil, err
	}
	return sale, author, nil
}

// Display renders an image post's picture onto w.
func (s *PostServiceImpl) Display(ctx context.Context, post *domain.Post, w io.Writer) error {
	if post == nil {
		return ErrNilPost
	}
	img, ok := post.Image()
	if !ok {
		return ErrNotImagePost
	}

	if err := s.renderer.Render(ctx, img.Path, w); err != nil {
		s.logger.Error("failed to render image", "error", err, "post_id", post.ID, "path", img.Path)
		return fmt.Errorf("failed to display post: %w", err)
	}

	s.logger.Info("Shows picture", "post_id", post.ID)
	return nil
}
