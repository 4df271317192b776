package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/minisocial/internal/api/middleware"
	"github.com/phrazzld/minisocial/internal/service/auth"
	"github.com/phrazzld/minisocial/internal/store"
)

// RouterDeps holds what the HTTP API is built from.
type RouterDeps struct {
	Network    Network
	Posts      store.PostStore
	JWTService auth.JWTService
	Logger     *slog.Logger
}

// NewRouter creates the chi router serving the social network API under
// /api, plus an unauthenticated /health check.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Serialize())

	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.JWTService)
	authHandler := NewAuthHandler(deps.Network, deps.JWTService, log)
	userHandler := NewUserHandler(deps.Network)
	postHandler := NewPostHandler(deps.Network, deps.Posts, log)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", authHandler.SignUp)
		r.Post("/sessions", authHandler.LogIn)
		r.Get("/network", userHandler.GetNetwork)
		r.Get("/posts/{id}", postHandler.GetPost)
		r.Get("/posts/{id}/picture", postHandler.GetPicture)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Delete("/sessions", authHandler.LogOut)
			r.Post("/users/{name}/followers", userHandler.Follow)
			r.Delete("/users/{name}/followers", userHandler.Unfollow)
			r.Get("/me/notifications", userHandler.Notifications)

			r.Post("/posts", postHandler.CreatePost)
			r.Post("/posts/{id}/likes", postHandler.LikePost)
			r.Post("/posts/{id}/comments", postHandler.CommentPost)
			r.Post("/posts/{id}/discount", postHandler.DiscountPost)
			r.Post("/posts/{id}/sold", postHandler.MarkPostSold)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
