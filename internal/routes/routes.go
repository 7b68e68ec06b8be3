package routes

import (
	"github.com/damoang/angple-press/internal/authz"
	"github.com/damoang/angple-press/internal/handler"
	"github.com/damoang/angple-press/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers groups the HTTP handlers mounted under /api/v1
type Handlers struct {
	Post     *handler.PostHandler
	Comment  *handler.CommentHandler
	Taxonomy *handler.TaxonomyHandler
}

// Options carries the shared middleware dependencies. RedisClient may be
// nil, which disables rate limiting.
type Options struct {
	Verifier    middleware.TokenVerifier
	RedisClient *redis.Client
	WriteLimit  middleware.RateLimitConfig
}

// Setup configures all API routes
func Setup(router *gin.Engine, h Handlers, opts Options) {
	api := router.Group("/api/v1")

	auth := middleware.JWTAuth(opts.Verifier)
	writeLimit := middleware.RateLimit(opts.RedisClient, opts.WriteLimit)
	roles := func(action authz.Action) gin.HandlerFunc {
		return middleware.RequireRole(authz.RolesFor(action)...)
	}

	// 공개 조회
	api.GET("/posts", h.Post.ListPosts)
	api.GET("/posts/slug/:slug", h.Post.GetPostBySlug)
	api.GET("/posts/:id", h.Post.GetPost)
	api.GET("/posts/:id/comments", h.Comment.ListComments)
	api.GET("/categories", h.Taxonomy.ListCategories)
	api.GET("/categories/:slug", h.Taxonomy.GetCategory)
	api.GET("/tags", middleware.ResponseCache(opts.RedisClient, middleware.TagsCacheConfig()), h.Taxonomy.ListTags)

	// 게시글 작성/발행 (editor, admin)
	posts := api.Group("/posts", auth)
	{
		posts.POST("", roles(authz.ActionCreatePost), writeLimit, h.Post.CreatePost)
		posts.PATCH("/:id", roles(authz.ActionUpdatePost), writeLimit, h.Post.UpdatePost)
		posts.POST("/:id/publish", roles(authz.ActionPublishPost), writeLimit, h.Post.PublishPost)
		posts.POST("/:id/comments", roles(authz.ActionSubmitComment), writeLimit, h.Comment.SubmitComment)
	}

	api.GET("/me/posts", auth, roles(authz.ActionListOwnPosts), h.Post.ListMyPosts)

	// 댓글 검토
	comments := api.Group("/comments", auth)
	{
		comments.GET("/pending", roles(authz.ActionListPendingComments), h.Comment.ListPendingComments)
		comments.PATCH("/:id/moderate", roles(authz.ActionModerateComment), h.Comment.ModerateComment)
	}
}
