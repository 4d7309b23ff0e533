package item

import (
	"noassets/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	verifier middleware.ActiveUserVerifier,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	items := r.Group("/items")
	items.Use(middleware.AuthMiddleware(verifier))
	items.Use(middleware.ContextLogger(logger))
	{
		items.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "item", "read"),
			handler.GetAll,
		)
		items.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "item", "read"),
			handler.GetById,
		)
		items.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "item", "create"),
			handler.Create,
		)
		items.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "item", "update"),
			handler.Update,
		)
		items.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "item", "delete"),
			handler.Delete,
		)
	}
}
