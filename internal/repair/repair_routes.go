package repair

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
	repairs := r.Group("/repairs")
	repairs.Use(middleware.AuthMiddleware(verifier))
	repairs.Use(middleware.ContextLogger(logger))
	{
		repairs.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "repair", "read"),
			handler.GetAll,
		)
		repairs.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "repair", "read"),
			handler.GetById,
		)
		repairs.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "repair", "create"),
			handler.Create,
		)
		repairs.PUT("/:id/complete",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "repair", "update"),
			handler.Complete,
		)
		repairs.PUT("/:id/defective",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "repair", "update"),
			handler.MarkDefective,
		)
		repairs.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "repair", "delete"),
			handler.Delete,
		)
	}
}
