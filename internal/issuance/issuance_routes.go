package issuance

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
	issuances := r.Group("/issuance")
	issuances.Use(middleware.AuthMiddleware(verifier))
	issuances.Use(middleware.ContextLogger(logger))
	{
		issuances.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "issuance", "read"),
			handler.GetAll,
		)
		issuances.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "issuance", "read"),
			handler.GetById,
		)
		issuances.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "issuance", "create"),
			handler.Create,
		)
		issuances.PUT("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "issuance", "update"),
			handler.ChangeStatus,
		)
		issuances.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "issuance", "delete"),
			handler.Delete,
		)
	}
}
