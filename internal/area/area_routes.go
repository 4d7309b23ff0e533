package area

import (
	"noassets/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	verifier middleware.ActiveUserVerifier,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	areas := r.Group("/areas")
	areas.Use(middleware.AuthMiddleware(verifier))
	areas.Use(middleware.ContextLogger(logger))
	{
		areas.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "area", "read"),
			handler.GetAll,
		)
		areas.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "area", "read"),
			handler.GetById,
		)
		areas.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "area", "create"),
			handler.Create,
		)
		areas.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "area", "update"),
			handler.Update,
		)
		areas.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "area", "delete"),
			handler.Delete,
		)
	}
}
