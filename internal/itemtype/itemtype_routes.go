package itemtype

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
	types := r.Group("/itemtypes")
	types.Use(middleware.AuthMiddleware(verifier))
	types.Use(middleware.ContextLogger(logger))
	{
		types.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "itemtype", "read"),
			handler.GetAll,
		)
		types.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "itemtype", "read"),
			handler.GetOptions,
		)
		types.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "itemtype", "read"),
			handler.GetById,
		)
		types.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "itemtype", "create"),
			handler.Create,
		)
	}
}
