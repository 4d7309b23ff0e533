package trail

import (
	"noassets/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	verifier middleware.ActiveUserVerifier,
	logger *zap.Logger,
) {
	trails := r.Group("/trails")
	trails.Use(middleware.AuthMiddleware(verifier))
	trails.Use(middleware.ContextLogger(logger))
	trails.Use(middleware.RoleMiddleware(middleware.RoleAdmin))
	{
		trails.GET("", middleware.RateLimitByUser(3, 10), handler.Query)
	}
}
