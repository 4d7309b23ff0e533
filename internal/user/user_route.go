package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(verifier))
	users.Use(middleware.ContextLogger(logger))
	users.Use(middleware.RoleMiddleware(RoleAdmin))
	{
		users.GET("", middleware.RateLimitByUser(3, 10), handler.GetAll)
		users.GET("/:id", middleware.RateLimitByUser(3, 10), handler.GetById)
		users.PUT("/:id", middleware.RateLimitByUser(0.5, 2), handler.Update)
		users.PUT("/:id/password", middleware.RateLimitByUser(0.2, 1), handler.ChangePassword)
		users.DELETE("/:id", middleware.RateLimitByUser(0.1, 1), handler.Delete)
	}
}
