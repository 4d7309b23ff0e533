package auth

import (
	"noassets/internal/middleware"
	"noassets/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	verifier middleware.ActiveUserVerifier,
	logger *zap.Logger,
) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login",
			middleware.RateLimitByIP(1, 5),
			middleware.ContextLogger(logger),
			handler.Login,
		)
		authGroup.POST("/refresh",
			middleware.RateLimitByIP(1, 5),
			middleware.ContextLogger(logger),
			handler.Refresh,
		)

		authGroup.GET("/profile",
			middleware.AuthMiddleware(verifier),
			middleware.ContextLogger(logger),
			handler.Profile,
		)
		authGroup.POST("/logout",
			middleware.AuthMiddleware(verifier),
			middleware.ContextLogger(logger),
			handler.Logout,
		)
		authGroup.POST("/register",
			middleware.AuthMiddleware(verifier),
			middleware.ContextLogger(logger),
			middleware.RoleMiddleware(user.RoleAdmin),
			handler.Register,
		)
	}
}
