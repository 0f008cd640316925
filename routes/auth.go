package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Zeeshan2604/hotwheels-api/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(d.DB, d.Tokens))
		authGroup.POST("/login", auth.Login(d.DB, d.Tokens))
		authGroup.POST("/google", auth.GoogleLogin(d.DB, d.Tokens, d.Google))
	}
}
