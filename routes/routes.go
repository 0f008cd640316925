package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Zeeshan2604/hotwheels-api/auth"
	"github.com/Zeeshan2604/hotwheels-api/config"
	orderControllers "github.com/Zeeshan2604/hotwheels-api/controllers/order"
	"github.com/Zeeshan2604/hotwheels-api/pricing"
)

// Deps carries everything the route groups need; built once in main.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Tokens   *auth.Tokens
	Google   *auth.GoogleVerifier
	Hub      *orderControllers.Hub
	Verifier pricing.Verifier
}

// SetupRoutes is the single entry-point that wires up all route groups.
// The access gate itself is installed as global middleware in main, before
// any of these handlers run.
func SetupRoutes(r *gin.Engine, d Deps) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes
	SetupAuthRoutes(r, d)

	// Public catalog browsing
	SetupCatalogRoutes(r, d)

	// JWT-protected user surface: profile, cart, wishlist
	SetupUserRoutes(r, d)

	// Orders (JWT-protected except the websocket feed)
	SetupOrderRoutes(r, d)

	// Admin surface (admin claim required)
	SetupAdminRoutes(r, d)
}
