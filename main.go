package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Zeeshan2604/hotwheels-api/auth"
	"github.com/Zeeshan2604/hotwheels-api/config"
	orderControllers "github.com/Zeeshan2604/hotwheels-api/controllers/order"
	"github.com/Zeeshan2604/hotwheels-api/middleware"
	"github.com/Zeeshan2604/hotwheels-api/models"
	"github.com/Zeeshan2604/hotwheels-api/pricing"
	"github.com/Zeeshan2604/hotwheels-api/routes"
)

func main() {
	log.Println("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config load failed: %v", err)
	}

	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Collection{},
		&models.Cart{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	tokens := auth.NewTokens(cfg.JWT)

	var google *auth.GoogleVerifier
	if cfg.Firebase.Enabled() {
		google, err = auth.NewGoogleVerifier(context.Background(), cfg.Firebase)
		if err != nil {
			log.Fatalf("❌ Firebase init failed: %v", err)
		}
	} else {
		log.Println("⚠️ Federated login disabled (no Firebase credentials configured)")
	}

	var verifier pricing.Verifier = pricing.ClientTrust{}
	if cfg.Orders.VerifyTotals {
		verifier = pricing.CatalogTotal{Tolerance: cfg.Orders.TotalTolerance}
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Every request passes the access gate before any handler runs.
	r.Use(middleware.AccessGate(middleware.DefaultPublicRoutes, tokens))

	routes.SetupRoutes(r, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Tokens:   tokens,
		Google:   google,
		Hub:      orderControllers.NewHub(),
		Verifier: verifier,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("🚀 Server running on port %s...", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ DB handle failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	return db
}
