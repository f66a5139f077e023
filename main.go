package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/menuport/portal-app/ai"
	"github.com/menuport/portal-app/cache"
	"github.com/menuport/portal-app/cart"
	"github.com/menuport/portal-app/config"
	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/router"
	"github.com/menuport/portal-app/utils"
	"gorm.io/gorm"
)

func init() {
	utils.InitLogger()
}

func main() {
	cfg := config.Load()
	utils.InitJWT(cfg.JWTSecret)

	db, err := config.InitDB(cfg.DatabaseDSN)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Cart storage and dashboard snapshot cache live in Redis. Without
	// a reachable instance the app still runs: carts fall back to
	// process memory and the views read straight from the database.
	var cartStore cart.Store
	var views *cache.Views
	if rdb, err := config.InitRedis(cfg.RedisURL); err != nil {
		utils.ErrorLogger.Printf("Redis unavailable, using in-memory cart store: %v", err)
		cartStore = cart.NewMemoryStore()
	} else {
		cartStore = cart.NewRedisStore(rdb, time.Duration(cfg.CartTTL)*time.Second)
		views = cache.NewViews(rdb, 30*time.Second)
	}

	aiClient := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	r := router.SetupRouter(db, aiClient, cartStore, views)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	utils.InfoLogger.Printf("Listening on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Portal{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.ChatMessage{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
