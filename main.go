package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/finflowhq/finflow-api/config"
	"github.com/finflowhq/finflow-api/handlers"
	"github.com/finflowhq/finflow-api/middleware"
	"github.com/finflowhq/finflow-api/routes"
	"github.com/finflowhq/finflow-api/services"
	"github.com/finflowhq/finflow-api/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	log.Println("✅ Database connected successfully")

	if err := config.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	go scheduleSweeper(db)

	wsHandler := handlers.NewWSHandler()

	router := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	corsConfig := cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		userID, _ := c.Get("user_id")
		uid, _ := userID.(string)
		utils.LogAPIRequest(c.Request.Method, c.Request.URL.Path, uid,
			c.Writer.Status(), time.Since(start).String())
	})

	limiter := middleware.NewRateLimiter(100, time.Minute)
	router.Use(limiter.Middleware())

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, db)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Websocket clients authenticate via the ?token= fallback.
			protected.GET("/ws", wsHandler.HandleWS)
			routes.SetupUserRoutes(protected, db)
			routes.SetupTransactionRoutes(protected, db, wsHandler)
			routes.SetupCategoryRoutes(protected, db, wsHandler)
			routes.SetupBudgetRoutes(protected, db, wsHandler)
			routes.SetupInvestmentRoutes(protected, db, wsHandler)
			routes.SetupStatsRoutes(protected, db)
			routes.SetupUserSettingsRoutes(protected, db)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.LogStartup("finflow-api", "1.0.0", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// scheduleSweeper runs the daily maintenance pass: drops expired
// sessions and flips budgets past their end date to expired.
func scheduleSweeper(db *sql.DB) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	sweep(db)
	for range ticker.C {
		sweep(db)
	}
}

func sweep(db *sql.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		log.Printf("❌ Session sweep failed: %v", err)
	} else if rows, _ := result.RowsAffected(); rows > 0 {
		log.Printf("🧹 Removed %d expired sessions", rows)
	}

	expired, err := services.NewBudgetService(db).ExpireOutdated(ctx)
	if err != nil {
		log.Printf("❌ Budget sweep failed: %v", err)
	} else if expired > 0 {
		log.Printf("🧹 Marked %d budgets as expired", expired)
	}
}
