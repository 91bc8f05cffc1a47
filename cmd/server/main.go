package main

import (
	"log"
	"os"

	"ecosort/internal/blob"
	"ecosort/internal/db"
	"ecosort/internal/middleware"
	"ecosort/internal/router"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Blob Store (图片存储，未配置时上传功能降级)
	minioStore, err := blob.NewMinioStoreFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}
	var store blob.Store
	if minioStore != nil {
		store = minioStore
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	cookieStore := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("ecosort_session", cookieStore))

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r, store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("EcoSort server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
