package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/menudeck/menudeck/config"
	"github.com/menudeck/menudeck/database"
	"github.com/menudeck/menudeck/middlewares"
	"github.com/menudeck/menudeck/router"
	"github.com/menudeck/menudeck/storage"
	"github.com/menudeck/menudeck/store"
	"github.com/menudeck/menudeck/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}

	objects, err := buildObjectStore()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to initialize object store: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	dataStore := store.New(db)

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r := router.SetupRouter(db, dataStore, objects, rateLimiter.RateLimit())

	if err := r.SetTrustedProxies([]string{"127.0.0.1", "localhost"}); err != nil {
		utils.ErrorLogger.Fatalf("Failed to set trusted proxies: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// buildObjectStore selects the image store backend: an S3-compatible
// bucket when S3_BUCKET is set, the local filesystem otherwise.
func buildObjectStore() (storage.ObjectStore, error) {
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		return storage.NewS3(storage.S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    os.Getenv("S3_REGION"),
			Bucket:    bucket,
			KeyID:     os.Getenv("S3_KEY_ID"),
			Secret:    os.Getenv("S3_SECRET"),
			PublicURL: os.Getenv("S3_PUBLIC_URL"),
		}), nil
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "public/uploads"
	}
	return storage.NewLocal(dir, baseURL)
}
