package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pig-farm-server/config"
	"pig-farm-server/handlers"
	"pig-farm-server/models"
	"pig-farm-server/services"
	"pig-farm-server/utils"
	"pig-farm-server/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB — save payloads are small JSON blobs
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// TranslateError lets the duplicate-username check match
	// gorm.ErrDuplicatedKey instead of driver-specific errors.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&models.Player{}); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	credentialService := services.NewCredentialService(db)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	gameService := services.NewGameService(db, credentialService, tokenService)
	leaderboardService := services.NewLeaderboardService(db, cfg.LeaderboardSize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.BackupEnabled() {
		storage, err := utils.NewR2Storage(cfg.R2)
		if err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		backupClient := workers.NewBackupClient(db, storage, cfg.R2.BackupInterval)
		go workers.PollBackups(ctx, backupClient)
	} else {
		log.Println("⚠️  R2 credentials not set — player snapshot backups disabled")
	}

	leaderboardService.StartStatsJob()

	handlers.SetupGameRoutes(app, gameService, leaderboardService, tokenService)
	handlers.SetupStubRoutes(app)

	// Browser client assets
	app.Static("/", "./public")

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%d", cfg.Port)
	log.Printf("✅ CORS configured for origins: %s", cfg.AllowedOrigins)
	log.Printf("✅ Session tokens expire after %s", cfg.TokenTTL)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
