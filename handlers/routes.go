// handlers/routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pig-farm-server/middleware"
	"pig-farm-server/services"
)

// SetupGameRoutes registers the core credential, game-state, and ranking
// routes. saveGame authenticates from the request body (legacy client
// behavior); getGameData uses the bearer-header middleware.
func SetupGameRoutes(app *fiber.App, game *services.GameService, leaderboard *services.LeaderboardService, tokens *services.TokenService) {
	api := app.Group("/api")

	api.Post("/register", game.Register)
	api.Post("/login", game.Login)
	api.Post("/refreshToken", game.RefreshToken)

	api.Post("/saveGame", game.SaveGame)
	api.Post("/getGameData", middleware.TokenAuthMiddleware(tokens), game.GetGameData)

	api.Get("/leaderboard", leaderboard.Leaderboard)
}
