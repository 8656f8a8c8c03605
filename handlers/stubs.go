// handlers/stubs.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
)

// SetupStubRoutes registers the gameplay routes that are not yet backed by
// real logic. Each one answers 200 {success:true, ...} with an input-derived
// payload and touches no persisted state. Clients already depend on these
// shapes, so the real implementations must keep them.
func SetupStubRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/raisePig", func(c *fiber.Ctx) error {
		var req struct {
			PigType string `json:"pigType"`
		}
		_ = c.BodyParser(&req)
		return c.JSON(fiber.Map{
			"success": true,
			"newPig": fiber.Map{
				"type":           req.PigType,
				"coinsPerSecond": 1,
				"strength":       5,
			},
		})
	})

	api.Post("/createGuild", func(c *fiber.Ctx) error {
		var req struct {
			GuildName string `json:"guildName"`
		}
		_ = c.BodyParser(&req)
		return c.JSON(fiber.Map{
			"success":   true,
			"guildName": req.GuildName,
			"guildId":   slug.Make(req.GuildName),
		})
	})

	api.Post("/joinGuild", func(c *fiber.Ctx) error {
		var req struct {
			GuildName string `json:"guildName"`
		}
		_ = c.BodyParser(&req)
		return c.JSON(fiber.Map{"success": true, "guildName": req.GuildName})
	})

	api.Post("/contributeToGuildQuest", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	api.Post("/changeSeason", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "newSeason": "Winter"})
	})

	api.Post("/sellItem", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
}
