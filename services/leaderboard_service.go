// services/leaderboard_service.go
package services

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pig-farm-server/models"
)

// LeaderboardService serves the read-only coin ranking. It reads the same
// players table the save path writes to; there is no coordination with
// concurrent saves beyond what the store provides.
type LeaderboardService struct {
	DB   *gorm.DB
	Size int
}

func NewLeaderboardService(db *gorm.DB, size int) *LeaderboardService {
	if size <= 0 {
		size = 10
	}
	return &LeaderboardService{DB: db, Size: size}
}

// TopN returns up to n players ordered by coins descending. Ties come back
// in store iteration order.
func (s *LeaderboardService) TopN(n int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := s.DB.Model(&models.Player{}).
		Select("username", "coins").
		Order("coins DESC").
		Limit(n).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	return entries, nil
}

// Leaderboard handles GET /api/leaderboard.
func (s *LeaderboardService) Leaderboard(c *fiber.Ctx) error {
	entries, err := s.TopN(s.Size)
	if err != nil {
		log.Printf("❌ [LEADERBOARD] query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Error fetching leaderboard.",
		})
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return c.JSON(fiber.Map{"success": true, "leaderboard": entries})
}
