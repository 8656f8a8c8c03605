// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"pig-farm-server/models"
)

// StartStatsJob logs headline numbers every few minutes. Read-only; it never
// mutates player state.
func (s *LeaderboardService) StartStatsJob() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			var total int64
			if err := s.DB.Model(&models.Player{}).Count(&total).Error; err != nil {
				log.Printf("[Stats] DB error: %v", err)
				return
			}

			top, err := s.TopN(1)
			if err != nil {
				log.Printf("[Stats] leaderboard error: %v", err)
				return
			}
			if len(top) == 0 {
				log.Printf("[Stats] %d players registered, no leader yet", total)
				return
			}
			log.Printf("📊 [Stats] %d players registered, leader: %s (%d coins)", total, top[0].Username, top[0].Coins)
		}),
	)
}
