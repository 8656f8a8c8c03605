// workers/backup_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"pig-farm-server/models"
)

// SnapshotStore is where snapshots land; utils.R2Storage in production.
type SnapshotStore interface {
	PutJSON(ctx context.Context, key string, body []byte) error
}

// BackupClient periodically dumps all player records to R2 as a timestamped
// JSON snapshot. Saves are last-writer-wins with no history, so these
// snapshots are the only way to recover a clobbered account.
type BackupClient struct {
	DB       *gorm.DB
	Storage  SnapshotStore
	Interval time.Duration
}

func NewBackupClient(db *gorm.DB, storage SnapshotStore, interval time.Duration) *BackupClient {
	if interval <= 0 {
		interval = time.Hour
	}
	return &BackupClient{DB: db, Storage: storage, Interval: interval}
}

// playerSnapshot is the exported shape. Password hashes never leave the DB.
type playerSnapshot struct {
	ID          string           `json:"id"`
	Username    string           `json:"username"`
	Coins       int64            `json:"coins"`
	Pigs        models.JSONArray `json:"pigs"`
	Guilds      models.JSONArray `json:"guilds"`
	PlayerGuild *string          `json:"playerGuild"`
	Marketplace models.JSONArray `json:"marketplace"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Snapshot serializes the current players table and uploads it.
func (c *BackupClient) Snapshot(ctx context.Context) (string, error) {
	var players []models.Player
	if err := c.DB.WithContext(ctx).Find(&players).Error; err != nil {
		return "", fmt.Errorf("failed to read players for backup: %w", err)
	}

	snapshots := make([]playerSnapshot, len(players))
	for i, p := range players {
		snapshots[i] = playerSnapshot{
			ID:          p.ID,
			Username:    p.Username,
			Coins:       p.Coins,
			Pigs:        p.Pigs,
			Guilds:      p.Guilds,
			PlayerGuild: p.PlayerGuild,
			Marketplace: p.Marketplace,
			UpdatedAt:   p.UpdatedAt,
		}
	}

	body, err := json.Marshal(struct {
		TakenAt time.Time        `json:"taken_at"`
		Players []playerSnapshot `json:"players"`
	}{
		TakenAt: time.Now().UTC(),
		Players: snapshots,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}

	key := fmt.Sprintf("backups/players-%s.json", time.Now().UTC().Format("20060102T150405Z"))
	if err := c.Storage.PutJSON(ctx, key, body); err != nil {
		return "", err
	}
	return key, nil
}

// PollBackups runs snapshots on a ticker until ctx is cancelled. Failures
// are logged and retried on the next tick; they never affect request
// handling.
func PollBackups(ctx context.Context, client *BackupClient) {
	log.Printf("Starting player snapshot backups (every %s)...", client.Interval)

	ticker := time.NewTicker(client.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Player snapshot backups stopped.")
			return
		case <-ticker.C:
			key, err := client.Snapshot(ctx)
			if err != nil {
				log.Printf("❌ Backup failed: %v", err)
				continue
			}
			log.Printf("✅ Uploaded player snapshot %s", key)
		}
	}
}
