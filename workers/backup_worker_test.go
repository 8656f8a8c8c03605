package workers

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pig-farm-server/models"
)

type fakeStore struct {
	key  string
	body []byte
}

func (f *fakeStore) PutJSON(_ context.Context, key string, body []byte) error {
	f.key = key
	f.body = body
	return nil
}

func newBackupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Player{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestSnapshotExcludesPasswordHashes(t *testing.T) {
	db := newBackupTestDB(t)
	player := models.Player{
		ID:           uuid.NewString(),
		Username:     "alice",
		PasswordHash: "$2a$10$secret-hash-material",
		Coins:        50,
		Pigs:         models.JSONArray(`[{"type":"spotted"}]`),
		Guilds:       models.EmptyArray(),
		Marketplace:  models.EmptyArray(),
	}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("seed player: %v", err)
	}

	store := &fakeStore{}
	client := NewBackupClient(db, store, time.Hour)

	key, err := client.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if !strings.HasPrefix(key, "backups/players-") || !strings.HasSuffix(key, ".json") {
		t.Errorf("snapshot key = %q, want backups/players-*.json", key)
	}
	if store.key != key {
		t.Errorf("uploaded key = %q, want %q", store.key, key)
	}

	if strings.Contains(string(store.body), "secret-hash-material") {
		t.Fatal("snapshot body contains a password hash")
	}

	var payload struct {
		TakenAt time.Time `json:"taken_at"`
		Players []struct {
			Username string `json:"username"`
			Coins    int64  `json:"coins"`
		} `json:"players"`
	}
	if err := json.Unmarshal(store.body, &payload); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(payload.Players) != 1 || payload.Players[0].Username != "alice" || payload.Players[0].Coins != 50 {
		t.Errorf("snapshot players = %+v, want alice with 50 coins", payload.Players)
	}
	if payload.TakenAt.IsZero() {
		t.Error("snapshot taken_at is zero")
	}
}

func TestSnapshotEmptyStore(t *testing.T) {
	store := &fakeStore{}
	client := NewBackupClient(newBackupTestDB(t), store, time.Hour)

	if _, err := client.Snapshot(context.Background()); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if !strings.Contains(string(store.body), `"players":[]`) {
		t.Errorf("snapshot body = %s, want empty players array", store.body)
	}
}
